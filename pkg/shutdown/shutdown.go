// Package shutdown cancels work when the process receives an interrupt.
// Transactions already submitted keep confirming on-chain, only the
// local wait is abandoned.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/seerkit/seerctl/pkg/logger"
)

// Context returns a context cancelled on SIGINT or SIGTERM. A second
// signal kills the process immediately.
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-ch:
			logger.Warnf("received %s, cancelling", sig)
			cancel()
		case <-ctx.Done():
			signal.Stop(ch)
			return
		}
		<-ch
		logger.Warn("second signal, exiting now")
		os.Exit(1)
	}()

	return ctx, cancel
}
