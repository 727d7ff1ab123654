// Package lpstore persists a local record of liquidity positions opened
// through this tool, so they can be listed and marked withdrawn later
// without scanning chains. A position is active while withdrawnAt is
// null. The store is a single JSON file and does not support concurrent
// writers.
package lpstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Position is one tracked liquidity position. TokenID is kept as a
// string so the file stays readable and free of precision concerns.
type Position struct {
	TokenID     string  `json:"tokenId"`
	Chain       string  `json:"chain"`
	DexType     string  `json:"dexType"`
	PoolAddress string  `json:"poolAddress"`
	Token0      string  `json:"token0"`
	Token1      string  `json:"token1"`
	ProbLow     float64 `json:"probLow"`
	ProbHigh    float64 `json:"probHigh"`
	Market      string  `json:"market"`
	MarketName  string  `json:"marketName,omitempty"`
	OutcomeName string  `json:"outcomeName,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	WithdrawnAt *string `json:"withdrawnAt"`
}

func (p *Position) Active() bool {
	return p.WithdrawnAt == nil
}

type fileData struct {
	Positions []Position `json:"positions"`
}

// Store reads and writes the position file at a fixed path.
type Store struct {
	path string
}

// DefaultPath is ~/.seerctl/lp-positions.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, ".seerctl", "lp-positions.json"), nil
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns all recorded positions. A missing file is an empty store.
func (s *Store) Load() ([]Position, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return data.Positions, nil
}

// Append records a new position.
func (s *Store) Append(p Position) error {
	data, err := s.read()
	if err != nil {
		return err
	}
	data.Positions = append(data.Positions, p)
	return s.write(data)
}

// MarkWithdrawn stamps the active position matching tokenID and chain
// with the current time. It returns false when no active match exists;
// already-withdrawn entries are never restamped.
func (s *Store) MarkWithdrawn(tokenID, chain string) (bool, error) {
	data, err := s.read()
	if err != nil {
		return false, err
	}
	for i := range data.Positions {
		p := &data.Positions[i]
		if p.TokenID == tokenID && p.Chain == chain && p.WithdrawnAt == nil {
			now := time.Now().UTC().Format(time.RFC3339)
			p.WithdrawnAt = &now
			return true, s.write(data)
		}
	}
	return false, nil
}

func (s *Store) read() (*fileData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileData{}, nil
		}
		return nil, errors.Wrapf(err, "read %s", s.path)
	}
	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrapf(err, "parse %s", s.path)
	}
	return &data, nil
}

func (s *Store) write(data *fileData) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "create store directory")
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode positions")
	}
	raw = append(raw, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrapf(err, "replace %s", s.path)
	}
	return nil
}
