package chain

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Snapshot is one refresh cycle's view of a single underlying: the spot
// price plus every contract the adapter returned for it.
type Snapshot struct {
	Symbol    string           `json:"symbol"`
	Spot      float64          `json:"spot"`
	FetchedAt time.Time        `json:"fetched_at"`
	Contracts []OptionContract `json:"contracts"`
}

// Validate applies the caller-level checks from the engine's input contract:
// spot must be positive and every contract well-formed.
func (s *Snapshot) Validate() error {
	if s.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if s.Spot <= 0 {
		return fmt.Errorf("spot must be positive, got %v", s.Spot)
	}
	for i, c := range s.Contracts {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("contract %d: %w", i, err)
		}
	}
	return nil
}

// Expirations returns the distinct expiration dates in ascending order.
func (s *Snapshot) Expirations() []time.Time {
	seen := make(map[time.Time]bool)
	var out []time.Time
	for _, c := range s.Contracts {
		day := c.Expiration.Truncate(24 * time.Hour)
		if !seen[day] {
			seen[day] = true
			out = append(out, day)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// LoadSnapshot reads a chain snapshot from a JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("validating snapshot: %w", err)
	}
	return &snap, nil
}
