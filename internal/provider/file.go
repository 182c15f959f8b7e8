package provider

import (
	"context"
	"fmt"

	"github.com/dgnsrekt/gexray/internal/chain"
)

// FileProvider serves chain snapshots from JSON files on disk, one file per
// symbol. It backs the offline `calc` command and tests.
type FileProvider struct {
	paths map[string]string
}

// NewFileProvider maps symbols to snapshot file paths.
func NewFileProvider(paths map[string]string) *FileProvider {
	return &FileProvider{paths: paths}
}

// FetchChain loads the symbol's snapshot file.
func (p *FileProvider) FetchChain(ctx context.Context, symbol string) (*chain.Snapshot, error) {
	path, ok := p.paths[symbol]
	if !ok {
		return nil, ErrNotFound
	}
	snap, err := chain.LoadSnapshot(path)
	if err != nil {
		return nil, fmt.Errorf("loading chain for %s: %w", symbol, err)
	}
	return snap, nil
}
