package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gexray/internal/exposure"
	"github.com/dgnsrekt/gexray/internal/marketclock"
	"github.com/dgnsrekt/gexray/internal/provider"
	"github.com/dgnsrekt/gexray/internal/store"
)

// Refresher fans one fetch-and-calculate task per symbol out to a worker
// pool each cycle. Calculations are independent pure functions of their
// chain snapshot, so no coordination is needed beyond the result channel.
type Refresher struct {
	provider provider.Provider
	engine   *exposure.Engine
	store    *store.SnapshotStore
	clock    *marketclock.Clock
	symbols  []string
	workers  int
	logger   *zap.Logger
}

// BatchResult summarizes one refresh cycle.
type BatchResult struct {
	Total   int
	Success int
	Failed  int
	Errors  []string
}

type taskResult struct {
	symbol string
	err    error
}

func New(p provider.Provider, engine *exposure.Engine, st *store.SnapshotStore, clock *marketclock.Clock, symbols []string, workers int, logger *zap.Logger) *Refresher {
	return &Refresher{
		provider: p,
		engine:   engine,
		store:    st,
		clock:    clock,
		symbols:  symbols,
		workers:  workers,
		logger:   logger,
	}
}

// RefreshAll runs one cycle across every configured symbol.
func (r *Refresher) RefreshAll(ctx context.Context) *BatchResult {
	result := &BatchResult{Total: len(r.symbols)}
	if len(r.symbols) == 0 {
		return result
	}

	cycleID := uuid.New().String()
	start := time.Now()

	jobs := make(chan string, len(r.symbols))
	results := make(chan taskResult, len(r.symbols))

	// Start workers
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, cycleID, jobs, results)
		}()
	}

	// Send jobs
	go func() {
		for _, symbol := range r.symbols {
			select {
			case <-ctx.Done():
				return
			case jobs <- symbol:
			}
		}
		close(jobs)
	}()

	// Wait for workers and close results
	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", res.symbol, res.err))
		} else {
			result.Success++
		}
	}

	r.logger.Info("refresh cycle complete",
		zap.String("cycle", cycleID),
		zap.Int("total", result.Total),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", time.Since(start)),
	)
	return result
}

func (r *Refresher) worker(ctx context.Context, cycleID string, jobs <-chan string, results chan<- taskResult) {
	for symbol := range jobs {
		select {
		case <-ctx.Done():
			results <- taskResult{symbol: symbol, err: ctx.Err()}
			continue
		default:
		}
		results <- taskResult{symbol: symbol, err: r.refreshOne(ctx, cycleID, symbol)}
	}
}

func (r *Refresher) refreshOne(ctx context.Context, cycleID, symbol string) error {
	snap, err := r.provider.FetchChain(ctx, symbol)
	if err != nil {
		return fmt.Errorf("fetching chain: %w", err)
	}

	exp, err := r.engine.Calculate(snap.Symbol, snap.Spot, snap.Contracts)
	if err != nil {
		return fmt.Errorf("calculating exposure: %w", err)
	}

	r.store.Put(symbol, exp)
	r.logger.Debug("symbol refreshed",
		zap.String("cycle", cycleID),
		zap.String("symbol", symbol),
		zap.Float64("spot", exp.Spot),
		zap.Int("zones", len(exp.Zones)),
	)
	return nil
}

// Run refreshes on the given interval until the context is cancelled.
// With marketHoursOnly set, cycles on weekends and NYSE holidays are
// skipped; a stale snapshot stays served until the next trading day.
func (r *Refresher) Run(ctx context.Context, interval time.Duration, marketHoursOnly, runOnStartup bool) {
	if runOnStartup {
		r.maybeRefresh(ctx, marketHoursOnly)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresher stopped")
			return
		case <-ticker.C:
			r.maybeRefresh(ctx, marketHoursOnly)
		}
	}
}

func (r *Refresher) maybeRefresh(ctx context.Context, marketHoursOnly bool) {
	if marketHoursOnly && !r.clock.IsBusinessDay(r.clock.Now()) {
		r.logger.Debug("not a market day, skipping refresh")
		return
	}
	r.RefreshAll(ctx)
}
