// GameEdge Intelligence - Customer Analytics for Sports Betting Platforms
// Copyright 2026 GameEdge Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gameedge/intelligence

// Package importer loads bulk customer and bet datasets into the database,
// either from an inline request payload or from a remote URL. Payloads are
// checksummed so re-importing an identical document is a no-op, and inserts
// are paced to keep a large import from starving live queries.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/time/rate"

	"github.com/gameedge/intelligence/internal/config"
	"github.com/gameedge/intelligence/internal/logging"
	"github.com/gameedge/intelligence/internal/metrics"
	"github.com/gameedge/intelligence/internal/models"
)

// insertBatchSize bounds one paced write. Also the limiter burst floor so
// WaitN on a full batch is always satisfiable.
const insertBatchSize = 500

var (
	// ErrImportInProgress is returned when a second import starts while
	// one is running.
	ErrImportInProgress = errors.New("an import is already in progress")

	// ErrNoSource is returned when a request carries neither a source
	// URL nor inline rows.
	ErrNoSource = errors.New("import request needs source_url or inline customers/bets")

	// ErrAmbiguousSource is returned when a request carries both.
	ErrAmbiguousSource = errors.New("import request cannot combine source_url with inline rows")
)

// Importer runs bulk dataset imports. One import runs at a time.
type Importer struct {
	cfg     *config.ImportConfig
	store   Store
	ledger  ChecksumLedger
	fetcher *Fetcher
	limiter *rate.Limiter

	mu      sync.RWMutex
	running bool
	last    *Stats
}

// NewImporter wires the importer to its row store and checksum ledger.
func NewImporter(cfg *config.ImportConfig, store Store, ledger ChecksumLedger) *Importer {
	limit := rate.Inf
	burst := insertBatchSize
	if cfg.RowsPerSecond > 0 {
		limit = rate.Limit(cfg.RowsPerSecond)
		if cfg.RowsPerSecond > burst {
			burst = cfg.RowsPerSecond
		}
	}

	return &Importer{
		cfg:     cfg,
		store:   store,
		ledger:  ledger,
		fetcher: NewFetcher(cfg.FetchTimeout, cfg.MaxBodyBytes),
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Run executes one import and returns its stats. Rows that fail validation
// are skipped and counted, never aborting the run; fetch, decode, and store
// failures abort it.
func (im *Importer) Run(ctx context.Context, req *Request) (*Stats, error) {
	im.mu.Lock()
	if im.running {
		im.mu.Unlock()
		return nil, ErrImportInProgress
	}
	im.running = true
	im.mu.Unlock()

	stats := &Stats{StartTime: time.Now()}
	defer func() {
		stats.EndTime = time.Now()
		im.mu.Lock()
		im.running = false
		im.last = stats
		im.mu.Unlock()
	}()

	err := im.run(ctx, req, stats)
	metrics.RecordImportRun(stats.Duration(), err)
	if err != nil {
		return stats, err
	}

	logging.Info().
		Str("source", stats.Source).
		Str("checksum", stats.Checksum).
		Bool("already_imported", stats.AlreadyImported).
		Int("customers_imported", stats.CustomersImported).
		Int("customers_skipped", stats.CustomersSkipped).
		Int("bets_imported", stats.BetsImported).
		Int("bets_duplicate", stats.BetsDuplicate).
		Int("bets_skipped", stats.BetsSkipped).
		Dur("duration", stats.Duration()).
		Msg("Import completed")
	return stats, nil
}

func (im *Importer) run(ctx context.Context, req *Request, stats *Stats) error {
	payload, raw, err := im.resolve(ctx, req, stats)
	if err != nil {
		return err
	}

	sum := blake2b.Sum256(raw)
	stats.Checksum = fmt.Sprintf("%x", sum)
	stats.CustomersReceived = len(payload.Customers)
	stats.BetsReceived = len(payload.Bets)

	if im.ledger != nil {
		seen, lookErr := im.ledger.SeenImport(ctx, stats.Checksum)
		if lookErr != nil {
			logging.Warn().Err(lookErr).Msg("Import checksum lookup failed; importing anyway")
		} else if seen {
			stats.AlreadyImported = true
			logging.Info().Str("checksum", stats.Checksum).Msg("Import payload already processed; skipping")
			return nil
		}
	}

	customers, bets := im.filterRows(payload, stats)

	if err := im.importCustomers(ctx, customers, stats); err != nil {
		return err
	}
	if err := im.importBets(ctx, bets, stats); err != nil {
		return err
	}

	if im.ledger != nil {
		if recErr := im.ledger.RecordImport(ctx, stats.Checksum, stats); recErr != nil {
			logging.Warn().Err(recErr).Msg("Failed to record import checksum")
		}
	}
	return nil
}

// resolve turns a request into a payload plus the raw bytes the checksum is
// computed over: the fetched document for URL imports, the canonical
// serialization for inline ones.
func (im *Importer) resolve(ctx context.Context, req *Request, stats *Stats) (*Payload, []byte, error) {
	hasInline := len(req.Customers) > 0 || len(req.Bets) > 0

	switch {
	case req.SourceURL != "" && hasInline:
		return nil, nil, ErrAmbiguousSource
	case req.SourceURL == "" && !hasInline:
		return nil, nil, ErrNoSource
	case req.SourceURL != "":
		stats.Source = sourceURL
		raw, err := im.fetcher.Fetch(ctx, req.SourceURL)
		if err != nil {
			return nil, nil, err
		}
		var payload Payload
		if err := json.Unmarshal(raw, &payload); err != nil {
			metrics.RecordImportError("decode")
			return nil, nil, fmt.Errorf("failed to decode import source: %w", err)
		}
		return &payload, raw, nil
	default:
		stats.Source = sourceInline
		payload := &Payload{Customers: req.Customers, Bets: req.Bets}
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to serialize inline payload: %w", err)
		}
		return payload, raw, nil
	}
}

// filterRows drops rows that fail validation and counts them.
func (im *Importer) filterRows(payload *Payload, stats *Stats) ([]models.Customer, []models.Bet) {
	customers := make([]models.Customer, 0, len(payload.Customers))
	for i := range payload.Customers {
		if err := validateCustomer(&payload.Customers[i]); err != nil {
			stats.CustomersSkipped++
			logging.Debug().Err(err).Int("row", i).Msg("Skipping customer row")
			continue
		}
		customers = append(customers, payload.Customers[i])
	}

	bets := make([]models.Bet, 0, len(payload.Bets))
	for i := range payload.Bets {
		if err := validateBet(&payload.Bets[i]); err != nil {
			stats.BetsSkipped++
			logging.Debug().Err(err).Int("row", i).Msg("Skipping bet row")
			continue
		}
		bets = append(bets, payload.Bets[i])
	}

	if stats.CustomersSkipped > 0 || stats.BetsSkipped > 0 {
		metrics.RecordImportError("validation")
		logging.Warn().
			Int("customers_skipped", stats.CustomersSkipped).
			Int("bets_skipped", stats.BetsSkipped).
			Msg("Import rows failed validation")
	}
	return customers, bets
}

func (im *Importer) importCustomers(ctx context.Context, customers []models.Customer, stats *Stats) error {
	for start := 0; start < len(customers); start += insertBatchSize {
		end := min(start+insertBatchSize, len(customers))
		batch := customers[start:end]

		if err := im.limiter.WaitN(ctx, len(batch)); err != nil {
			return fmt.Errorf("import pacing interrupted: %w", err)
		}
		n, err := im.store.UpsertCustomers(ctx, batch)
		if err != nil {
			metrics.RecordImportError("store")
			return fmt.Errorf("failed to upsert customer batch: %w", err)
		}
		stats.CustomersImported += n
	}
	if stats.CustomersImported > 0 {
		metrics.RecordImportRows("customers", stats.CustomersImported)
	}
	return nil
}

func (im *Importer) importBets(ctx context.Context, bets []models.Bet, stats *Stats) error {
	for start := 0; start < len(bets); start += insertBatchSize {
		end := min(start+insertBatchSize, len(bets))
		batch := bets[start:end]

		if err := im.limiter.WaitN(ctx, len(batch)); err != nil {
			return fmt.Errorf("import pacing interrupted: %w", err)
		}
		inserted, duplicates, err := im.store.InsertBets(ctx, batch)
		if err != nil {
			metrics.RecordImportError("store")
			return fmt.Errorf("failed to insert bet batch: %w", err)
		}
		stats.BetsImported += inserted
		stats.BetsDuplicate += duplicates
	}
	if stats.BetsImported > 0 {
		metrics.RecordImportRows("bets", stats.BetsImported)
	}
	return nil
}

// IsRunning reports whether an import is in flight.
func (im *Importer) IsRunning() bool {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.running
}

// LastRun returns a copy of the most recent run's stats, or nil before the
// first run.
func (im *Importer) LastRun() *Stats {
	im.mu.RLock()
	defer im.mu.RUnlock()
	if im.last == nil {
		return nil
	}
	stats := *im.last
	return &stats
}

// FetchBreakerState exposes the remote-fetch breaker state.
func (im *Importer) FetchBreakerState() string {
	return im.fetcher.BreakerState()
}

// validateCustomer checks the fields the customers table and the analysis
// pipeline cannot work without.
func validateCustomer(c *models.Customer) error {
	if c.ID == "" {
		return errors.New("customer id is required")
	}
	if c.Username == "" {
		return errors.New("customer username is required")
	}
	if c.RegisteredAt.IsZero() {
		return errors.New("customer registered_at is required")
	}
	if c.TotalWagered < 0 || c.TotalWon < 0 {
		return errors.New("customer aggregates cannot be negative")
	}
	return nil
}

// validateBet mirrors the event pipeline's rules so a bet is judged the
// same whether it arrives by import or by event.
func validateBet(b *models.Bet) error {
	if b.CustomerID == "" {
		return errors.New("bet customer_id is required")
	}
	if b.Sport == "" {
		return errors.New("bet sport is required")
	}
	if b.Amount <= 0 {
		return errors.New("bet amount must be positive")
	}
	if b.Odds < 1.0 {
		return errors.New("bet odds must be at least 1.0")
	}
	if b.Status != "" && !models.ValidBetStatus(b.Status) {
		return fmt.Errorf("bet status %q is not valid", b.Status)
	}
	if b.PlacedAt.IsZero() {
		return errors.New("bet placed_at is required")
	}
	return nil
}
