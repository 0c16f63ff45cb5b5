package app

import (
	"context"
	"fmt"
	"time"

	"shopledger/internal/core"
	"shopledger/internal/feeds"
	"shopledger/internal/store"

	"github.com/google/uuid"
)

// Service wires the engine to its collaborators: the transaction source
// feeds, the local cache of not-yet-synchronized entries, the override
// store, and the chart feed. It treats all of them as read-only snapshots
// during a computation; mutation happens only through the explicit
// SetOverride / IngestRows / AddManualAdjustment entry points.
type Service struct {
	chart     store.ChartStore
	overrides store.OverrideStore
	cache     store.TransactionCache
	sources   []feeds.Source
}

func NewService(chart store.ChartStore, overrides store.OverrideStore, cache store.TransactionCache, sources []feeds.Source) *Service {
	return &Service{chart: chart, overrides: overrides, cache: cache, sources: sources}
}

// snapshot gathers the full input set for one recomputation: the chart,
// the override set, and every transaction observed through any channel.
// Remote rows and cached entries may overlap; dedup inside the engine
// makes the merge idempotent. Cached entries are appended last so a local
// re-edit of a remote row wins.
func (s *Service) snapshot(ctx context.Context) (*core.Chart, core.OverrideSet, []core.Transaction, []string, error) {
	accounts, err := s.chart.ListAccounts(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	chart := core.NewChart(accounts)

	overrides, err := s.overrides.ListOverrides(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load overrides: %w", err)
	}

	var (
		txs      []core.Transaction
		warnings []string
	)
	for _, src := range s.sources {
		rows, err := src.Fetch(ctx)
		if err != nil {
			// A dead feed degrades the result, it does not abort it.
			warnings = append(warnings, fmt.Sprintf("source %s unavailable: %v", src.Kind(), err))
			continue
		}
		normalized, warns := core.Normalize(rows, src.Kind())
		warnings = append(warnings, warns...)
		txs = append(txs, normalized...)
	}

	cached, err := s.cache.ListTransactions(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load cached transactions: %w", err)
	}
	txs = append(txs, cached...)

	return chart, overrides, txs, warnings, nil
}

func (s *Service) GetTrialBalance(ctx context.Context, periodStart, periodEnd time.Time) (*TrialBalanceResult, error) {
	chart, overrides, txs, warnings, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	tb := core.BuildTrialBalance(txs, overrides, chart, periodStart, periodEnd)
	warnings = append(warnings, unknownCodeWarnings(txs, overrides, chart)...)

	return &TrialBalanceResult{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Rows:        tb,
		Integrity:   core.CheckBalance(tb),
		Warnings:    warnings,
	}, nil
}

func (s *Service) GetProfitAndLoss(ctx context.Context, periodStart, periodEnd time.Time) (*PLResult, error) {
	result, err := s.GetTrialBalance(ctx, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	return &PLResult{
		Report:   core.DeriveProfitAndLoss(result.Rows, periodStart, periodEnd),
		Warnings: result.Warnings,
	}, nil
}

func (s *Service) GetBalanceSheet(ctx context.Context, asOf time.Time) (*BSResult, error) {
	// Ending balances are what the balance sheet reads, and ending is
	// independent of where the period starts, so the zero time works as
	// the start bound.
	result, err := s.GetTrialBalance(ctx, time.Time{}, asOf)
	if err != nil {
		return nil, err
	}
	return &BSResult{
		Report:    core.DeriveBalanceSheet(result.Rows, asOf),
		Integrity: result.Integrity,
		Warnings:  result.Warnings,
	}, nil
}

func (s *Service) CheckIntegrity(ctx context.Context, periodStart, periodEnd time.Time) (*core.IntegrityResult, error) {
	result, err := s.GetTrialBalance(ctx, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	return &result.Integrity, nil
}

func (s *Service) ListAccounts(ctx context.Context) ([]core.Account, error) {
	return s.chart.ListAccounts(ctx)
}

func (s *Service) ListOverrides(ctx context.Context) (core.OverrideSet, error) {
	return s.overrides.ListOverrides(ctx)
}

func (s *Service) SetOverride(ctx context.Context, ov core.AccountOverride) error {
	if ov.TransactionID == "" {
		return fmt.Errorf("override must name a transaction id")
	}
	seen := make(map[core.Position]bool, len(ov.Lines))
	for _, line := range ov.Lines {
		if line.Position != core.Debit && line.Position != core.Credit {
			return fmt.Errorf("override position must be debit or credit, got %q", line.Position)
		}
		if line.AccountCode == "" {
			return fmt.Errorf("override account code must not be empty")
		}
		if seen[line.Position] {
			return fmt.Errorf("override names position %s twice", line.Position)
		}
		seen[line.Position] = true
	}
	return s.overrides.PutOverride(ctx, ov)
}

func (s *Service) RemoveOverride(ctx context.Context, transactionID string) error {
	return s.overrides.DeleteOverride(ctx, transactionID)
}

func (s *Service) IngestRows(ctx context.Context, kind core.TransactionKind, rows []core.RawRow) (*IngestResult, error) {
	txs, warnings := core.Normalize(rows, kind)
	saved := 0
	for _, tx := range txs {
		if err := s.cache.SaveTransaction(ctx, tx); err != nil {
			return nil, fmt.Errorf("failed to cache transaction %s: %w", tx.ID, err)
		}
		saved++
	}
	return &IngestResult{Saved: saved, Warnings: warnings}, nil
}

func (s *Service) AddManualAdjustment(ctx context.Context, req ManualAdjustmentRequest) (*core.Transaction, error) {
	tx := core.Transaction{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Kind:        core.KindManual,
		Amount:      req.Amount,
		AccountCode: req.DebitCode,
		OffsetCode:  req.CreditCode,
		Description: req.Description,
		Source:      "manual",
	}
	if err := s.cache.SaveTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save manual adjustment: %w", err)
	}
	return &tx, nil
}

// unknownCodeWarnings flags journal lines that reference codes outside the
// chart, typically an override pointing at a deleted account. Such lines
// are posted anyway; the warning keeps the permissiveness visible.
func unknownCodeWarnings(txs []core.Transaction, overrides core.OverrideSet, chart *core.Chart) []string {
	var all []core.JournalLine
	for _, tx := range core.Dedup(txs) {
		all = append(all, core.GenerateJournal(tx, overrides, chart)...)
	}
	var warnings []string
	for _, code := range core.UnknownAccountCodes(all, chart) {
		warnings = append(warnings, fmt.Sprintf("account code %s is not in the chart of accounts", code))
	}
	return warnings
}
