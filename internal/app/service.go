package app

import (
	"context"
	"time"

	"shopledger/internal/core"

	"github.com/shopspring/decimal"
)

// ApplicationService is the single interface all adapters (CLI, Web) call.
// It decouples presentation from the engine. Implementations must contain
// no fmt.Println and no display logic of any kind.
//
// Every report call recomputes the full derived layer from the current
// snapshot of sources, cache, overrides, and chart; results carry the
// warnings collected along the way (dropped rows, unknown account codes,
// imbalance) so the presentation layer can surface them without the call
// ever failing on bad data.
type ApplicationService interface {
	// GetTrialBalance consolidates every known transaction into one row per
	// account for the reporting period, plus the integrity check result.
	GetTrialBalance(ctx context.Context, periodStart, periodEnd time.Time) (*TrialBalanceResult, error)

	// GetProfitAndLoss derives the P&L statement for the period.
	GetProfitAndLoss(ctx context.Context, periodStart, periodEnd time.Time) (*PLResult, error)

	// GetBalanceSheet derives the balance sheet as of the given date.
	GetBalanceSheet(ctx context.Context, asOf time.Time) (*BSResult, error)

	// CheckIntegrity runs only the debit/credit equality check for the period.
	CheckIntegrity(ctx context.Context, periodStart, periodEnd time.Time) (*core.IntegrityResult, error)

	// ListAccounts returns the chart of accounts.
	ListAccounts(ctx context.Context) ([]core.Account, error)

	// ListOverrides returns all persisted account mapping overrides.
	ListOverrides(ctx context.Context) (core.OverrideSet, error)

	// SetOverride persists an account mapping override for one transaction,
	// replacing any previous mapping for the same transaction.
	SetOverride(ctx context.Context, ov core.AccountOverride) error

	// RemoveOverride deletes the override for a transaction id.
	RemoveOverride(ctx context.Context, transactionID string) error

	// IngestRows normalizes raw source rows of one kind into the local
	// transaction cache. Malformed rows are skipped and reported as
	// warnings, never as errors.
	IngestRows(ctx context.Context, kind core.TransactionKind, rows []core.RawRow) (*IngestResult, error)

	// AddManualAdjustment records a user-entered adjustment into the local
	// cache under a generated id and returns the canonical transaction.
	AddManualAdjustment(ctx context.Context, req ManualAdjustmentRequest) (*core.Transaction, error)
}

// ManualAdjustmentRequest is a user-entered ledger adjustment.
type ManualAdjustmentRequest struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	DebitCode   string          `json:"debit_code"`
	CreditCode  string          `json:"credit_code"`
	Description string          `json:"description"`
}

// TrialBalanceResult is returned by GetTrialBalance.
type TrialBalanceResult struct {
	PeriodStart time.Time              `json:"period_start"`
	PeriodEnd   time.Time              `json:"period_end"`
	Rows        []core.TrialBalanceRow `json:"rows"`
	Integrity   core.IntegrityResult   `json:"integrity"`
	Warnings    []string               `json:"warnings,omitempty"`
}

// PLResult is returned by GetProfitAndLoss.
type PLResult struct {
	Report   *core.PLReport `json:"report"`
	Warnings []string       `json:"warnings,omitempty"`
}

// BSResult is returned by GetBalanceSheet. Integrity is included so the
// retained-earnings plug can never silently mask an unbalanced ledger.
type BSResult struct {
	Report    *core.BSReport       `json:"report"`
	Integrity core.IntegrityResult `json:"integrity"`
	Warnings  []string             `json:"warnings,omitempty"`
}

// IngestResult is returned by IngestRows.
type IngestResult struct {
	Saved    int      `json:"saved"`
	Warnings []string `json:"warnings,omitempty"`
}
