// Package store holds the persistence boundaries of the engine: account
// mapping overrides, the local cache of not-yet-synchronized transactions,
// and the chart of accounts. The core engine never touches a store
// directly; it works on snapshots the application layer reads from here.
package store

import (
	"context"

	"shopledger/internal/core"
)

// OverrideStore persists user-authored account mapping overrides, keyed by
// transaction id. The engine only reads it; writes come from the
// presentation layer through the application service.
type OverrideStore interface {
	ListOverrides(ctx context.Context) (core.OverrideSet, error)
	PutOverride(ctx context.Context, ov core.AccountOverride) error
	DeleteOverride(ctx context.Context, transactionID string) error
}

// TransactionCache holds locally captured transactions that have not yet
// been synchronized to the remote source. Entries may overlap with remote
// rows; the engine's id-keyed dedup makes the overlap harmless.
type TransactionCache interface {
	SaveTransaction(ctx context.Context, tx core.Transaction) error
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
}

// ChartStore loads the chart of accounts.
type ChartStore interface {
	ListAccounts(ctx context.Context) ([]core.Account, error)
}
