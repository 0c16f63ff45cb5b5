// Package feeds adapts external transaction sources to the engine. Each
// source has its own column layout; a Source yields raw rows for exactly
// one transaction kind and knows nothing about journal mapping.
package feeds

import (
	"context"
	"os"
	"path/filepath"

	"shopledger/internal/core"
)

// Source is one external transaction feed.
type Source interface {
	// Kind identifies which default journal mapping applies to this feed's rows.
	Kind() core.TransactionKind
	// Fetch returns the current raw rows of the feed. Fetch must tolerate
	// being called repeatedly; the engine recomputes from scratch each time.
	Fetch(ctx context.Context) ([]core.RawRow, error)
}

// FromDir wires one CSV source per transaction kind for every
// <kind>.csv file present under dir. Missing files simply mean that feed
// is not configured.
func FromDir(dir string) []Source {
	kinds := []core.TransactionKind{
		core.KindSales, core.KindPurchase, core.KindExpense,
		core.KindPaymentIn, core.KindPaymentOut, core.KindPosSale, core.KindManual,
	}
	var sources []Source
	for _, kind := range kinds {
		path := filepath.Join(dir, string(kind)+".csv")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		sources = append(sources, NewCSVSource(path, kind))
	}
	return sources
}

// Static is a fixed in-memory source, used by tests and seeded demos.
type Static struct {
	SourceKind core.TransactionKind
	Rows       []core.RawRow
}

func (s Static) Kind() core.TransactionKind { return s.SourceKind }

func (s Static) Fetch(ctx context.Context) ([]core.RawRow, error) {
	return s.Rows, nil
}
