package store

import (
	"context"
	"sort"
	"sync"

	"shopledger/internal/core"
)

// Memory is an in-memory store used by tests and offline runs. It
// implements the same interfaces as Postgres.
type Memory struct {
	mu        sync.RWMutex
	overrides core.OverrideSet
	txs       map[string]core.Transaction
	txOrder   []string
	accounts  []core.Account
}

func NewMemory(accounts []core.Account) *Memory {
	return &Memory{
		overrides: make(core.OverrideSet),
		txs:       make(map[string]core.Transaction),
		accounts:  accounts,
	}
}

func (m *Memory) ListOverrides(ctx context.Context) (core.OverrideSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(core.OverrideSet, len(m.overrides))
	for id, ov := range m.overrides {
		out[id] = ov
	}
	return out, nil
}

func (m *Memory) PutOverride(ctx context.Context, ov core.AccountOverride) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[ov.TransactionID] = ov
	return nil
}

func (m *Memory) DeleteOverride(ctx context.Context, transactionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overrides, transactionID)
	return nil
}

func (m *Memory) SaveTransaction(ctx context.Context, tx core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.txs[tx.ID]; !ok {
		m.txOrder = append(m.txOrder, tx.ID)
	}
	m.txs[tx.ID] = tx
	return nil
}

func (m *Memory) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Transaction, 0, len(m.txOrder))
	for _, id := range m.txOrder {
		out = append(out, m.txs[id])
	}
	return out, nil
}

func (m *Memory) ListAccounts(ctx context.Context) ([]core.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]core.Account, len(m.accounts))
	copy(out, m.accounts)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}
