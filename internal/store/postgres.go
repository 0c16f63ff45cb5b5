package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopledger/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements OverrideStore, TransactionCache, and ChartStore on a
// pgx pool. Schema lives in migrations/001_init.sql.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// ── Overrides ─────────────────────────────────────────────────────────────────

func (s *Postgres) ListOverrides(ctx context.Context) (core.OverrideSet, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT transaction_id, position, account_code
		FROM account_overrides
		ORDER BY transaction_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer rows.Close()

	set := make(core.OverrideSet)
	for rows.Next() {
		var txID, position, code string
		if err := rows.Scan(&txID, &position, &code); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		ov := set[txID]
		ov.TransactionID = txID
		ov.Lines = append(ov.Lines, core.OverrideLine{
			Position:    core.Position(position),
			AccountCode: code,
		})
		set[txID] = ov
	}
	return set, rows.Err()
}

// PutOverride replaces all mapping lines for the override's transaction in
// one database transaction, so re-applying an override is idempotent.
func (s *Postgres) PutOverride(ctx context.Context, ov core.AccountOverride) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"DELETE FROM account_overrides WHERE transaction_id = $1", ov.TransactionID,
	); err != nil {
		return fmt.Errorf("failed to clear previous override: %w", err)
	}
	for _, line := range ov.Lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO account_overrides (transaction_id, position, account_code)
			VALUES ($1, $2, $3)
		`, ov.TransactionID, string(line.Position), line.AccountCode); err != nil {
			return fmt.Errorf("failed to insert override line: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Postgres) DeleteOverride(ctx context.Context, transactionID string) error {
	if _, err := s.pool.Exec(ctx,
		"DELETE FROM account_overrides WHERE transaction_id = $1", transactionID,
	); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	return nil
}

// ── Transaction cache ─────────────────────────────────────────────────────────

// SaveTransaction upserts a locally captured transaction. Re-saving the
// same id overwrites the previous observation (last-normalized wins).
func (s *Postgres) SaveTransaction(ctx context.Context, t core.Transaction) error {
	items, err := json.Marshal(t.Items)
	if err != nil {
		return fmt.Errorf("failed to encode line items: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO cached_transactions
			(id, kind, date, amount, counterpart, account_code, offset_code, tender, description, items, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			kind = EXCLUDED.kind,
			date = EXCLUDED.date,
			amount = EXCLUDED.amount,
			counterpart = EXCLUDED.counterpart,
			account_code = EXCLUDED.account_code,
			offset_code = EXCLUDED.offset_code,
			tender = EXCLUDED.tender,
			description = EXCLUDED.description,
			items = EXCLUDED.items,
			source = EXCLUDED.source
	`, t.ID, string(t.Kind), nullableDate(t.Date), t.Amount, t.Counterpart,
		t.AccountCode, t.OffsetCode, t.Tender, t.Description, items, t.Source)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", t.ID, err)
	}
	return nil
}

func (s *Postgres) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, kind, date, amount, counterpart, account_code, offset_code, tender, description, items, source
		FROM cached_transactions
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			t     core.Transaction
			kind  string
			date  *time.Time
			items []byte
		)
		if err := rows.Scan(&t.ID, &kind, &date, &t.Amount, &t.Counterpart,
			&t.AccountCode, &t.OffsetCode, &t.Tender, &t.Description, &items, &t.Source); err != nil {
			return nil, fmt.Errorf("failed to scan cached transaction: %w", err)
		}
		t.Kind = core.TransactionKind(kind)
		if date != nil {
			t.Date = date.UTC()
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &t.Items); err != nil {
				return nil, fmt.Errorf("failed to decode line items for %s: %w", t.ID, err)
			}
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// ── Chart of accounts ─────────────────────────────────────────────────────────

func (s *Postgres) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT code, name, category, opening_balance
		FROM accounts
		ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.Code, &a.Name, &a.Category, &a.OpeningBalance); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// nullableDate maps the zero time to NULL so unparsable source dates do
// not end up as 0001-01-01 in the database.
func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
