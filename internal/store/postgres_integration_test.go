package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"shopledger/internal/core"
	"shopledger/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE account_overrides, cached_transactions, accounts CASCADE;

		INSERT INTO accounts (code, name, category, opening_balance) VALUES
		('1-1001', 'Cash', 'asset', 250000),
		('4-1001', 'Sales Revenue', 'revenue', 0);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func TestPostgres_OverrideRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	pg := store.NewPostgres(pool)
	ctx := context.Background()

	ov := core.AccountOverride{
		TransactionID: "INV-100",
		Lines: []core.OverrideLine{
			{Position: core.Debit, AccountCode: "1-1002"},
			{Position: core.Credit, AccountCode: "4-1001"},
		},
	}
	if err := pg.PutOverride(ctx, ov); err != nil {
		t.Fatalf("PutOverride failed: %v", err)
	}

	// Re-applying with a single line must replace, not accumulate.
	ov.Lines = ov.Lines[:1]
	if err := pg.PutOverride(ctx, ov); err != nil {
		t.Fatalf("PutOverride (replace) failed: %v", err)
	}

	set, err := pg.ListOverrides(ctx)
	if err != nil {
		t.Fatalf("ListOverrides failed: %v", err)
	}
	got, ok := set["INV-100"]
	if !ok {
		t.Fatal("Expected override for INV-100")
	}
	if len(got.Lines) != 1 || got.Lines[0].AccountCode != "1-1002" {
		t.Fatalf("Expected single debit line 1-1002, got %+v", got.Lines)
	}

	if err := pg.DeleteOverride(ctx, "INV-100"); err != nil {
		t.Fatalf("DeleteOverride failed: %v", err)
	}
	set, err = pg.ListOverrides(ctx)
	if err != nil {
		t.Fatalf("ListOverrides after delete failed: %v", err)
	}
	if _, ok := set["INV-100"]; ok {
		t.Fatal("Override should be gone after delete")
	}
}

func TestPostgres_TransactionUpsert(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	pg := store.NewPostgres(pool)
	ctx := context.Background()

	tx := core.Transaction{
		ID:          "ADJ-1",
		Kind:        core.KindManual,
		Date:        time.Date(2024, 3, 10, 14, 30, 5, 0, time.UTC),
		Amount:      decimal.NewFromInt(75000),
		Counterpart: "Landlord",
		AccountCode: "6-1002",
		OffsetCode:  "1-1001",
		Description: "March rent",
		Source:      "manual",
		Items: []core.LineItem{
			{SKU: "RENT", Qty: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(75000)},
		},
	}
	if err := pg.SaveTransaction(ctx, tx); err != nil {
		t.Fatalf("SaveTransaction failed: %v", err)
	}

	// Same id again with a corrected amount must overwrite, not duplicate.
	tx.Amount = decimal.NewFromInt(80000)
	if err := pg.SaveTransaction(ctx, tx); err != nil {
		t.Fatalf("SaveTransaction (upsert) failed: %v", err)
	}

	txs, err := pg.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("Expected 1 cached transaction, got %d", len(txs))
	}
	got := txs[0]
	if !got.Amount.Equal(decimal.NewFromInt(80000)) {
		t.Fatalf("Expected amount 80000 after upsert, got %s", got.Amount)
	}
	if got.Kind != core.KindManual || got.AccountCode != "6-1002" {
		t.Fatalf("Unexpected transaction after round trip: %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].SKU != "RENT" {
		t.Fatalf("Line items did not survive round trip: %+v", got.Items)
	}
	// Time-of-day must survive the round trip, not just the calendar day.
	if !got.Date.Equal(tx.Date) {
		t.Fatalf("Expected date %s, got %s", tx.Date, got.Date)
	}
}

func TestPostgres_ZeroDateStoredAsNull(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	pg := store.NewPostgres(pool)
	ctx := context.Background()

	tx := core.Transaction{
		ID:     "NODATE-1",
		Kind:   core.KindExpense,
		Amount: decimal.NewFromInt(10000),
		Source: "manual",
	}
	if err := pg.SaveTransaction(ctx, tx); err != nil {
		t.Fatalf("SaveTransaction failed: %v", err)
	}

	txs, err := pg.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("Expected 1 cached transaction, got %d", len(txs))
	}
	if !txs[0].Date.IsZero() {
		t.Fatalf("Expected zero date to round-trip through NULL, got %s", txs[0].Date)
	}
}

func TestPostgres_ListAccounts(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	pg := store.NewPostgres(pool)

	accounts, err := pg.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 seeded accounts, got %d", len(accounts))
	}
	if accounts[0].Code != "1-1001" || !accounts[0].OpeningBalance.Equal(decimal.NewFromInt(250000)) {
		t.Fatalf("Unexpected first account: %+v", accounts[0])
	}
}
