// seed is a one-shot tool to load the default chart of accounts.
// Run it after migrations on a fresh database, or to restore account
// names and categories that were accidentally edited away.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"shopledger/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Seeding chart of accounts...")
	_, err = tx.Exec(ctx, `
		INSERT INTO accounts (code, name, category, opening_balance)
		VALUES
		  ('1-1001', 'Cash',                 'asset',     0),
		  ('1-1002', 'Bank',                 'asset',     0),
		  ('1-1201', 'Accounts Receivable',  'asset',     0),
		  ('1-1301', 'Inventory',            'asset',     0),
		  ('1-2001', 'Equipment',            'asset',     0),
		  ('2-1001', 'Accounts Payable',     'liability', 0),
		  ('2-2001', 'Long-Term Loans',      'liability', 0),
		  ('3-1001', 'Owner Capital',        'equity',    0),
		  ('4-1001', 'Sales Revenue',        'revenue',   0),
		  ('5-1001', 'Cost of Goods Sold',   'expense',   0),
		  ('6-1001', 'General Expense',      'expense',   0),
		  ('6-1002', 'Rent Expense',         'expense',   0),
		  ('6-1003', 'Salary Expense',       'expense',   0)
		ON CONFLICT (code) DO UPDATE
		  SET name = EXCLUDED.name,
		      category = EXCLUDED.category;
	`)
	if err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Chart of accounts seeded.")
	os.Exit(0)
}
