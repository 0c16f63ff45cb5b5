package app_test

import (
	"context"
	"testing"
	"time"

	"shopledger/internal/app"
	"shopledger/internal/core"
	"shopledger/internal/feeds"
	"shopledger/internal/store"

	"github.com/shopspring/decimal"
)

var (
	march    = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	marchEnd = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
)

func testAccounts() []core.Account {
	return []core.Account{
		{Code: "1-1001", Name: "Cash", OpeningBalance: decimal.NewFromInt(1000000)},
		{Code: "1-1002", Name: "Bank"},
		{Code: "1-1201", Name: "Accounts Receivable"},
		{Code: "2-1001", Name: "Accounts Payable"},
		{Code: "3-1001", Name: "Owner Capital", OpeningBalance: decimal.NewFromInt(1000000)},
		{Code: "4-1001", Name: "Sales Revenue"},
		{Code: "6-1001", Name: "General Expense"},
	}
}

func newTestService(sources ...feeds.Source) (*app.Service, *store.Memory) {
	mem := store.NewMemory(testAccounts())
	return app.NewService(mem, mem, mem, sources), mem
}

func TestService_TrialBalanceMergesFeedAndCache(t *testing.T) {
	ctx := context.Background()

	source := feeds.Static{
		SourceKind: core.KindSales,
		Rows: []core.RawRow{
			{Fields: map[string]string{"id": "INV-1", "date": "2024-03-10", "amount": "500000"}},
		},
	}
	svc, mem := newTestService(source)

	// The same sale also sits in the local cache, not yet synchronized.
	_ = mem.SaveTransaction(ctx, core.Transaction{
		ID: "INV-1", Kind: core.KindSales, Amount: decimal.NewFromInt(500000),
		Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Source: "local-cache",
	})

	result, err := svc.GetTrialBalance(ctx, march, marchEnd)
	if err != nil {
		t.Fatalf("GetTrialBalance: %v", err)
	}

	for _, row := range result.Rows {
		if row.Code == "1-1201" && row.Ending.String() != "500000" {
			t.Errorf("AR ending = %s, want 500000 (duplicate must count once)", row.Ending)
		}
	}
	if !result.Integrity.Balanced {
		t.Errorf("expected balanced, difference = %s", result.Integrity.Difference)
	}
}

func TestService_DeadSourceDegradesToWarning(t *testing.T) {
	svc, _ := newTestService(failingSource{})

	result, err := svc.GetTrialBalance(context.Background(), march, marchEnd)
	if err != nil {
		t.Fatalf("a dead feed must not fail the report: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for the unavailable source")
	}
}

func TestService_OverrideRedirectsReport(t *testing.T) {
	ctx := context.Background()
	source := feeds.Static{
		SourceKind: core.KindSales,
		Rows: []core.RawRow{
			{Fields: map[string]string{"id": "INV-2", "date": "2024-03-05", "amount": "100000"}},
		},
	}
	svc, _ := newTestService(source)

	err := svc.SetOverride(ctx, core.AccountOverride{
		TransactionID: "INV-2",
		Lines:         []core.OverrideLine{{Position: core.Debit, AccountCode: "1-1001"}},
	})
	if err != nil {
		t.Fatalf("SetOverride: %v", err)
	}

	result, _ := svc.GetTrialBalance(ctx, march, marchEnd)
	for _, row := range result.Rows {
		switch row.Code {
		case "1-1001":
			if row.PeriodDebit.String() != "100000" {
				t.Errorf("cash period debit = %s, want 100000", row.PeriodDebit)
			}
		case "1-1201":
			if !row.PeriodDebit.IsZero() {
				t.Errorf("AR should be untouched after override, got debit %s", row.PeriodDebit)
			}
		}
	}
}

func TestService_SetOverrideValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if err := svc.SetOverride(ctx, core.AccountOverride{}); err == nil {
		t.Error("expected error for missing transaction id")
	}
	err := svc.SetOverride(ctx, core.AccountOverride{
		TransactionID: "X",
		Lines:         []core.OverrideLine{{Position: "sideways", AccountCode: "1-1001"}},
	})
	if err == nil {
		t.Error("expected error for invalid position")
	}

	// The override store keys lines by (transaction, position); two lines
	// for the same position must be rejected before they reach it.
	err = svc.SetOverride(ctx, core.AccountOverride{
		TransactionID: "X",
		Lines: []core.OverrideLine{
			{Position: core.Debit, AccountCode: "1-1001"},
			{Position: core.Debit, AccountCode: "1-1002"},
		},
	})
	if err == nil {
		t.Error("expected error for duplicate position")
	}
}

func TestService_UnknownOverrideCodeIsWarnedNotRejected(t *testing.T) {
	ctx := context.Background()
	source := feeds.Static{
		SourceKind: core.KindExpense,
		Rows: []core.RawRow{
			{Fields: map[string]string{"id": "EXP-1", "date": "2024-03-05", "amount": "5000"}},
		},
	}
	svc, _ := newTestService(source)

	_ = svc.SetOverride(ctx, core.AccountOverride{
		TransactionID: "EXP-1",
		Lines:         []core.OverrideLine{{Position: core.Debit, AccountCode: "6-9999"}},
	})

	result, err := svc.GetTrialBalance(ctx, march, marchEnd)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, row := range result.Rows {
		if row.Code == "6-9999" {
			found = true
			if row.PeriodDebit.String() != "5000" {
				t.Errorf("unknown-code row debit = %s, want 5000", row.PeriodDebit)
			}
		}
	}
	if !found {
		t.Error("line with unknown code must still be posted")
	}

	warned := false
	for _, w := range result.Warnings {
		if w == "account code 6-9999 is not in the chart of accounts" {
			warned = true
		}
	}
	if !warned {
		t.Errorf("expected unknown-code warning, got %v", result.Warnings)
	}
}

func TestService_IngestAndManualAdjustment(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService()

	ingest, err := svc.IngestRows(ctx, core.KindExpense, []core.RawRow{
		{Fields: map[string]string{"id": "EXP-9", "date": "2024-03-02", "amount": "Rp 1.200.000"}},
		{Fields: map[string]string{"date": "2024-03-02", "amount": "10"}}, // no id: dropped
	})
	if err != nil {
		t.Fatal(err)
	}
	if ingest.Saved != 1 || len(ingest.Warnings) != 1 {
		t.Errorf("saved=%d warnings=%d, want 1/1", ingest.Saved, len(ingest.Warnings))
	}

	adj, err := svc.AddManualAdjustment(ctx, app.ManualAdjustmentRequest{
		Date:       time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(50000),
		DebitCode:  "6-1001",
		CreditCode: "1-1001",
	})
	if err != nil {
		t.Fatal(err)
	}
	if adj.ID == "" || adj.Kind != core.KindManual {
		t.Errorf("unexpected adjustment %+v", adj)
	}

	cached, _ := mem.ListTransactions(ctx)
	if len(cached) != 2 {
		t.Errorf("cache holds %d transactions, want 2", len(cached))
	}
}

func TestService_ProfitAndLossAndBalanceSheet(t *testing.T) {
	ctx := context.Background()
	source := feeds.Static{
		SourceKind: core.KindSales,
		Rows: []core.RawRow{
			{Fields: map[string]string{"id": "INV-3", "date": "2024-03-08", "amount": "750000"}},
		},
	}
	svc, _ := newTestService(source)

	pl, err := svc.GetProfitAndLoss(ctx, march, marchEnd)
	if err != nil {
		t.Fatal(err)
	}
	if pl.Report.TotalRevenue.String() != "750000" {
		t.Errorf("total revenue = %s, want 750000", pl.Report.TotalRevenue)
	}

	bs, err := svc.GetBalanceSheet(ctx, marchEnd)
	if err != nil {
		t.Fatal(err)
	}
	if !bs.Report.TotalAssets.Equal(bs.Report.TotalLiabilities.Add(bs.Report.TotalEquity)) {
		t.Error("balance sheet must balance")
	}
	if !bs.Integrity.Balanced {
		t.Errorf("ledger should be balanced, difference = %s", bs.Integrity.Difference)
	}
}

type failingSource struct{}

func (failingSource) Kind() core.TransactionKind { return core.KindSales }
func (failingSource) Fetch(ctx context.Context) ([]core.RawRow, error) {
	return nil, context.DeadlineExceeded
}
