package core_test

import (
	"testing"
	"time"

	"shopledger/internal/core"

	"github.com/shopspring/decimal"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestDeriveProfitAndLoss(t *testing.T) {
	tb := []core.TrialBalanceRow{
		{Code: "1-1001", Name: "Cash", Movement: d(100000)},
		{Code: "4-1001", Name: "Sales Revenue", Movement: d(500000)},
		{Code: "4-1002", Name: "Service Revenue", Movement: d(0)}, // zero movement: totals only
		{Code: "5-1001", Name: "COGS", Movement: d(200000)},
		{Code: "6-1001", Name: "General Expense", Movement: d(80000)},
		{Code: "6-1002", Name: "Utilities", Movement: d(20000)},
	}

	pl := core.DeriveProfitAndLoss(tb, time.Time{}, time.Time{})

	if len(pl.Revenue) != 1 {
		t.Errorf("zero-movement accounts must be excluded from the breakdown, got %d revenue rows", len(pl.Revenue))
	}
	if pl.TotalRevenue.String() != "500000" {
		t.Errorf("total revenue = %s, want 500000", pl.TotalRevenue)
	}
	if pl.GrossProfit.String() != "300000" {
		t.Errorf("gross profit = %s, want 300000", pl.GrossProfit)
	}
	if pl.TotalExpense.String() != "100000" {
		t.Errorf("total expense = %s, want 100000", pl.TotalExpense)
	}
	if pl.NetProfit.String() != "200000" {
		t.Errorf("net profit = %s, want 200000", pl.NetProfit)
	}
}

func TestDeriveBalanceSheet(t *testing.T) {
	tb := []core.TrialBalanceRow{
		{Code: "1-1001", Name: "Cash", Ending: d(800000)},
		{Code: "1-1201", Name: "AR", Ending: d(200000)},
		{Code: "1-2001", Name: "Equipment", Ending: d(500000)},
		{Code: "2-1001", Name: "AP", Ending: d(300000)},
		{Code: "2-2001", Name: "Bank Loan", Ending: d(400000)},
		{Code: "3-1001", Name: "Owner Capital", Ending: d(600000)},
		{Code: "4-1001", Name: "Sales Revenue", Ending: d(350000)}, // not a BS account
	}

	bs := core.DeriveBalanceSheet(tb, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))

	if bs.TotalAssets.String() != "1500000" {
		t.Errorf("total assets = %s, want 1500000", bs.TotalAssets)
	}
	if bs.TotalLiabilities.String() != "700000" {
		t.Errorf("total liabilities = %s, want 700000", bs.TotalLiabilities)
	}
	// Plug: 1,500,000 − (700,000 + 600,000) = 200,000.
	if bs.RetainedEarnings.String() != "200000" {
		t.Errorf("retained earnings plug = %s, want 200000", bs.RetainedEarnings)
	}
	if !bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity)) {
		t.Error("balance sheet must balance by construction")
	}
	if len(bs.CurrentAssets) != 2 || len(bs.FixedAssets) != 1 {
		t.Errorf("asset partition wrong: %d current, %d fixed", len(bs.CurrentAssets), len(bs.FixedAssets))
	}
	if len(bs.CurrentLiabilities) != 1 || len(bs.LongTermLiabilities) != 1 {
		t.Errorf("liability partition wrong")
	}
}

// The plug makes the statement balance even over a corrupted ledger; the
// integrity checker must still flag the underlying imbalance.
func TestDeriveBalanceSheet_PlugDoesNotMaskImbalance(t *testing.T) {
	tb := []core.TrialBalanceRow{
		{Code: "1-1001", Name: "Cash", Ending: d(1000)},
		{Code: "2-1001", Name: "AP", Ending: d(300)},
		// No offsetting entry anywhere: the ledger is genuinely out of balance.
	}

	bs := core.DeriveBalanceSheet(tb, time.Time{})
	if !bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity)) {
		t.Error("statement should still balance via the plug")
	}

	check := core.CheckBalance(tb)
	if check.Balanced {
		t.Error("integrity check must keep reporting the imbalance the plug papers over")
	}
	if check.Difference.String() != "700" {
		t.Errorf("difference = %s, want 700", check.Difference)
	}
}
