package core_test

import (
	"testing"

	"shopledger/internal/core"

	"github.com/shopspring/decimal"
)

func TestCheckBalance_Balanced(t *testing.T) {
	tb := []core.TrialBalanceRow{
		{Code: "1-1001", Ending: decimal.NewFromInt(1500000)}, // debit-normal
		{Code: "5-1001", Ending: decimal.NewFromInt(200000)},  // debit-normal
		{Code: "2-1001", Ending: decimal.NewFromInt(700000)},  // credit-normal
		{Code: "4-1001", Ending: decimal.NewFromInt(1000000)}, // credit-normal
	}

	result := core.CheckBalance(tb)
	if !result.Balanced {
		t.Errorf("expected balanced, difference = %s", result.Difference)
	}
	if result.DebitTotal.String() != "1700000" || result.CreditTotal.String() != "1700000" {
		t.Errorf("totals = %s/%s, want 1700000/1700000", result.DebitTotal, result.CreditTotal)
	}
}

func TestCheckBalance_ReportsDiscrepancy(t *testing.T) {
	tb := []core.TrialBalanceRow{
		{Code: "1-1001", Ending: decimal.NewFromInt(1000)},
		{Code: "4-1001", Ending: decimal.NewFromInt(900)},
	}

	result := core.CheckBalance(tb)
	if result.Balanced {
		t.Error("expected imbalance to be flagged")
	}
	if result.Difference.String() != "100" {
		t.Errorf("difference = %s, want 100", result.Difference)
	}
}

func TestCheckBalance_ExcludesDeclaredOpening(t *testing.T) {
	tb := []core.TrialBalanceRow{
		{Code: "1-1001", Ending: decimal.NewFromInt(1300000), DeclaredOpening: decimal.NewFromInt(1000000)},
		{Code: "4-1001", Ending: decimal.NewFromInt(300000)},
	}
	result := core.CheckBalance(tb)
	if !result.Balanced {
		t.Errorf("declared opening must not count as booked, difference = %s", result.Difference)
	}
	if result.DebitTotal.String() != "300000" {
		t.Errorf("booked debit total = %s, want 300000", result.DebitTotal)
	}

	// A discrepancy beyond the declared portion is still flagged.
	tb[0].Ending = decimal.NewFromInt(1500000)
	if result := core.CheckBalance(tb); result.Balanced || result.Difference.String() != "200000" {
		t.Errorf("expected difference 200000, got balanced=%v difference=%s",
			result.Balanced, result.Difference)
	}
}

func TestCheckBalance_ToleratesRoundingDrift(t *testing.T) {
	tb := []core.TrialBalanceRow{
		{Code: "1-1001", Ending: decimal.RequireFromString("1000.004")},
		{Code: "4-1001", Ending: decimal.RequireFromString("1000.00")},
	}

	if result := core.CheckBalance(tb); !result.Balanced {
		t.Errorf("sub-tolerance drift should pass, difference = %s", result.Difference)
	}
}

func TestCheckBalance_EmptyLedger(t *testing.T) {
	if result := core.CheckBalance(nil); !result.Balanced {
		t.Error("an empty ledger is trivially balanced")
	}
}
