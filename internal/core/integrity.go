package core

import "github.com/shopspring/decimal"

// balanceTolerance absorbs rounding drift from currency arithmetic in
// opening balances. Amounts are integer-denominated, so a real imbalance
// clears it by orders of magnitude.
var balanceTolerance = decimal.NewFromFloat(0.01)

// CheckBalance verifies global debit/credit equality: the journal-derived
// ending across debit-normal accounts must equal the journal-derived
// ending across credit-normal accounts. Declared chart openings are
// asserted by the chart feed with no offsetting posting in the ledger, so
// they are excluded; only what the journal actually booked can trip the
// check. Imbalance is reported with the computed discrepancy, never raised
// as an error and never patched — callers decide how to surface it (a
// warning banner, not a blocking failure).
func CheckBalance(tb []TrialBalanceRow) IntegrityResult {
	debit, credit := decimal.Zero, decimal.Zero
	for _, row := range tb {
		booked := row.Ending.Sub(row.DeclaredOpening)
		if DebitNormal(row.Code) {
			debit = debit.Add(booked)
		} else {
			credit = credit.Add(booked)
		}
	}
	diff := debit.Sub(credit)
	return IntegrityResult{
		DebitTotal:  debit,
		CreditTotal: credit,
		Difference:  diff,
		Balanced:    diff.Abs().LessThan(balanceTolerance),
	}
}
