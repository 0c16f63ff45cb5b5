package core

import (
	"sort"
	"time"
)

// Dedup collapses repeated observations of the same transaction id into
// one canonical transaction. Observation order is preserved for the first
// sighting of each id; the last-normalized value wins. This is what makes
// overlapping, repeated, or reordered merges of the remote source and the
// local cache safe to re-ingest.
func Dedup(txs []Transaction) []Transaction {
	index := make(map[string]int, len(txs))
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if at, ok := index[tx.ID]; ok {
			out[at] = tx
			continue
		}
		index[tx.ID] = len(out)
		out = append(out, tx)
	}
	return out
}

// BuildTrialBalance folds every journal line of every (deduplicated)
// transaction into one row per account for the reporting period
// [periodStart, periodEnd], both bounds inclusive.
//
// Lines dated strictly before periodStart fold into the opening balance
// with the account's polarity applied; in-period lines accumulate raw
// debit/credit sums; later lines are ignored. Accounts referenced by a
// journal line but absent from the chart get a synthesized row with a zero
// opening balance. The computation is a pure function of its inputs: the
// same snapshot always yields the same rows, in code order, regardless of
// transaction arrival order.
func BuildTrialBalance(txs []Transaction, overrides OverrideSet, chart *Chart, periodStart, periodEnd time.Time) []TrialBalanceRow {
	rows := make(map[string]*TrialBalanceRow, chart.Len())
	for _, a := range chart.Accounts() {
		rows[a.Code] = &TrialBalanceRow{
			Code:            a.Code,
			Name:            a.Name,
			Opening:         a.OpeningBalance,
			DeclaredOpening: a.OpeningBalance,
		}
	}
	ensure := func(code string) *TrialBalanceRow {
		if row, ok := rows[code]; ok {
			return row
		}
		row := &TrialBalanceRow{Code: code, Name: chart.Name(code)}
		rows[code] = row
		return row
	}

	for _, tx := range Dedup(txs) {
		for _, line := range GenerateJournal(tx, overrides, chart) {
			row := ensure(line.AccountCode)
			switch {
			case line.Date.Before(periodStart):
				if DebitNormal(line.AccountCode) {
					row.Opening = row.Opening.Add(line.Debit).Sub(line.Credit)
				} else {
					row.Opening = row.Opening.Add(line.Credit).Sub(line.Debit)
				}
			case !line.Date.After(periodEnd):
				row.PeriodDebit = row.PeriodDebit.Add(line.Debit)
				row.PeriodCredit = row.PeriodCredit.Add(line.Credit)
			}
		}
	}

	out := make([]TrialBalanceRow, 0, len(rows))
	for _, row := range rows {
		if DebitNormal(row.Code) {
			row.Movement = row.PeriodDebit.Sub(row.PeriodCredit)
		} else {
			row.Movement = row.PeriodCredit.Sub(row.PeriodDebit)
		}
		row.Ending = row.Opening.Add(row.Movement)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
