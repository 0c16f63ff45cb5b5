package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DeriveProfitAndLoss projects in-period trial-balance movement into a P&L
// statement, partitioned by the account code's leading digit: 4 revenue,
// 5 cost of goods sold, 6 operating expense. Accounts with zero movement
// are excluded from the presented breakdown but still counted in the
// totals.
func DeriveProfitAndLoss(tb []TrialBalanceRow, periodStart, periodEnd time.Time) *PLReport {
	report := &PLReport{PeriodStart: periodStart, PeriodEnd: periodEnd}

	for _, row := range tb {
		if row.Code == "" {
			continue
		}
		line := AccountLine{Code: row.Code, Name: row.Name, Balance: row.Movement}
		switch row.Code[0] {
		case '4':
			report.TotalRevenue = report.TotalRevenue.Add(row.Movement)
			if !row.Movement.IsZero() {
				report.Revenue = append(report.Revenue, line)
			}
		case '5':
			report.TotalCOGS = report.TotalCOGS.Add(row.Movement)
			if !row.Movement.IsZero() {
				report.CostOfSales = append(report.CostOfSales, line)
			}
		case '6':
			report.TotalExpense = report.TotalExpense.Add(row.Movement)
			if !row.Movement.IsZero() {
				report.Expenses = append(report.Expenses, line)
			}
		}
	}

	report.GrossProfit = report.TotalRevenue.Sub(report.TotalCOGS)
	report.NetProfit = report.GrossProfit.Sub(report.TotalExpense)
	return report
}

// DeriveBalanceSheet projects trial-balance ending balances into a Balance
// Sheet, partitioned by account-code prefix: 1-1 current assets, 1-2 fixed
// assets, 2-1 current liabilities, 2-2 long-term liabilities, 3 equity.
//
// Retained earnings is not tracked as its own ledger account, so it is
// computed as a plug that makes the statement balance by construction:
// assets − (liabilities + declared equity). The plug lives only in this
// presentation and is never posted back to the ledger, so a genuine
// imbalance still shows up in CheckBalance.
func DeriveBalanceSheet(tb []TrialBalanceRow, asOf time.Time) *BSReport {
	report := &BSReport{AsOf: asOf}

	declaredEquity := decimal.Zero
	for _, row := range tb {
		line := AccountLine{Code: row.Code, Name: row.Name, Balance: row.Ending}
		switch {
		case strings.HasPrefix(row.Code, "1-1"):
			report.TotalAssets = report.TotalAssets.Add(row.Ending)
			if !row.Ending.IsZero() {
				report.CurrentAssets = append(report.CurrentAssets, line)
			}
		case strings.HasPrefix(row.Code, "1-2"):
			report.TotalAssets = report.TotalAssets.Add(row.Ending)
			if !row.Ending.IsZero() {
				report.FixedAssets = append(report.FixedAssets, line)
			}
		case strings.HasPrefix(row.Code, "2-1"):
			report.TotalLiabilities = report.TotalLiabilities.Add(row.Ending)
			if !row.Ending.IsZero() {
				report.CurrentLiabilities = append(report.CurrentLiabilities, line)
			}
		case strings.HasPrefix(row.Code, "2-2"):
			report.TotalLiabilities = report.TotalLiabilities.Add(row.Ending)
			if !row.Ending.IsZero() {
				report.LongTermLiabilities = append(report.LongTermLiabilities, line)
			}
		case strings.HasPrefix(row.Code, "3"):
			declaredEquity = declaredEquity.Add(row.Ending)
			if !row.Ending.IsZero() {
				report.Equity = append(report.Equity, line)
			}
		}
	}

	report.RetainedEarnings = report.TotalAssets.Sub(report.TotalLiabilities).Sub(declaredEquity)
	report.TotalEquity = declaredEquity.Add(report.RetainedEarnings)
	return report
}
