package core

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// GenerateJournal maps one canonical transaction to balanced journal lines.
// The default account pair per kind can be redirected by a user override
// keyed on the transaction id: overrides replace account codes per position
// on the primary pair only, never amounts, and never the COGS recognition
// pairs of a POS sale. An override referencing a code the chart does not
// know is still emitted (the display layer falls back to the raw code);
// UnknownAccountCodes flags such lines for the caller.
//
// Invariant: total debit equals total credit across the returned lines.
func GenerateJournal(tx Transaction, overrides OverrideSet, chart *Chart) []JournalLine {
	debitCode, creditCode := defaultPair(tx)
	if ov, ok := overrides[tx.ID]; ok {
		for _, line := range ov.Lines {
			switch line.Position {
			case Debit:
				debitCode = line.AccountCode
			case Credit:
				creditCode = line.AccountCode
			}
		}
	}

	amount := tx.Amount
	switch tx.Kind {
	case KindSales, KindPosSale:
		if len(tx.Items) > 0 {
			amount = itemRevenue(tx.Items)
		}
	case KindPurchase:
		if len(tx.Items) > 0 {
			amount = itemCost(tx.Items)
		}
	}

	lines := []JournalLine{
		{Ref: tx.ID, Date: tx.Date, AccountCode: debitCode, Debit: amount, Credit: decimal.Zero, Description: tx.Description, Source: tx.Source},
		{Ref: tx.ID, Date: tx.Date, AccountCode: creditCode, Debit: decimal.Zero, Credit: amount, Description: tx.Description, Source: tx.Source},
	}

	// Per-item cost recognition for POS sales. Items with a zero or unknown
	// unit cost contribute no COGS pair.
	if tx.Kind == KindPosSale {
		for _, it := range tx.Items {
			cost := it.UnitCost.Mul(it.Qty)
			if !cost.IsPositive() {
				continue
			}
			desc := fmt.Sprintf("COGS %s", it.SKU)
			lines = append(lines,
				JournalLine{Ref: tx.ID, Date: tx.Date, AccountCode: AccCOGS, Debit: cost, Credit: decimal.Zero, Description: desc, Source: tx.Source},
				JournalLine{Ref: tx.ID, Date: tx.Date, AccountCode: AccInventory, Debit: decimal.Zero, Credit: cost, Description: desc, Source: tx.Source},
			)
		}
	}

	return lines
}

// defaultPair is the kind-specific default mapping table.
func defaultPair(tx Transaction) (debit, credit string) {
	switch tx.Kind {
	case KindSales:
		return AccReceivable, AccSalesRevenue
	case KindPurchase:
		return AccInventory, AccPayable
	case KindExpense:
		return orDefault(tx.AccountCode, AccGeneralExpense), AccBank
	case KindPaymentIn:
		return orDefault(tx.AccountCode, AccBank), AccReceivable
	case KindPaymentOut:
		return AccPayable, orDefault(tx.AccountCode, AccBank)
	case KindPosSale:
		if tx.Tender == "cash" {
			return AccCash, AccSalesRevenue
		}
		return AccBank, AccSalesRevenue
	case KindManual:
		return orDefault(tx.AccountCode, AccGeneralExpense), orDefault(tx.OffsetCode, AccBank)
	default:
		return AccGeneralExpense, AccBank
	}
}

func orDefault(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}

func itemRevenue(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(it.Qty))
	}
	return total
}

func itemCost(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitCost.Mul(it.Qty))
	}
	return total
}

// UnknownAccountCodes returns the distinct account codes referenced by the
// given journal lines that are not registered in the chart, sorted. Lines
// carrying such codes are valid and already posted; this only feeds the
// warning surface.
func UnknownAccountCodes(lines []JournalLine, chart *Chart) []string {
	seen := make(map[string]bool)
	for _, line := range lines {
		if _, ok := chart.Lookup(line.AccountCode); !ok {
			seen[line.AccountCode] = true
		}
	}
	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
