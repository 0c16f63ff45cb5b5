package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one loosely shaped row from an external source: string-keyed
// fields plus, for item-bearing sources, raw line items. Each source has
// its own column layout; the per-kind adapters below are the only place
// that knows source column names.
type RawRow struct {
	Fields map[string]string `json:"fields"`
	Items  []RawItem         `json:"items,omitempty"`
}

// RawItem is an unparsed line item attached to a raw row.
type RawItem struct {
	SKU       string `json:"sku"`
	Qty       string `json:"qty"`
	UnitPrice string `json:"unit_price"`
	UnitCost  string `json:"unit_cost"`
}

var nonAmountChars = regexp.MustCompile(`[^0-9-]`)

// CleanAmount parses a currency-formatted string defensively: everything
// except digits and a leading sign is stripped ("Rp 1.200.000" → 1200000,
// "1,500" → 1500), and anything unparsable or empty ("-", "N/A") resolves
// to zero rather than failing. One bad cell must never abort a
// recomputation.
func CleanAmount(text string) decimal.Decimal {
	cleaned := nonAmountChars.ReplaceAllString(text, "")
	neg := strings.HasPrefix(strings.TrimSpace(text), "-") ||
		strings.HasPrefix(cleaned, "-")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	if cleaned == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if neg {
		return amount.Neg()
	}
	return amount
}

// dateLayouts are tried in order when parsing source dates. Layouts mirror
// what the spreadsheet feeds actually emit.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
}

// parseDate returns the zero time for unparsable input. Zero-dated lines
// sort strictly before any reporting period and fold into opening balances
// instead of disappearing.
func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

// field returns the first non-empty value among the given column aliases.
func (r RawRow) field(aliases ...string) string {
	for _, key := range aliases {
		if v := strings.TrimSpace(r.Fields[key]); v != "" {
			return v
		}
	}
	return ""
}

// Normalize converts raw source rows of one kind into canonical
// transactions. Rows missing an identity field are dropped and reported in
// the returned warnings; every other defect coerces to a safe default.
// The mapping is pure: no I/O, no mutation of the input.
func Normalize(rows []RawRow, kind TransactionKind) ([]Transaction, []string) {
	var (
		txs      []Transaction
		warnings []string
	)
	for i, row := range rows {
		id := row.field("id", "transaction_id", "no", "ref", "invoice_no", "receipt_no")
		if id == "" {
			warnings = append(warnings, fmt.Sprintf("%s row %d dropped: missing id", kind, i))
			continue
		}

		tx := Transaction{
			ID:          id,
			Kind:        kind,
			Date:        parseDate(row.field("date", "tanggal", "transaction_date")),
			Amount:      CleanAmount(row.field("amount", "total", "nominal", "jumlah")),
			Counterpart: row.field("counterpart", "customer", "supplier", "partner", "vendor"),
			Description: row.field("description", "note", "keterangan", "memo"),
			Source:      string(kind),
		}

		switch kind {
		case KindExpense:
			tx.AccountCode = row.field("account", "account_code", "expense_account")
		case KindPaymentIn, KindPaymentOut:
			tx.AccountCode = row.field("account", "account_code", "bank_account")
		case KindPosSale:
			tx.Tender = strings.ToLower(row.field("tender", "payment_method", "payment"))
		case KindManual:
			tx.AccountCode = row.field("debit_account", "account", "account_code")
			tx.OffsetCode = row.field("credit_account", "offset_account", "offset")
		}

		for _, it := range row.Items {
			tx.Items = append(tx.Items, LineItem{
				SKU:       strings.TrimSpace(it.SKU),
				Qty:       CleanAmount(it.Qty),
				UnitPrice: CleanAmount(it.UnitPrice),
				UnitCost:  CleanAmount(it.UnitCost),
			})
		}

		txs = append(txs, tx)
	}
	return txs, warnings
}
