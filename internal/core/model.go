package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies which source feed a canonical transaction
// came from and therefore which default journal mapping applies to it.
type TransactionKind string

const (
	KindSales      TransactionKind = "sales"
	KindPurchase   TransactionKind = "purchase"
	KindExpense    TransactionKind = "expense"
	KindPaymentIn  TransactionKind = "payment_in"
	KindPaymentOut TransactionKind = "payment_out"
	KindPosSale    TransactionKind = "pos_sale"
	KindManual     TransactionKind = "manual"
)

// Account is one chart-of-accounts entry. The engine only reads accounts;
// the chart feed owns their lifecycle. The leading digit of Code fixes the
// account's normal-balance polarity for good (see DebitNormal).
type Account struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// LineItem is a single item row on a sales, purchase, or POS transaction.
// UnitCost is the acquisition cost used for COGS recognition; zero means
// the cost is unknown and no COGS is booked for the item.
type LineItem struct {
	SKU       string          `json:"sku"`
	Qty       decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// Transaction is the canonical record every source row normalizes into.
// ID doubles as the dedup key: the same economic event observed through two
// channels (remote source and local cache) must carry the same ID and is
// counted exactly once. Immutable once produced.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Kind        TransactionKind `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Counterpart string          `json:"counterpart,omitempty"`

	// AccountCode is the declared primary account, when the source carries
	// one: the expense account for expenses, the bank/cash account for
	// payments, the debit account for manual adjustments.
	AccountCode string `json:"account_code,omitempty"`
	// OffsetCode is the declared credit account for manual adjustments.
	OffsetCode string `json:"offset_code,omitempty"`
	// Tender is the POS tender type ("cash" or anything else = bank).
	Tender string `json:"tender,omitempty"`

	Items       []LineItem `json:"items,omitempty"`
	Description string     `json:"description,omitempty"`
	Source      string     `json:"source,omitempty"`
}

// Position names one side of a double-entry posting.
type Position string

const (
	Debit  Position = "debit"
	Credit Position = "credit"
)

// OverrideLine redirects one position of a transaction's primary journal
// pair to a different account code.
type OverrideLine struct {
	Position    Position `json:"position"`
	AccountCode string   `json:"account_code"`
}

// AccountOverride is a user-authored account mapping for one transaction.
// It is persisted independently of the transaction and applied on every
// recomputation; re-applying it always yields the same journal.
type AccountOverride struct {
	TransactionID string         `json:"transaction_id"`
	Lines         []OverrideLine `json:"lines"`
}

// OverrideSet indexes overrides by transaction id.
type OverrideSet map[string]AccountOverride

// JournalLine is one side of a double-entry posting. Exactly one of
// Debit/Credit is non-zero (both are zero for no-op lines from zero-amount
// transactions). Journal lines are derived and never persisted: the
// transaction + override pair is authoritative.
type JournalLine struct {
	Ref         string          `json:"ref"`
	Date        time.Time       `json:"date"`
	AccountCode string          `json:"account_code"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	Source      string          `json:"source,omitempty"`
}

// TrialBalanceRow is the consolidated position of one account over a
// reporting period. PeriodDebit/PeriodCredit are raw in-period sums kept
// for display; Movement is polarity-adjusted; Ending = Opening + Movement.
//
// DeclaredOpening is the portion of Opening asserted by the chart feed
// rather than derived from journal lines. A declared opening has no
// offsetting posting in the ledger, so CheckBalance excludes it when
// comparing the polarity classes.
type TrialBalanceRow struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Opening         decimal.Decimal `json:"opening"`
	DeclaredOpening decimal.Decimal `json:"declared_opening"`
	PeriodDebit     decimal.Decimal `json:"period_debit"`
	PeriodCredit    decimal.Decimal `json:"period_credit"`
	Movement        decimal.Decimal `json:"movement"`
	Ending          decimal.Decimal `json:"ending"`
}

// AccountLine is a single account entry in a P&L or Balance Sheet section.
// Balance is expressed in the sign convention natural for that section.
type AccountLine struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// PLReport is the Profit & Loss statement for one reporting period,
// projected from trial-balance movement by account-code leading digit.
type PLReport struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	Revenue     []AccountLine `json:"revenue"`
	CostOfSales []AccountLine `json:"cost_of_sales"`
	Expenses    []AccountLine `json:"expenses"`

	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCOGS    decimal.Decimal `json:"total_cogs"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetProfit    decimal.Decimal `json:"net_profit"`
}

// BSReport is the Balance Sheet, projected from trial-balance ending
// balances by account-code prefix. RetainedEarnings is a presentation plug
// (assets minus liabilities and declared equity) that makes the statement
// balance by construction; it is reported separately so it cannot hide an
// integrity failure that CheckBalance would flag.
type BSReport struct {
	AsOf time.Time `json:"as_of"`

	CurrentAssets       []AccountLine `json:"current_assets"`
	FixedAssets         []AccountLine `json:"fixed_assets"`
	CurrentLiabilities  []AccountLine `json:"current_liabilities"`
	LongTermLiabilities []AccountLine `json:"long_term_liabilities"`
	Equity              []AccountLine `json:"equity"`

	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}

// IntegrityResult reports whether ending balances across debit-normal and
// credit-normal accounts agree. Imbalance is surfaced, never fixed.
type IntegrityResult struct {
	DebitTotal  decimal.Decimal `json:"debit_total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	Difference  decimal.Decimal `json:"difference"`
	Balanced    bool            `json:"balanced"`
}
