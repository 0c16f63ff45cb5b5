package core

import "sort"

// Default account codes used by the journal mapping table when a
// transaction does not declare its own account and no override exists.
// The code prefix convention is load-bearing: 1xx assets, 2xx liabilities,
// 3xx equity, 4xx revenue, 5xx cost of sales, 6xx operating expense.
const (
	AccCash           = "1-1001"
	AccBank           = "1-1002"
	AccReceivable     = "1-1201"
	AccInventory      = "1-1301"
	AccPayable        = "2-1001"
	AccSalesRevenue   = "4-1001"
	AccCOGS           = "5-1001"
	AccGeneralExpense = "6-1001"
)

// DebitNormal reports whether the account code's leading digit puts it in
// the debit-normal class (assets, cost of sales, expenses and the 7-9
// ranges). Codes starting with 2, 3 or 4 are credit-normal. Codes with no
// recognizable leading digit (only reachable through overrides, which are
// surfaced as warnings) default to debit-normal.
func DebitNormal(code string) bool {
	if code == "" {
		return true
	}
	switch code[0] {
	case '2', '3', '4':
		return false
	default:
		return true
	}
}

// Chart is the read-only account registry. Account codes are globally
// unique; the first occurrence of a duplicated code wins.
type Chart struct {
	byCode map[string]Account
	codes  []string
}

// NewChart builds a registry from chart-of-accounts feed rows.
func NewChart(accounts []Account) *Chart {
	c := &Chart{byCode: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		if a.Code == "" {
			continue
		}
		if _, ok := c.byCode[a.Code]; ok {
			continue
		}
		c.byCode[a.Code] = a
		c.codes = append(c.codes, a.Code)
	}
	sort.Strings(c.codes)
	return c
}

// Lookup returns the account for code, if registered.
func (c *Chart) Lookup(code string) (Account, bool) {
	a, ok := c.byCode[code]
	return a, ok
}

// Name returns the display name for code, or the raw code itself when the
// chart does not know it (presentation falls back to the code).
func (c *Chart) Name(code string) string {
	if a, ok := c.byCode[code]; ok {
		return a.Name
	}
	return code
}

// Accounts returns all registered accounts in code order.
func (c *Chart) Accounts() []Account {
	out := make([]Account, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.byCode[code])
	}
	return out
}

// Len returns the number of registered accounts.
func (c *Chart) Len() int { return len(c.codes) }
