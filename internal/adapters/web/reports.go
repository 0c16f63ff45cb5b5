package web

import (
	"net/http"
	"time"
)

// periodFromQuery reads from/to query parameters (YYYY-MM-DD). Absent or
// malformed bounds default to the current calendar month.
func periodFromQuery(r *http.Request) (time.Time, time.Time) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	if v := r.URL.Query().Get("from"); v != "" {
		if t, err := time.ParseInLocation("2006-01-02", v, time.UTC); err == nil {
			start = t
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if t, err := time.ParseInLocation("2006-01-02", v, time.UTC); err == nil {
			end = t
		}
	}
	return start, end
}

// trialBalance handles GET /api/reports/trial-balance?from=&to=.
func (h *Handler) trialBalance(w http.ResponseWriter, r *http.Request) {
	start, end := periodFromQuery(r)
	result, err := h.svc.GetTrialBalance(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err.Error(), "REPORT_FAILED", http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

// profitAndLoss handles GET /api/reports/profit-loss?from=&to=.
func (h *Handler) profitAndLoss(w http.ResponseWriter, r *http.Request) {
	start, end := periodFromQuery(r)
	result, err := h.svc.GetProfitAndLoss(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err.Error(), "REPORT_FAILED", http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

// balanceSheet handles GET /api/reports/balance-sheet?date=.
func (h *Handler) balanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()
	if v := r.URL.Query().Get("date"); v != "" {
		if t, err := time.ParseInLocation("2006-01-02", v, time.UTC); err == nil {
			asOf = t
		}
	}
	result, err := h.svc.GetBalanceSheet(r.Context(), asOf)
	if err != nil {
		writeError(w, r, err.Error(), "REPORT_FAILED", http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

// integrity handles GET /api/reports/integrity?from=&to=.
func (h *Handler) integrity(w http.ResponseWriter, r *http.Request) {
	start, end := periodFromQuery(r)
	result, err := h.svc.CheckIntegrity(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err.Error(), "REPORT_FAILED", http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}
