package web

import (
	"encoding/json"
	"net/http"

	"shopledger/internal/app"
	"shopledger/internal/core"

	"github.com/go-chi/chi/v5"
)

// listOverrides handles GET /api/overrides.
func (h *Handler) listOverrides(w http.ResponseWriter, r *http.Request) {
	set, err := h.svc.ListOverrides(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "STORE_UNAVAILABLE", http.StatusBadGateway)
		return
	}
	writeJSON(w, set)
}

// putOverride handles PUT /api/overrides/{transactionID}. The body is the
// list of {position, account_code} mapping lines; it fully replaces any
// previous override for the transaction.
func (h *Handler) putOverride(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transactionID")

	var lines []core.OverrideLine
	if err := json.NewDecoder(r.Body).Decode(&lines); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	ov := core.AccountOverride{TransactionID: txID, Lines: lines}
	if err := h.svc.SetOverride(r.Context(), ov); err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSON(w, ov)
}

// deleteOverride handles DELETE /api/overrides/{transactionID}.
func (h *Handler) deleteOverride(w http.ResponseWriter, r *http.Request) {
	txID := chi.URLParam(r, "transactionID")
	if err := h.svc.RemoveOverride(r.Context(), txID); err != nil {
		writeError(w, r, err.Error(), "STORE_UNAVAILABLE", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ingestRows handles POST /api/transactions/{kind}. The body is a JSON
// array of raw rows ({"fields": {...}, "items": [...]}) in the source's
// own column layout.
func (h *Handler) ingestRows(w http.ResponseWriter, r *http.Request) {
	kind := core.TransactionKind(chi.URLParam(r, "kind"))
	switch kind {
	case core.KindSales, core.KindPurchase, core.KindExpense,
		core.KindPaymentIn, core.KindPaymentOut, core.KindPosSale, core.KindManual:
	default:
		writeError(w, r, "unknown transaction kind", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	var body []struct {
		Fields map[string]string `json:"fields"`
		Items  []core.RawItem    `json:"items,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	rows := make([]core.RawRow, 0, len(body))
	for _, b := range body {
		rows = append(rows, core.RawRow{Fields: b.Fields, Items: b.Items})
	}

	result, err := h.svc.IngestRows(r.Context(), kind, rows)
	if err != nil {
		writeError(w, r, err.Error(), "STORE_UNAVAILABLE", http.StatusBadGateway)
		return
	}
	writeJSON(w, result)
}

// addAdjustment handles POST /api/adjustments.
func (h *Handler) addAdjustment(w http.ResponseWriter, r *http.Request) {
	var req app.ManualAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.AddManualAdjustment(r.Context(), req)
	if err != nil {
		writeError(w, r, err.Error(), "STORE_UNAVAILABLE", http.StatusBadGateway)
		return
	}
	writeJSON(w, tx)
}
