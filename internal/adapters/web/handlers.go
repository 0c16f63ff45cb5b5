package web

import (
	"net/http"

	"shopledger/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the engine surface to the presentation layer as a JSON
// API. Dashboards, POS screens, and exports are external collaborators;
// they consume these endpoints.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	r.Get("/api/health", h.health)

	r.Get("/api/accounts", h.listAccounts)

	// ── Reports ───────────────────────────────────────────────────────────────
	r.Get("/api/reports/trial-balance", h.trialBalance)
	r.Get("/api/reports/profit-loss", h.profitAndLoss)
	r.Get("/api/reports/balance-sheet", h.balanceSheet)
	r.Get("/api/reports/integrity", h.integrity)

	// ── Overrides ─────────────────────────────────────────────────────────────
	r.Get("/api/overrides", h.listOverrides)
	r.Put("/api/overrides/{transactionID}", h.putOverride)
	r.Delete("/api/overrides/{transactionID}", h.deleteOverride)

	// ── Ingestion ─────────────────────────────────────────────────────────────
	r.Post("/api/transactions/{kind}", h.ingestRows)
	r.Post("/api/adjustments", h.addAdjustment)

	h.router = r
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "CHART_UNAVAILABLE", http.StatusBadGateway)
		return
	}
	writeJSON(w, accounts)
}
