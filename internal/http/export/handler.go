package export

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nkhandelwal/hisab/internal/auth"
	"github.com/nkhandelwal/hisab/internal/export"
	"github.com/nkhandelwal/hisab/internal/ledger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/statement.csv", h.statement)
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := ledger.ListFilter{Note: r.URL.Query().Get("note")}

	if s := r.URL.Query().Get("account_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.AccountID = new(id)
		}
	}

	if s := r.URL.Query().Get("type"); s != "" {
		filter.Type = new(ledger.EntryType(s))
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="statement.csv"`)

	if err := h.svc.Statement(r.Context(), userID, filter, w); err != nil {
		// Headers are already gone; the body is truncated CSV at this point.
		slog.Error("failed to write statement", "error", err)
	}
}
