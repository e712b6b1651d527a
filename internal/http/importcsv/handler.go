package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nkhandelwal/hisab/internal/account"
	"github.com/nkhandelwal/hisab/internal/auth"
	"github.com/nkhandelwal/hisab/internal/importer"
	"github.com/nkhandelwal/hisab/internal/watch"
)

type Handler struct {
	svc *importer.Service
	hub *watch.Hub
}

func NewHandler(svc *importer.Service, hub *watch.Hub) *Handler {
	return &Handler{svc: svc, hub: hub}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported        int      `json:"imported"`
	Skipped         int      `json:"skipped"`
	CreatedAccounts []string `json:"created_accounts,omitempty"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Accounts created for unknown categories get this type.
	accountType := account.ParseType(r.FormValue("account_type"))

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.svc.Import(r.Context(), userID, file, accountType)
	if err != nil {
		// Earlier rows may already be applied; report progress alongside.
		status := http.StatusBadRequest
		if result != nil && result.Imported > 0 {
			status = http.StatusInternalServerError
			h.hub.Notify(userID)
		}

		http.Error(w, err.Error(), status)

		return
	}

	h.hub.Notify(userID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{
		Imported:        result.Imported,
		Skipped:         result.Skipped,
		CreatedAccounts: result.CreatedAccounts,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
