package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amsaid/makhzan/internal/importer"
	"github.com/amsaid/makhzan/internal/inventory"
)

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importItems)
}

type importResponse struct {
	Imported int              `json:"imported"`
	Items    []inventory.Item `json:"items"`
	Skipped  []string         `json:"skipped"`
	Openings int              `json:"openings"`
}

func (h *Handler) importItems(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.svc.Import(r.Context(), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{
		Imported: len(result.Imported),
		Items:    result.Imported,
		Skipped:  result.Skipped,
		Openings: result.Openings,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
