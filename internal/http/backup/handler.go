package backup

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amsaid/makhzan/internal/backup"
	"github.com/amsaid/makhzan/internal/inventory/store"
)

type Handler struct {
	svc *backup.Service
}

func NewHandler(svc *backup.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Post("/", h.restore)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Export()
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		"attachment; filename=\""+backup.Filename(time.Now())+"\"")

	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write backup", "error", err)
	}
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Restore(r.Context(), r.Body); err != nil {
		// The message names what is wrong with the payload.
		if errors.Is(err, store.ErrInvalidBackup) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
