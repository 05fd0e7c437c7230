package permissions

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amsaid/makhzan/internal/inventory"
)

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

type lineRequest struct {
	ItemID string             `json:"itemId"`
	Unit   string             `json:"unit"`
	Qty    inventory.Quantity `json:"qty"`
	Desc   string             `json:"desc"`
}

type createPermissionRequest struct {
	Number    string         `json:"number"`
	Type      inventory.Type `json:"type"`
	Store     string         `json:"store"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Date      inventory.Date `json:"date"`
	SubNumber string         `json:"subNumber"`
	Posted    *bool          `json:"posted,omitempty"`
	Lines     []lineRequest  `json:"lines"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Documents arriving over the API count immediately unless the client
	// opts out.
	posted := true
	if req.Posted != nil {
		posted = *req.Posted
	}

	perm, err := h.svc.AddPermission(r.Context(), inventory.AddPermissionParams{
		Number:    req.Number,
		Type:      req.Type,
		Store:     req.Store,
		From:      req.From,
		To:        req.To,
		Date:      req.Date,
		SubNumber: req.SubNumber,
		Posted:    posted,
		Lines:     toLineParams(req.Lines),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(perm); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.svc.Permissions()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	perm, err := h.svc.Permission(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(perm); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updatePermissionRequest struct {
	Number    *string         `json:"number,omitempty"`
	Type      *inventory.Type `json:"type,omitempty"`
	Store     *string         `json:"store,omitempty"`
	From      *string         `json:"from,omitempty"`
	To        *string         `json:"to,omitempty"`
	Date      *inventory.Date `json:"date,omitempty"`
	SubNumber *string         `json:"subNumber,omitempty"`
	Posted    *bool           `json:"posted,omitempty"`
	Lines     []lineRequest   `json:"lines,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := inventory.UpdatePermissionParams{
		Number:    req.Number,
		Type:      req.Type,
		Store:     req.Store,
		From:      req.From,
		To:        req.To,
		Date:      req.Date,
		SubNumber: req.SubNumber,
		Posted:    req.Posted,
	}
	if req.Lines != nil {
		params.Lines = toLineParams(req.Lines)
	}

	perm, err := h.svc.UpdatePermission(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(perm); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePermission(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toLineParams(lines []lineRequest) []inventory.LineParams {
	params := make([]inventory.LineParams, len(lines))
	for i, ln := range lines {
		params[i] = inventory.LineParams{
			ItemID: ln.ItemID,
			Unit:   ln.Unit,
			Qty:    ln.Qty,
			Desc:   ln.Desc,
		}
	}

	return params
}

func writeError(w http.ResponseWriter, err error) {
	var verr *inventory.ValidationError

	switch {
	case errors.As(err, &verr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)

		if encErr := json.NewEncoder(w).Encode(map[string]any{"errors": verr.Fields}); encErr != nil {
			slog.Error("failed to encode response", "error", encErr)
		}
	case errors.Is(err, inventory.ErrNotFound):
		http.Error(w, "permission not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
