package reports

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amsaid/makhzan/internal/inventory"
	"github.com/amsaid/makhzan/internal/ledger"
	"github.com/amsaid/makhzan/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/balances", h.balances)
	r.Get("/balances/export", h.exportBalances)
	r.Get("/items/{id}/card", h.card)
	r.Get("/items/{id}/card/export", h.exportCard)
}

// stockParams reads the shared filter query parameters. Absent or
// unparseable dates leave the bound unset.
func stockParams(r *http.Request) report.StockParams {
	q := r.URL.Query()

	return report.StockParams{
		From:   inventory.ParseDate(q.Get("from")),
		To:     inventory.ParseDate(q.Get("to")),
		Type:   inventory.Type(q.Get("type")),
		ItemID: q.Get("item_id"),
		Group:  q.Get("group"),
	}
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	rows := h.svc.Stock(stockParams(r))

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(rows); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) exportBalances(w http.ResponseWriter, r *http.Request) {
	rows := h.svc.Stock(stockParams(r))

	switch r.URL.Query().Get("format") {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", attachment("stock", "csv"))

		if err := report.WriteStockCSV(w, rows); err != nil {
			slog.Error("failed to write stock csv", "error", err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", attachment("stock", "xlsx"))

		if err := report.WriteStockXLSX(w, rows); err != nil {
			slog.Error("failed to write stock xlsx", "error", err)
		}
	default:
		http.Error(w, "unknown format", http.StatusBadRequest)
	}
}

type cardResponse struct {
	Item    inventory.Item     `json:"item"`
	Rows    []ledger.Row       `json:"rows"`
	Balance inventory.Quantity `json:"balance"`
}

func (h *Handler) card(w http.ResponseWriter, r *http.Request) {
	item, card := h.svc.Card(chi.URLParam(r, "id"))

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(cardResponse{
		Item:    item,
		Rows:    card.Rows,
		Balance: card.Balance,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) exportCard(w http.ResponseWriter, r *http.Request) {
	_, card := h.svc.Card(chi.URLParam(r, "id"))

	switch r.URL.Query().Get("format") {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", attachment("card", "csv"))

		if err := report.WriteCardCSV(w, card); err != nil {
			slog.Error("failed to write card csv", "error", err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", attachment("card", "xlsx"))

		if err := report.WriteCardXLSX(w, card); err != nil {
			slog.Error("failed to write card xlsx", "error", err)
		}
	default:
		http.Error(w, "unknown format", http.StatusBadRequest)
	}
}

func attachment(name, ext string) string {
	return fmt.Sprintf("attachment; filename=\"%s_%s.%s\"",
		name, time.Now().Format("20060102"), ext)
}
