package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ventaclara/internal/core"
	"ventaclara/internal/week"
)

// itemView is the wire shape of one ledger row. Price and Quantity stay
// the raw numeric text the user typed; Total is derived per read.
type itemView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          string  `json:"price"`
	Quantity       string  `json:"quantity"`
	Total          float64 `json:"total"`
	TotalFormatted string  `json:"totalFormatted"`
}

type dayView struct {
	DayName        string     `json:"dayName"`
	Products       []itemView `json:"products"`
	Total          float64    `json:"total"`
	TotalFormatted string     `json:"totalFormatted"`
}

type weekView struct {
	Days                 []dayView `json:"days"`
	WeeklyTotal          float64   `json:"weeklyTotal"`
	WeeklyTotalFormatted string    `json:"weeklyTotalFormatted"`
	Currency             string    `json:"currency"`
	Revision             int64     `json:"revision"`
}

func (s *Server) weekView() weekView {
	w := s.ledger.Week()
	view := weekView{
		Days:     make([]dayView, 0, len(w.Days)),
		Currency: s.opts.CurrencyCode,
		Revision: s.ledger.Revision(),
	}
	for i, d := range w.Days {
		dv := dayView{
			DayName:  d.DayName,
			Products: make([]itemView, 0, len(d.Products)),
		}
		for _, p := range d.Products {
			total := core.ItemTotal(p)
			dv.Products = append(dv.Products, itemView{
				ID:             p.ID,
				Name:           p.Name,
				Price:          p.Price,
				Quantity:       p.Quantity,
				Total:          total,
				TotalFormatted: formatCurrency(total, s.opts.CurrencyCode),
			})
		}
		dv.Total = w.DailyTotal(i)
		dv.TotalFormatted = formatCurrency(dv.Total, s.opts.CurrencyCode)
		view.Days = append(view.Days, dv)
	}
	view.WeeklyTotal = w.WeeklyTotal()
	view.WeeklyTotalFormatted = formatCurrency(view.WeeklyTotal, s.opts.CurrencyCode)
	return view
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.weekView())
}

type totalsView struct {
	Days                 []dayTotalView `json:"days"`
	WeeklyTotal          float64        `json:"weeklyTotal"`
	WeeklyTotalFormatted string         `json:"weeklyTotalFormatted"`
	Currency             string         `json:"currency"`
}

type dayTotalView struct {
	DayName        string  `json:"dayName"`
	Total          float64 `json:"total"`
	TotalFormatted string  `json:"totalFormatted"`
}

func (s *Server) handleWeekTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	lw := s.ledger.Week()
	view := totalsView{
		Days:     make([]dayTotalView, 0, len(lw.Days)),
		Currency: s.opts.CurrencyCode,
	}
	for i, d := range lw.Days {
		total := lw.DailyTotal(i)
		view.Days = append(view.Days, dayTotalView{
			DayName:        d.DayName,
			Total:          total,
			TotalFormatted: formatCurrency(total, s.opts.CurrencyCode),
		})
	}
	view.WeeklyTotal = lw.WeeklyTotal()
	view.WeeklyTotalFormatted = formatCurrency(view.WeeklyTotal, s.opts.CurrencyCode)
	writeJSON(w, http.StatusOK, view)
}

type addItemRequest struct {
	Day int `json:"day"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cuerpo de la solicitud no válido"})
		return
	}

	item, err := s.ledger.AddItem(r.Context(), req.Day)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, itemView{
		ID:             item.ID,
		Name:           item.Name,
		Price:          item.Price,
		Quantity:       item.Quantity,
		TotalFormatted: formatCurrency(0, s.opts.CurrencyCode),
	})
}

type removeItemRequest struct {
	Day int    `json:"day"`
	ID  string `json:"id"`
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		w.Header().Set("Allow", "POST, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cuerpo de la solicitud no válido"})
		return
	}

	if err := s.ledger.RemoveItem(r.Context(), req.Day, req.ID); err != nil {
		s.writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.weekView())
}

type editItemRequest struct {
	Day   int    `json:"day"`
	ID    string `json:"id"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// handleEditItem applies a field edit. A rejected numeric value is not
// an error: the prior text is retained and the response carries
// changed=false with the authoritative state.
func (s *Server) handleEditItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req editItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cuerpo de la solicitud no válido"})
		return
	}

	changed, err := s.ledger.EditField(r.Context(), req.Day, req.ID, strings.TrimSpace(req.Field), req.Value)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	resp := struct {
		Changed bool     `json:"changed"`
		Week    weekView `json:"week"`
	}{Changed: changed, Week: s.weekView()}
	writeJSON(w, http.StatusOK, resp)
}

type adjustQuantityRequest struct {
	Day   int     `json:"day"`
	ID    string  `json:"id"`
	Delta float64 `json:"delta"`
}

func (s *Server) handleAdjustQuantity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req adjustQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cuerpo de la solicitud no válido"})
		return
	}

	quantity, err := s.ledger.AdjustQuantity(r.Context(), req.Day, req.ID, req.Delta)
	if err != nil {
		s.writeLedgerError(w, r, err)
		return
	}

	resp := struct {
		Quantity string   `json:"quantity"`
		Week     weekView `json:"week"`
	}{Quantity: quantity, Week: s.weekView()}
	writeJSON(w, http.StatusOK, resp)
}

// handleToday resolves a calendar date (default now) to its weekday tab
// and returns that day's rows.
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ref := time.Now()
	if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "fecha no válida, use AAAA-MM-DD"})
			return
		}
		ref = parsed
	}

	idx := week.IndexFor(ref)
	view := s.weekView()

	resp := struct {
		Day   int     `json:"day"`
		Date  string  `json:"date"`
		Today dayView `json:"today"`
	}{
		Day:   idx,
		Date:  week.DateOf(idx, ref).Format("2006-01-02"),
		Today: view.Days[idx],
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeLedgerError maps domain errors onto HTTP statuses.
func (s *Server) writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidDay):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "día fuera de rango"})
	case errors.Is(err, core.ErrUnknownField):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "campo desconocido"})
	case errors.Is(err, core.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "producto no encontrado"})
	default:
		slog.ErrorContext(r.Context(), "Ledger operation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error interno"})
	}
}
