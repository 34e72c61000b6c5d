package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"stockquotes-ingestor/internal/application"
	"stockquotes-ingestor/internal/domain"
	"stockquotes-ingestor/internal/infrastructure/logx"

	"go.uber.org/zap"
)

type Server struct {
	svc  *application.PriceService
	ping func(ctx context.Context) error
}

func NewServer(svc *application.PriceService) *Server { return &Server{svc: svc} }

// SetReadyCheck installs the probe behind /readyz.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

type GetLatestPriceParams struct {
	Symbol string
}

type ListPricesParams struct {
	Symbol string
	Limit  *int
}

type Price struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Source    string  `json:"source"`
	Timestamp int64   `json:"timestamp"`
}

type PriceList struct {
	Symbol string  `json:"symbol"`
	Prices []Price `json:"prices"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) GetLatestPrice(w http.ResponseWriter, r *http.Request, params GetLatestPriceParams) {
	p, err := s.svc.Latest(r.Context(), params.Symbol)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPrice(p))
}

func (s *Server) ListPrices(w http.ResponseWriter, r *http.Request, params ListPricesParams) {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	rows, err := s.svc.History(r.Context(), params.Symbol, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := PriceList{Symbol: params.Symbol, Prices: make([]Price, 0, len(rows))}
	for _, p := range rows {
		resp.Prices = append(resp.Prices, toPrice(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, application.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "symbol is required")
	default:
		logx.WithFields(r.Context()).Error("http.query_failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func toPrice(p domain.StockPrice) Price {
	return Price{Symbol: p.Symbol, Price: p.Price, Source: p.Source, Timestamp: p.Timestamp}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Code: status, Message: msg})
}
