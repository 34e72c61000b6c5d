package application

import (
	"context"
	"strings"

	"stockquotes-ingestor/internal/domain"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// PriceService serves read-only lookups over persisted prices.
type PriceService struct {
	reader PriceReader
}

func NewPriceService(reader PriceReader) *PriceService { return &PriceService{reader: reader} }

func (s *PriceService) Latest(ctx context.Context, symbol string) (domain.StockPrice, error) {
	if strings.TrimSpace(symbol) == "" {
		return domain.StockPrice{}, ErrBadRequest
	}
	return s.reader.Latest(ctx, symbol)
}

func (s *PriceService) History(ctx context.Context, symbol string, limit int) ([]domain.StockPrice, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, ErrBadRequest
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.reader.History(ctx, symbol, limit)
}
