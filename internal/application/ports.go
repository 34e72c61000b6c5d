package application

import (
	"context"
	"time"

	"stockquotes-ingestor/internal/domain"
)

// QuoteSource performs exactly one provider request per call.
type QuoteSource interface {
	Fetch(ctx context.Context, symbol string) (domain.RawQuote, error)
}

// PriceWriter appends one record; no update or delete path.
type PriceWriter interface {
	Insert(ctx context.Context, p domain.StockPrice) error
}

type PriceReader interface {
	Latest(ctx context.Context, symbol string) (domain.StockPrice, error)
	History(ctx context.Context, symbol string, limit int) ([]domain.StockPrice, error)
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }
