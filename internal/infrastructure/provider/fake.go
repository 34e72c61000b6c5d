package provider

import (
	"context"
	"fmt"

	"stockquotes-ingestor/internal/application"
	"stockquotes-ingestor/internal/domain"
)

// Ensure Fake implements application.QuoteSource.
var _ application.QuoteSource = (*Fake)(nil)

// Fake quotes the same price for every symbol without any network call.
type Fake struct {
	priceText string
}

func NewFake(priceText string) *Fake { return &Fake{priceText: priceText} }

func (f *Fake) Fetch(_ context.Context, symbol string) (domain.RawQuote, error) {
	price, err := parsePrice(f.priceText)
	if err != nil {
		return domain.RawQuote{}, application.NewFetchError(application.KindParse, symbol,
			fmt.Errorf("fake: price %q: %w", f.priceText, err))
	}
	return domain.RawQuote{Symbol: symbol, PriceText: f.priceText, Price: price}, nil
}
