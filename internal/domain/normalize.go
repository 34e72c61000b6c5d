package domain

import "time"

// Normalize maps a raw quote into the canonical record. The timestamp comes from
// capturedAt, never from the provider.
func Normalize(raw RawQuote, source string, capturedAt time.Time) StockPrice {
	return StockPrice{
		Symbol:    raw.Symbol,
		Price:     raw.Price,
		Source:    source,
		Timestamp: capturedAt.UTC().Unix(),
	}
}
