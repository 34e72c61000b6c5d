package domain

// RawQuote is the provider-shaped quote. PriceText is kept as reported;
// Price holds the value the source client parsed from it.
type RawQuote struct {
	Symbol    string
	PriceText string
	Price     float64
}
