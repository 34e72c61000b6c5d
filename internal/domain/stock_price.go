package domain

// Provider tags stored in the source column.
const (
	SourceAlphaVantage = "alpha_vantage"
	SourceFake         = "fake"
)

// DefaultSymbols is the batch used when SYMBOLS is not configured.
var DefaultSymbols = []string{"AAPL", "GOOGL", "MSFT"}

// StockPrice is the canonical record appended to the store.
type StockPrice struct {
	Symbol    string
	Price     float64
	Source    string
	Timestamp int64
}
