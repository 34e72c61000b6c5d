package application

import (
	"time"

	"stockquotes-ingestor/internal/domain"
)

// SymbolOutcome is the result of processing one symbol. Record is set only on success.
type SymbolOutcome struct {
	Symbol string
	Record *domain.StockPrice
	Kind   ErrorKind
	Err    error
}

func (o SymbolOutcome) OK() bool { return o.Err == nil }

// BatchOutcome lists one SymbolOutcome per configured symbol, in input order.
type BatchOutcome struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []SymbolOutcome
}

func (b BatchOutcome) Succeeded() []string {
	var out []string
	for _, r := range b.Results {
		if r.OK() {
			out = append(out, r.Symbol)
		}
	}
	return out
}

func (b BatchOutcome) Failed() []SymbolOutcome {
	var out []SymbolOutcome
	for _, r := range b.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// FailedKinds maps each failed symbol to its error kind.
func (b BatchOutcome) FailedKinds() map[string]ErrorKind {
	out := make(map[string]ErrorKind)
	for _, r := range b.Results {
		if !r.OK() {
			out[r.Symbol] = r.Kind
		}
	}
	return out
}
