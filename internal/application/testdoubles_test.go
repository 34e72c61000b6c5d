package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"stockquotes-ingestor/internal/domain"
)

var errStore = errors.New("store error")

type fakeSource struct {
	mu     sync.Mutex
	quotes map[string]domain.RawQuote
	errs   map[string]error
	calls  []string
}

func (f *fakeSource) Fetch(_ context.Context, symbol string) (domain.RawQuote, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.mu.Unlock()
	if err, ok := f.errs[symbol]; ok {
		return domain.RawQuote{}, err
	}
	if q, ok := f.quotes[symbol]; ok {
		return q, nil
	}
	return domain.RawQuote{Symbol: symbol, PriceText: "1.00", Price: 1}, nil
}

type fakeWriter struct {
	mu   sync.Mutex
	rows []domain.StockPrice
	errs map[string]error
	seen []string
}

func (f *fakeWriter) Insert(_ context.Context, p domain.StockPrice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, p.Symbol)
	if err, ok := f.errs[p.Symbol]; ok {
		return err
	}
	f.rows = append(f.rows, p)
	return nil
}

func (f *fakeWriter) rowsFor(symbol string) []domain.StockPrice {
	var out []domain.StockPrice
	for _, r := range f.rows {
		if r.Symbol == symbol {
			out = append(out, r)
		}
	}
	return out
}

type fakeReader struct {
	rows []domain.StockPrice
	err  error
	last int
}

func (f *fakeReader) Latest(_ context.Context, symbol string) (domain.StockPrice, error) {
	if f.err != nil {
		return domain.StockPrice{}, f.err
	}
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].Symbol == symbol {
			return f.rows[i], nil
		}
	}
	return domain.StockPrice{}, ErrNotFound
}

func (f *fakeReader) History(_ context.Context, symbol string, limit int) ([]domain.StockPrice, error) {
	f.last = limit
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.StockPrice
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].Symbol == symbol {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type fakeLock struct {
	held     bool
	err      error
	released []string
}

func (f *fakeLock) TryAcquire(context.Context, string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	if f.held {
		return "", false, nil
	}
	return "tok-1", true, nil
}

func (f *fakeLock) Release(_ context.Context, _ string, token string) error {
	f.released = append(f.released, token)
	return nil
}

// recordingSleeper records pacing waits without sleeping.
type recordingSleeper struct {
	waits []time.Duration
	err   error
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return r.err
}
