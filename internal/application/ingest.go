package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stockquotes-ingestor/internal/domain"

	"go.uber.org/zap"
)

const defaultLockKey = "stockquotes:ingest:lock"

// IngestService runs one batch pass: fetch, normalize and persist per symbol.
// Symbols are processed strictly one at a time so only a single provider
// request is ever outstanding.
type IngestService struct {
	source    QuoteSource
	writer    PriceWriter
	sourceTag string

	lock         BatchLock
	lockKey      string
	clock        Clock
	sleep        func(ctx context.Context, d time.Duration) error
	log          *zap.Logger
	pacing       time.Duration
	fetchTimeout time.Duration
	storeTimeout time.Duration
}

type Option func(*IngestService)

func WithClock(c Clock) Option           { return func(s *IngestService) { s.clock = c } }
func WithLogger(l *zap.Logger) Option    { return func(s *IngestService) { s.log = l } }
func WithLock(l BatchLock) Option        { return func(s *IngestService) { s.lock = l } }
func WithLockKey(k string) Option        { return func(s *IngestService) { s.lockKey = k } }
func WithPacing(d time.Duration) Option  { return func(s *IngestService) { s.pacing = d } }
func WithFetchTimeout(d time.Duration) Option {
	return func(s *IngestService) { s.fetchTimeout = d }
}
func WithStoreTimeout(d time.Duration) Option {
	return func(s *IngestService) { s.storeTimeout = d }
}

// WithSleeper replaces the pacing wait; tests use it to record delays.
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(s *IngestService) { s.sleep = fn }
}

func NewIngestService(source QuoteSource, writer PriceWriter, sourceTag string, opts ...Option) *IngestService {
	s := &IngestService{
		source:    source,
		writer:    writer,
		sourceTag: sourceTag,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.lock == nil {
		s.lock = NoopLock{}
	}
	if s.lockKey == "" {
		s.lockKey = defaultLockKey
	}
	if s.sleep == nil {
		s.sleep = sleepCtx
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Run performs exactly one pass over symbols. Per-symbol failures are recorded
// in the outcome; the returned error is non-nil only when the batch could not
// start (lock held or lock backend failure).
func (s *IngestService) Run(ctx context.Context, symbols []string) (BatchOutcome, error) {
	out := BatchOutcome{StartedAt: s.clock.Now()}
	log := s.log.With(zap.String("source", s.sourceTag))

	token, ok, err := s.lock.TryAcquire(ctx, s.lockKey)
	if err != nil {
		return out, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !ok {
		log.Warn("ingest.batch_locked", zap.String("lock_key", s.lockKey))
		return out, ErrBatchInProgress
	}
	defer s.release(ctx, log, token)

	log.Info("ingest.batch_started", zap.Int("symbols", len(symbols)), zap.Duration("pacing", s.pacing))
	for i, sym := range symbols {
		if ctx.Err() != nil {
			out.Results = append(out.Results, canceled(symbols[i:], ctx.Err())...)
			break
		}
		out.Results = append(out.Results, s.processOne(ctx, log, sym))
		if i == len(symbols)-1 {
			break
		}
		if err := s.sleep(ctx, s.pacing); err != nil {
			out.Results = append(out.Results, canceled(symbols[i+1:], err)...)
			break
		}
	}
	out.FinishedAt = s.clock.Now()

	failed := out.Failed()
	log.Info("ingest.batch_finished",
		zap.Int("succeeded", len(out.Results)-len(failed)),
		zap.Int("failed", len(failed)),
		zap.Duration("duration", out.FinishedAt.Sub(out.StartedAt)),
	)
	return out, nil
}

func (s *IngestService) processOne(ctx context.Context, log *zap.Logger, symbol string) SymbolOutcome {
	log = log.With(zap.String("symbol", symbol))
	if strings.TrimSpace(symbol) == "" {
		err := NewFetchError(KindInvalidSymbol, symbol, errors.New("empty symbol"))
		log.Warn("ingest.symbol_invalid", zap.String("kind", string(KindInvalidSymbol)))
		return SymbolOutcome{Symbol: symbol, Kind: KindInvalidSymbol, Err: err}
	}

	raw, err := s.fetch(ctx, symbol)
	if err != nil {
		kind := KindOf(err)
		log.Warn("ingest.fetch_failed", zap.String("kind", string(kind)), zap.Error(err))
		return SymbolOutcome{Symbol: symbol, Kind: kind, Err: err}
	}

	rec := domain.Normalize(raw, s.sourceTag, s.clock.Now())
	if err := s.persist(ctx, rec); err != nil {
		log.Warn("ingest.persist_failed", zap.String("kind", string(KindWrite)), zap.Error(err))
		return SymbolOutcome{Symbol: symbol, Kind: KindWrite, Err: err}
	}
	log.Info("ingest.persisted", zap.Float64("price", rec.Price), zap.Int64("timestamp", rec.Timestamp))
	return SymbolOutcome{Symbol: symbol, Record: &rec}
}

func (s *IngestService) fetch(ctx context.Context, symbol string) (domain.RawQuote, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	raw, err := s.source.Fetch(ctx, symbol)
	if err == nil {
		return raw, nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return domain.RawQuote{}, err
	}
	return domain.RawQuote{}, NewFetchError(KindTransport, symbol, err)
}

func (s *IngestService) persist(ctx context.Context, rec domain.StockPrice) error {
	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}
	err := s.writer.Insert(ctx, rec)
	if err == nil {
		return nil
	}
	var we *WriteError
	if errors.As(err, &we) {
		return err
	}
	return &WriteError{Symbol: rec.Symbol, Err: err}
}

func (s *IngestService) release(ctx context.Context, log *zap.Logger, token string) {
	// ctx may already be canceled; the lock must still be released.
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.lock.Release(rctx, s.lockKey, token); err != nil {
		log.Warn("ingest.lock_release_failed", zap.Error(err))
	}
}

func canceled(symbols []string, cause error) []SymbolOutcome {
	out := make([]SymbolOutcome, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, SymbolOutcome{
			Symbol: sym,
			Kind:   KindCanceled,
			Err:    NewFetchError(KindCanceled, sym, cause),
		})
	}
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
