package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"stockquotes-ingestor/internal/application"
	"stockquotes-ingestor/internal/domain"
	"stockquotes-ingestor/internal/infrastructure/httpx"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -package=provider_test -destination=mock_doer_test.go stockquotes-ingestor/internal/infrastructure/httpx Doer

const (
	alphaVantageQueryPath = "/query"
	globalQuoteFunction   = "GLOBAL_QUOTE"
)

type AlphaVantageProvider struct {
	BaseURL string
	APIKey  string
	Client  *httpx.Client
}

var _ application.QuoteSource = (*AlphaVantageProvider)(nil)

type avGlobalQuoteResp struct {
	GlobalQuote *struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
	// Set instead of Global Quote when the request is throttled or rejected.
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (r avGlobalQuoteResp) notice() string {
	switch {
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Note != "":
		return r.Note
	default:
		return r.Information
	}
}

// Fetch issues one GLOBAL_QUOTE request for symbol. It never retries.
func (p *AlphaVantageProvider) Fetch(ctx context.Context, symbol string) (domain.RawQuote, error) {
	if p.APIKey == "" {
		return domain.RawQuote{}, application.NewFetchError(application.KindMissingCredential, symbol,
			errors.New("alphavantage: api key not configured"))
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return domain.RawQuote{}, application.NewFetchError(application.KindTransport, symbol,
			fmt.Errorf("alphavantage: invalid base url: %w", err))
	}
	u.Path = alphaVantageQueryPath
	q := u.Query()
	q.Set("function", globalQuoteFunction)
	q.Set("symbol", symbol)
	q.Set("apikey", p.APIKey)
	u.RawQuery = q.Encode()

	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	var body avGlobalQuoteResp
	if err := client.GetJSON(ctx, u.String(), &body); err != nil {
		kind := application.KindTransport
		if errors.Is(err, httpx.ErrDecode) {
			kind = application.KindDecode
		}
		return domain.RawQuote{}, application.NewFetchError(kind, symbol, fmt.Errorf("alphavantage: %w", err))
	}

	gq := body.GlobalQuote
	if gq == nil || gq.Symbol == "" || gq.Price == "" {
		msg := "alphavantage: response has no Global Quote"
		if n := body.notice(); n != "" {
			msg += ": " + n
		}
		return domain.RawQuote{}, application.NewFetchError(application.KindDecode, symbol, errors.New(msg))
	}

	price, err := parsePrice(gq.Price)
	if err != nil {
		return domain.RawQuote{}, application.NewFetchError(application.KindParse, symbol,
			fmt.Errorf("alphavantage: price %q: %w", gq.Price, err))
	}
	return domain.RawQuote{Symbol: gq.Symbol, PriceText: gq.Price, Price: price}, nil
}

func parsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errors.New("out of range")
	}
	return f, nil
}
