package application

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrBadRequest = errors.New("bad request")
var ErrBatchInProgress = errors.New("batch already in progress")
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrorKind classifies per-symbol failures for logging.
type ErrorKind string

const (
	KindMissingCredential ErrorKind = "missing_credential"
	KindTransport         ErrorKind = "transport"
	KindDecode            ErrorKind = "decode"
	KindParse             ErrorKind = "parse"
	KindWrite             ErrorKind = "write"
	KindInvalidSymbol     ErrorKind = "invalid_symbol"
	KindCanceled          ErrorKind = "canceled"
	KindUnknown           ErrorKind = "unknown"
)

// FetchError is returned by a QuoteSource. It is terminal for the call.
type FetchError struct {
	Kind   ErrorKind
	Symbol string
	Err    error
}

func NewFetchError(kind ErrorKind, symbol string, err error) *FetchError {
	return &FetchError{Kind: kind, Symbol: symbol, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: %s", e.Symbol, e.Kind)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.Symbol, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError wraps any store-level failure of a single insert.
type WriteError struct {
	Symbol string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Symbol, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// KindOf reports the failure kind carried by err.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	var we *WriteError
	if errors.As(err, &we) {
		return KindWrite
	}
	return KindUnknown
}
