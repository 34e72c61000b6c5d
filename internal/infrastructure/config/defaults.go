package config

import "time"

const (
	DefaultHTTPPort            = "8080"
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultPacingDelay         = 500 * time.Millisecond
	DefaultFetchTimeout        = 10 * time.Second
	DefaultStoreTimeout        = 5 * time.Second
	DefaultStoreConnectTimeout = 10 * time.Second
	DefaultLockTTL             = 5 * time.Minute
	DefaultPGMaxConns          = 5
	DefaultPGMinConns          = 1
	DefaultAlphaVantageBase    = "https://www.alphavantage.co"
	DefaultFakePrice           = "123.45"
	DefaultUserAgent           = "stockquotes-ingestor/1.0"
)
