//go:build wireinject

package bootstrap

import (
	"context"

	"github.com/google/wire"
)

var storeSet = wire.NewSet(
	ProvideConfig,
	ProvideLogger,
	ProvideDB,
	ProvideStockPriceRepo,
)

// InitIngest builds one batch pass. The store is connected first so an
// unreachable database aborts before any provider request.
func InitIngest(ctx context.Context) (*IngestApp, func(), error) {
	wire.Build(
		storeSet,
		ProvideHTTPClient,
		ProvideSource,
		ProvideBatchLock,
		ProvideIngestService,
		ProvideIngestApp,
	)
	return nil, nil, nil
}

func InitAPI(ctx context.Context) (*APIApp, func(), error) {
	wire.Build(
		storeSet,
		ProvidePriceService,
		ProvideAPIApp,
	)
	return nil, nil, nil
}
