package pg

import (
	"context"
	"errors"

	"stockquotes-ingestor/internal/application"
	"stockquotes-ingestor/internal/domain"
	"stockquotes-ingestor/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type StockPriceRepo struct{ db *DB }

var (
	_ application.PriceWriter = (*StockPriceRepo)(nil)
	_ application.PriceReader = (*StockPriceRepo)(nil)
)

func NewStockPriceRepo(db *DB) *StockPriceRepo { return &StockPriceRepo{db: db} }

// Insert appends one row. Duplicates are accepted.
func (r *StockPriceRepo) Insert(ctx context.Context, p domain.StockPrice) error {
	const ins = `
        INSERT INTO stock_prices (symbol, price, source, "timestamp")
        VALUES ($1, $2, $3, $4)`
	log := logx.L().With(
		zap.String("repo", "stock_price"),
		zap.String("operation", "Insert"),
		zap.String("symbol", p.Symbol),
	)
	log.Debug("sql.exec_start")
	tag, err := r.db.Pool.Exec(ctx, ins, p.Symbol, p.Price, p.Source, p.Timestamp)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return &application.WriteError{Symbol: p.Symbol, Err: err}
	}
	log.Debug("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (r *StockPriceRepo) Latest(ctx context.Context, symbol string) (domain.StockPrice, error) {
	const q = `
        SELECT symbol, price, source, "timestamp"
        FROM stock_prices
        WHERE symbol = $1
        ORDER BY "timestamp" DESC
        LIMIT 1`
	var out domain.StockPrice
	err := r.db.Pool.QueryRow(ctx, q, symbol).Scan(&out.Symbol, &out.Price, &out.Source, &out.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StockPrice{}, application.ErrNotFound
	}
	if err != nil {
		logx.L().Error("sql.query_failed",
			zap.String("repo", "stock_price"),
			zap.String("operation", "Latest"),
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		return domain.StockPrice{}, err
	}
	return out, nil
}

// History returns up to limit rows for symbol, newest first.
func (r *StockPriceRepo) History(ctx context.Context, symbol string, limit int) ([]domain.StockPrice, error) {
	const q = `
        SELECT symbol, price, source, "timestamp"
        FROM stock_prices
        WHERE symbol = $1
        ORDER BY "timestamp" DESC
        LIMIT $2`
	rows, err := r.db.Pool.Query(ctx, q, symbol, limit)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StockPrice, error) {
		var p domain.StockPrice
		err := row.Scan(&p.Symbol, &p.Price, &p.Source, &p.Timestamp)
		return p, err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
