package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/quantex-labs/histvol/pkg/market"
	"github.com/quantex-labs/histvol/pkg/utility/fixed"
)

// Reader loads daily bars for a symbol from a DuckDB database. One table per
// symbol, named <symbol>_daily.
type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

// LoadBars streams the bars of a symbol within [from, to] in time order.
func (r *Reader) LoadBars(ctx context.Context, symbol string, from, to time.Time, handler func(bar market.Bar) error) error {

	query := fmt.Sprintf(`SELECT ts, open, high, low, close, volume FROM %s_daily WHERE ts BETWEEN ? AND ? ORDER BY ts`, symbol)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var (
			ts                             time.Time
			open, high, low, cls, volume float64
		)
		if err := rows.Scan(&ts, &open, &high, &low, &cls, &volume); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		bar := market.Bar{
			Symbol:    symbol,
			TimeStamp: ts,
			Period:    24 * time.Hour,
			Open:      fixed.FromFloat64(open),
			High:      fixed.FromFloat64(high),
			Low:       fixed.FromFloat64(low),
			Close:     fixed.FromFloat64(cls),
			Volume:    fixed.FromFloat64(volume),
		}
		if err := handler(bar); err != nil {
			return fmt.Errorf("error processing bar: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}

// LoadCloses collects the close prices of a symbol within [from, to].
func (r *Reader) LoadCloses(ctx context.Context, symbol string, from, to time.Time) ([]fixed.Point, error) {
	var closes []fixed.Point
	err := r.LoadBars(ctx, symbol, from, to, func(bar market.Bar) error {
		closes = append(closes, bar.Close)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closes, nil
}
