package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quantex-labs/histvol/internal/dbg"
	"github.com/quantex-labs/histvol/pkg/data/duckdb"
	"github.com/quantex-labs/histvol/pkg/datasource/synthetic"
	"github.com/quantex-labs/histvol/pkg/models/armagarch"
	"github.com/quantex-labs/histvol/pkg/timeseries"
)

func main() {
	var (
		dbPath = flag.String("db", "", "duckdb database with <symbol>_daily bars; synthetic series when empty")
		symbol = flag.String("symbol", DefaultSymbol, "symbol to load")
	)
	flag.Parse()

	logger := dbg.NewDevLogger("histvol")
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	runID := uuid.New()
	logger.Info("histvol fit", zap.String("run_id", runID.String()), zap.String("symbol", *symbol))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	series, err := loadSeries(ctx, logger, *dbPath, *symbol)
	if err != nil {
		logger.Fatal("error loading series", zap.Error(err))
	}
	logger.Info("series loaded", zap.Int("observations", series.Len()))

	model, err := armagarch.New(series)
	if err != nil {
		logger.Fatal("error creating model", zap.Error(err))
	}

	start := time.Now()
	result, err := model.Fit()
	if err != nil {
		logger.Fatal("error fitting model", zap.Error(err))
	}

	logger.Info("fit complete",
		zap.String("run_id", runID.String()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("omega", result.Parameters.Omega),
		zap.Float64("alpha", result.Parameters.Alpha),
		zap.Float64("beta", result.Parameters.Beta),
		zap.Float64("theta", result.Parameters.Theta),
		zap.Float64("mu", result.Parameters.Mu),
		zap.Float64("phi", result.Parameters.Phi),
		zap.Float64("likelihood", result.Likelihood),
		zap.Float64("vol", result.Vol),
		zap.Bool("converged", result.Diagnostics.Converged),
	)
	logger.Info("quantile forecasts",
		zap.Float64("q0.5%", result.Quantiles.P005),
		zap.Float64("q1%", result.Quantiles.P01),
		zap.Float64("q2%", result.Quantiles.P02),
		zap.Float64("q5%", result.Quantiles.P05),
		zap.Float64("q50%", result.Quantiles.P50),
	)
}

func loadSeries(ctx context.Context, logger *zap.Logger, dbPath, symbol string) (timeseries.Series, error) {

	if dbPath == "" {
		logger.Info("no database given, generating synthetic series",
			zap.Int("bars", SyntheticBars), zap.Int("seed", SyntheticSeed))
		generator := synthetic.NewBarGenerator(symbol, SyntheticSeed, HistoryStart, 24*time.Hour,
			SyntheticStartPrice, SyntheticDrift, SyntheticVol, SyntheticDeltaT)
		return timeseries.FromBars(generator.Generate(SyntheticBars))
	}

	reader := duckdb.NewReader(dbPath)
	if err := reader.Connect(); err != nil {
		return nil, err
	}
	defer reader.Close()

	closes, err := reader.LoadCloses(ctx, symbol, HistoryStart, HistoryEnd)
	if err != nil {
		return nil, err
	}
	return timeseries.FromPoints(closes)
}
