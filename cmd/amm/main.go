package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"miniswap/internal/amm"
	"miniswap/internal/config"
	"miniswap/internal/host"
	"miniswap/internal/journal"
	"miniswap/internal/journal/postgres"
	"miniswap/internal/ledger"
)

func main() {
	root := &cobra.Command{
		Use:          "amm",
		Short:        "Constant-product AMM host",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Replay an operations script against a seeded ledger",
		RunE:  runScript,
	}

	runCmd.Flags().String("ops", "", "operations JSONL path")
	runCmd.Flags().String("seed", "", "ledger seed JSON path")
	runCmd.Flags().String("journal-out", "./data/events.jsonl", "event journal JSONL path")
	runCmd.Flags().String("pg-dsn", "", "Postgres DSN for the event journal (overrides JSONL)")
	runCmd.Flags().String("metrics-addr", "", "Prometheus listen address (empty disables)")
	runCmd.Flags().Bool("halt-on-error", false, "stop at the first rejected operation")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a swap against given reserves without executing it",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("amount-in", "", "input amount (decimal)")
	quoteCmd.Flags().String("reserve-in", "", "input-side reserve (decimal)")
	quoteCmd.Flags().String("reserve-out", "", "output-side reserve (decimal)")

	root.AddCommand(quoteCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScript(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.OpsPath == "" {
		return fmt.Errorf("ops file is required")
	}
	if cfg.SeedPath == "" {
		return fmt.Errorf("seed file is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	memLedger, err := ledger.LoadSeed(cfg.SeedPath)
	if err != nil {
		return err
	}

	var sink journal.Sink
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sink = store
	} else {
		sink = journal.NewJsonlSink(cfg.JournalOut)
	}

	registry := prometheus.NewRegistry()
	metrics := amm.NewMetrics(registry)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		defer server.Close()
	}

	assets := amm.NewAssetRegistry(memLedger)
	store := amm.NewPoolStore()
	manager := amm.NewManager(
		amm.ManagerConfig{Custody: memLedger.Custody()},
		assets,
		store,
		memLedger,
		sink,
		logger,
		metrics,
	)

	runner := host.NewRunner(host.RunConfig{
		OpsPath:     cfg.OpsPath,
		HaltOnError: cfg.HaltOnError,
	}, manager, logger)

	logger.Info("run start",
		zap.String("ops", cfg.OpsPath),
		zap.String("seed", cfg.SeedPath),
		zap.String("custody", memLedger.Custody().Hex()),
		zap.String("journal", cfg.JournalOut),
		zap.Bool("halt_on_error", cfg.HaltOnError),
	)

	return runner.Run(ctx)
}

func runQuote(cmd *cobra.Command, _ []string) error {
	rawIn, _ := cmd.Flags().GetString("amount-in")
	rawReserveIn, _ := cmd.Flags().GetString("reserve-in")
	rawReserveOut, _ := cmd.Flags().GetString("reserve-out")

	amountIn, err := host.ParseAmount(rawIn)
	if err != nil {
		return err
	}
	reserveIn, err := host.ParseAmount(rawReserveIn)
	if err != nil {
		return err
	}
	reserveOut, err := host.ParseAmount(rawReserveOut)
	if err != nil {
		return err
	}

	amountOut, err := amm.QuoteOutput(amountIn, reserveIn, reserveOut)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), amountOut.Dec())
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
