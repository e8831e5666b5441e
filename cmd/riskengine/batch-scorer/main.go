package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/goodnatureofminers/chainguard-backend/internal/engine"
	"github.com/goodnatureofminers/chainguard-backend/internal/metrics"
	"github.com/goodnatureofminers/chainguard-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/profile"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/scoring"
	"github.com/goodnatureofminers/chainguard-backend/internal/service/batch"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type config struct {
	Input     string `long:"input" short:"i" env:"CHAINGUARD_BATCH_INPUT" description:"CSV file to score, - for stdin" default:"-"`
	Output    string `long:"output" short:"o" env:"CHAINGUARD_BATCH_OUTPUT" description:"report file, - for stdout" default:"-"`
	Format    string `long:"format" env:"CHAINGUARD_BATCH_FORMAT" description:"report format" choice:"txt" choice:"json" default:"txt"`
	Results   string `long:"results" env:"CHAINGUARD_BATCH_RESULTS" description:"write scored transactions as JSON to this file"`
	ChunkSize int    `long:"chunk-size" env:"CHAINGUARD_CHUNK_SIZE" description:"rows per scored chunk (100, 500, 1000 or 5000)" default:"500"`
	Workers   int    `long:"workers" env:"CHAINGUARD_BATCH_WORKERS" description:"chunks scored concurrently" default:"4"`
	TopN      int    `long:"top" env:"CHAINGUARD_BATCH_TOP" description:"riskiest transactions listed in the report" default:"10"`
	ValueUnit string `long:"value-unit" env:"CHAINGUARD_VALUE_UNIT" description:"unit of the Value column" choice:"ether" choice:"wei" choice:"auto" default:"ether"`

	Scorer   string `long:"scorer" env:"CHAINGUARD_SCORER" description:"scorer variant" choice:"rules" choice:"anomaly" choice:"ensemble" default:"rules"`
	ModelDir string `long:"model-dir" env:"CHAINGUARD_MODEL_DIR" description:"ensemble model directory" default:"models"`
	Jitter   string `long:"jitter" env:"CHAINGUARD_JITTER" description:"probability jitter" choice:"none" choice:"hash" choice:"seeded" default:"none"`
	Seed     int64  `long:"seed" env:"CHAINGUARD_SEED" description:"seed for seeded jitter and sample generation" default:"1"`

	Sample int `long:"sample" description:"write a sample input with this many rows to the output and exit"`

	ClickhouseDSN string `long:"clickhouse-dsn" env:"CHAINGUARD_CLICKHOUSE_DSN" description:"persist scored transactions and profiles to ClickHouse"`
	LogJSON       bool   `long:"log-json" env:"CHAINGUARD_LOG_JSON" description:"log JSON instead of console output"`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("failed to parse flags: %v", err)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("batch scorer failed", zap.Error(err))
	}
}

// newLogger writes to stderr so stdout stays free for the report.
func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.Sample > 0 {
		return withOutput(cfg.Output, func(w io.Writer) error {
			return batch.GenerateSample(w, cfg.Sample, cfg.Seed)
		})
	}
	if !slices.Contains(batch.ChunkSizes, cfg.ChunkSize) {
		return fmt.Errorf("chunk size %d is not one of %v", cfg.ChunkSize, batch.ChunkSizes)
	}
	unit, err := batch.ParseUnit(cfg.ValueUnit)
	if err != nil {
		return err
	}

	deps := engine.Deps{Logger: logger}
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close repository", zap.Error(err))
			}
		}()
		wb := profile.NewWriteBehindStore(repo, profile.DefaultWriteBehindConfig(), logger)
		deps.Profiles = profile.NewAggregator(wb, logger)
		deps.Scored = repo
		deps.Services = append(deps.Services, wb)
	}

	engineCfg := engine.DefaultConfig()
	engineCfg.Scoring.Variant = cfg.Scorer
	engineCfg.Scoring.ModelDir = cfg.ModelDir
	engineCfg.Scoring.Jitter = scoring.NewJitter(cfg.Jitter, cfg.Seed)
	eng, err := engine.New(engineCfg, deps)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	eng.Start(ctx)
	defer eng.Stop()

	analyzer, err := batch.NewAnalyzer(eng, metrics.NewBatchAnalyzer(), batch.Config{
		ChunkSize: cfg.ChunkSize,
		Workers:   cfg.Workers,
		TopN:      cfg.TopN,
		Unit:      unit,
	}, logger)
	if err != nil {
		return fmt.Errorf("init batch analyzer: %w", err)
	}

	in, err := openInput(cfg.Input)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	res, err := analyzer.AnalyzeCSV(ctx, in, func(p batch.Progress) {
		logger.Info("chunk scored",
			zap.Int("chunk", p.Done),
			zap.Int("chunks", p.Chunks),
			zap.Int("processed", p.Processed),
			zap.Int("total", p.Total),
		)
	})
	if err != nil {
		return err
	}
	for _, rerr := range res.RowErrors {
		logger.Warn("row skipped", zap.Error(rerr))
	}

	if cfg.Results != "" {
		if err := withOutput(cfg.Results, func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Transactions)
		}); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	}

	return withOutput(cfg.Output, func(w io.Writer) error {
		if cfg.Format == "json" {
			return res.Report.WriteJSON(w)
		}
		return res.Report.WriteText(w)
	})
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func withOutput(path string, write func(io.Writer) error) (err error) {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}
