package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/engine"
	"github.com/goodnatureofminers/chainguard-backend/internal/metrics"
	"github.com/goodnatureofminers/chainguard-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/alert"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/profile"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/scoring"
	"github.com/goodnatureofminers/chainguard-backend/internal/service/batch"
	"github.com/goodnatureofminers/chainguard-backend/internal/service/streaming"
	"github.com/goodnatureofminers/chainguard-backend/internal/source/ethereum"
	"github.com/goodnatureofminers/chainguard-backend/internal/transport"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type config struct {
	RPCURL   string `long:"rpc-url" env:"CHAINGUARD_RPC_URL" description:"Ethereum JSON-RPC URL" required:"true"`
	RPCRPS   int    `long:"rpc-rps" env:"CHAINGUARD_RPC_RPS" description:"node requests per second" default:"10"`
	Receipts bool   `long:"receipts" env:"CHAINGUARD_RECEIPTS" description:"fetch block receipts to mark reverted transactions"`
	Network  string `long:"network" env:"CHAINGUARD_NETWORK" description:"network label for metrics" default:"mainnet"`

	BlocksPerCycle int           `long:"blocks-per-cycle" env:"CHAINGUARD_BLOCKS_PER_CYCLE" description:"newest blocks read per cycle" default:"3"`
	TxPerBlock     int           `long:"tx-per-block" env:"CHAINGUARD_TX_PER_BLOCK" description:"transactions sampled per block" default:"5"`
	PollInterval   time.Duration `long:"poll-interval" env:"CHAINGUARD_POLL_INTERVAL" description:"pause between cycles" default:"2s"`
	BackoffMax     time.Duration `long:"backoff-max" env:"CHAINGUARD_BACKOFF_MAX" description:"longest pause after failed cycles" default:"2m"`

	Scorer   string `long:"scorer" env:"CHAINGUARD_SCORER" description:"scorer variant" choice:"rules" choice:"anomaly" choice:"ensemble" default:"rules"`
	ModelDir string `long:"model-dir" env:"CHAINGUARD_MODEL_DIR" description:"ensemble model directory" default:"models"`
	Jitter   string `long:"jitter" env:"CHAINGUARD_JITTER" description:"probability jitter" choice:"none" choice:"hash" choice:"seeded" default:"none"`
	Seed     int64  `long:"seed" env:"CHAINGUARD_SEED" description:"seed for sampling and seeded jitter; 0 picks one"`

	ClickhouseDSN string   `long:"clickhouse-dsn" env:"CHAINGUARD_CLICKHOUSE_DSN" description:"ClickHouse DSN; profiles stay in memory when empty"`
	KafkaBrokers  []string `long:"kafka-broker" env:"CHAINGUARD_KAFKA_BROKERS" env-delim:"," description:"Kafka broker for alert publishing"`
	KafkaTopic    string   `long:"kafka-topic" env:"CHAINGUARD_KAFKA_TOPIC" description:"Kafka topic for alerts" default:"chainguard.alerts"`

	HTTPAddr    string `long:"http-addr" env:"CHAINGUARD_HTTP_ADDR" description:"address of the monitoring API" default:":8000"`
	MetricsAddr string `long:"metrics-addr" env:"CHAINGUARD_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	ChunkSize   int    `long:"chunk-size" env:"CHAINGUARD_CHUNK_SIZE" description:"rows per scored chunk of uploaded files" default:"500"`
	ValueUnit   string `long:"value-unit" env:"CHAINGUARD_VALUE_UNIT" description:"unit of uploaded Value columns" choice:"ether" choice:"wei" choice:"auto" default:"ether"`
	LogJSON     bool   `long:"log-json" env:"CHAINGUARD_LOG_JSON" description:"log JSON instead of console output"`
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
		logger.Fatal("stream monitor failed", zap.Error(err))
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	source, err := ethereum.Dial(ctx, ethereum.Config{
		RPCURL:   cfg.RPCURL,
		RPS:      cfg.RPCRPS,
		Receipts: cfg.Receipts,
	}, metrics.NewRPCClient(cfg.Network), logger)
	if err != nil {
		return fmt.Errorf("init ethereum source: %w", err)
	}
	defer source.Close()

	deps := engine.Deps{Logger: logger}

	var store profile.Store = profile.NewMemoryStore()
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
		store = wb
		deps.Scored = repo
		deps.Services = append(deps.Services, wb)
	}
	profiles := profile.NewAggregator(store, logger)
	deps.Profiles = profiles

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := alert.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, nil)
		if err != nil {
			return fmt.Errorf("init alert publisher: %w", err)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("close alert publisher", zap.Error(err))
			}
		}()
		deps.Publisher = publisher
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

	monitorCfg := streaming.DefaultConfig()
	monitorCfg.BlocksPerCycle = cfg.BlocksPerCycle
	monitorCfg.TxPerBlock = cfg.TxPerBlock
	monitorCfg.PollInterval = cfg.PollInterval
	monitorCfg.BackoffMax = cfg.BackoffMax
	monitorCfg.Seed = cfg.Seed
	monitor, err := streaming.NewMonitor(source, eng, metrics.NewStreamMonitor(cfg.Network), monitorCfg, logger)
	if err != nil {
		return fmt.Errorf("init stream monitor: %w", err)
	}

	unit, err := batch.ParseUnit(cfg.ValueUnit)
	if err != nil {
		return err
	}
	batchCfg := batch.DefaultConfig()
	batchCfg.ChunkSize = cfg.ChunkSize
	batchCfg.Unit = unit
	analyzer, err := batch.NewAnalyzer(eng, metrics.NewBatchAnalyzer(), batchCfg, logger)
	if err != nil {
		return fmt.Errorf("init batch analyzer: %w", err)
	}

	handler, err := transport.NewMonitoringHandler(transport.Deps{
		Engine:   eng,
		Alerts:   eng.Alerts(),
		Profiles: profiles,
		Monitor:  monitor,
		Analyzer: analyzer,
	}, logger)
	if err != nil {
		return fmt.Errorf("init monitoring handler: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serveAPI(ctx, cfg.HTTPAddr, handler, logger)
	})
	g.Go(func() error {
		return serveMetrics(ctx, cfg.MetricsAddr, logger)
	})
	g.Go(func() error {
		err := monitor.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
