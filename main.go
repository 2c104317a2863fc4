package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Billy-Davies-2/hockey-draft/internal/clickhouse"
	"github.com/Billy-Davies-2/hockey-draft/internal/config"
	"github.com/Billy-Davies-2/hockey-draft/internal/dal"
	"github.com/Billy-Davies-2/hockey-draft/internal/draft"
	"github.com/Billy-Davies-2/hockey-draft/internal/logger"
	"github.com/Billy-Davies-2/hockey-draft/internal/mocks"
	"github.com/Billy-Davies-2/hockey-draft/internal/models"
	"github.com/Billy-Davies-2/hockey-draft/internal/pool"
	"github.com/Billy-Davies-2/hockey-draft/internal/presenter"
	"github.com/Billy-Davies-2/hockey-draft/internal/pubsub"
	"github.com/Billy-Davies-2/hockey-draft/internal/rules"
)

// statsSource is what STATS_SOURCE=clickhouse and STATS_SOURCE=mock share
type statsSource interface {
	LoadAthletes(ctx context.Context) ([]models.AthleteEntry, error)
	Close() error
}

// feed is the spectator event feed behind the local PubSub
type feed interface {
	pubsub.Upstream
	Close()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	logger.Info("Starting hockey draft", "environment", cfg.Env)

	r, err := cfg.Rules()
	if err != nil {
		logger.Error("Invalid draft rules", "error", err)
		log.Fatalf("Invalid draft rules: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataStore := openStore(cfg)
	defer dataStore.Close()

	entries := loadAthletes(ctx, cfg, dataStore)
	p, err := pool.New(entries)
	if err != nil {
		logger.Error("Failed to build the athlete pool", "error", err)
		log.Fatalf("Failed to build the athlete pool: %v", err)
	}
	logger.Info("Athlete pool ready", "athletes", p.Len())

	console := presenter.NewConsole(os.Stdout, r)
	var publisher draft.Publisher = console
	if f := openFeed(cfg); f != nil {
		ps := pubsub.NewWithUpstream(f)
		defer f.Close()
		defer ps.Close()
		publisher = pubsub.Tee{console, ps}
	}

	in := bufio.NewScanner(os.Stdin)
	mode, ok, err := cfg.Mode()
	if err != nil {
		log.Fatalf("Invalid draft mode: %v", err)
	}
	if !ok {
		mode, err = console.AskMode(in)
		if err != nil {
			log.Fatalf("No draft mode selected: %v", err)
		}
	}

	seats := buildSeats(cfg, r, mode, in, console)

	engine, err := draft.New(r, p, seats, draft.Options{Publisher: publisher, Journal: dataStore})
	if err != nil {
		logger.Error("Failed to set up the draft", "error", err)
		log.Fatalf("Failed to set up the draft: %v", err)
	}
	logger.Info("Draft starting", "run_id", engine.RunID(), "mode", mode)

	result, err := engine.Run(ctx)
	switch {
	case err == nil:
		console.Result(result)
	case errors.Is(err, draft.ErrPoolExhausted):
		logger.Error("Draft cannot finish", "run_id", engine.RunID(), "error", err)
		console.Result(engine.Result())
		os.Exit(1)
	case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		logger.Info("Draft abandoned", "run_id", engine.RunID())
		os.Exit(130)
	default:
		logger.Error("Draft failed", "run_id", engine.RunID(), "error", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) dal.DraftDAL {
	switch cfg.DBDriver {
	case "memory":
		logger.Info("Using in-memory data store")
		return dal.NewMemoryDAL()
	case "sqlite":
		store, err := dal.NewSQLiteDAL(cfg.SQLiteFile)
		if err != nil {
			logger.Error("Failed to initialize SQLite", "error", err)
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		logger.Info("Connected to SQLite database", "file", cfg.SQLiteFile)
		return store
	case "postgres":
		if cfg.IsDevelopment() && os.Getenv("DATABASE_URL") == "" {
			store, err := mocks.NewMockPostgresDAL(cfg.SQLiteFile)
			if err != nil {
				logger.Error("Failed to initialize mock Postgres", "error", err)
				log.Fatalf("Failed to initialize mock Postgres: %v", err)
			}
			return store
		}
		store, err := dal.NewPostgresDAL(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize Postgres", "error", err)
			log.Fatalf("Failed to initialize Postgres: %v", err)
		}
		logger.Info("Connected to Postgres database")
		return store
	default:
		logger.Error("Unknown DB_DRIVER", "driver", cfg.DBDriver)
		log.Fatalf("Unknown DB_DRIVER: %s (valid: memory, sqlite, postgres)", cfg.DBDriver)
		return nil
	}
}

// loadAthletes picks the pool source. A roster file wins; a stats feed is
// written through to the store so later runs can replay it with
// STATS_SOURCE=dal.
func loadAthletes(ctx context.Context, cfg *config.Config, store dal.DraftDAL) []models.AthleteEntry {
	if cfg.RosterFile != "" {
		entries, err := dal.LoadRosterFile(cfg.RosterFile)
		if err != nil {
			logger.Error("Failed to load roster file", "error", err)
			log.Fatalf("Failed to load roster file: %v", err)
		}
		logger.Info("Loaded roster file", "file", cfg.RosterFile, "athletes", len(entries))
		return entries
	}

	var source statsSource
	switch cfg.StatsSource {
	case "dal":
		entries, err := store.LoadAthletes()
		if err != nil {
			logger.Error("Failed to load athletes", "error", err)
			log.Fatalf("Failed to load athletes: %v", err)
		}
		return entries
	case "mock":
		source = mocks.NewMockClickHouseClient(cfg.DraftSeed)
	case "clickhouse":
		client, err := clickhouse.NewClient(cfg.ClickHouseAddr, cfg.ClickHouseDB, cfg.ClickHouseUser, cfg.ClickHousePassword, cfg.ClickHouseSeason)
		if err != nil {
			logger.Error("Failed to initialize ClickHouse", "error", err, "address", cfg.ClickHouseAddr)
			log.Fatalf("Failed to initialize ClickHouse: %v", err)
		}
		logger.Info("Connected to ClickHouse", "address", cfg.ClickHouseAddr, "database", cfg.ClickHouseDB)
		source = client
	default:
		logger.Error("Unknown STATS_SOURCE", "source", cfg.StatsSource)
		log.Fatalf("Unknown STATS_SOURCE: %s (valid: dal, clickhouse, mock)", cfg.StatsSource)
	}
	defer source.Close()

	entries, err := source.LoadAthletes(ctx)
	if err != nil {
		logger.Error("Failed to load season stats", "error", err)
		log.Fatalf("Failed to load season stats: %v", err)
	}
	if err := store.SaveAthletes(entries); err != nil {
		logger.Warn("Failed to store season stats", "error", err)
	}
	return entries
}

func openFeed(cfg *config.Config) feed {
	stream := pubsub.DefaultStreamOptions()
	stream.Subject = cfg.NATSSubject
	stream.StreamName = cfg.NATSStream

	switch cfg.NATSMode {
	case "off", "":
		return nil
	case "mock":
		return mocks.NewMockNATSPubSub()
	case "embedded":
		opts := pubsub.DefaultEmbeddedNATSOptions()
		opts.Stream = stream
		embedded, err := pubsub.NewEmbeddedNATSPubSub(opts)
		if err != nil {
			logger.Error("Failed to initialize embedded NATS", "error", err)
			log.Fatalf("Failed to initialize embedded NATS: %v", err)
		}
		logger.Info("Embedded NATS server ready", "url", embedded.ServerURL())
		return embedded
	case "remote":
		remote, err := pubsub.NewNATSPubSub(cfg.NATSURL, stream)
		if err != nil {
			logger.Error("Failed to initialize NATS", "error", err)
			log.Fatalf("Failed to initialize NATS: %v", err)
		}
		logger.Info("Connected to NATS", "url", cfg.NATSURL)
		return remote
	default:
		logger.Error("Unknown NATS_MODE", "mode", cfg.NATSMode)
		log.Fatalf("Unknown NATS_MODE: %s (valid: off, mock, embedded, remote)", cfg.NATSMode)
		return nil
	}
}

func buildSeats(cfg *config.Config, r rules.Rules, mode int, in *bufio.Scanner, console *presenter.Console) []draft.Seat {
	seed := cfg.DraftSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	bot := func(n uint64) draft.Chooser {
		if cfg.BotStrategy == "greedy" {
			return draft.NewGreedyChooser(r)
		}
		return draft.NewRandomChooser(seed + n)
	}
	human := presenter.NewHumanChooser(in, console)

	switch mode {
	case config.ModeMultiplayer:
		return []draft.Seat{
			{Name: "GM 1", Chooser: human},
			{Name: "GM 2", Chooser: human},
		}
	case config.ModeBots:
		return []draft.Seat{
			{Name: "GM 1", Automated: true, Chooser: bot(0)},
			{Name: "GM 2", Automated: true, Chooser: bot(1)},
		}
	default:
		return []draft.Seat{
			{Name: "GM 1", Chooser: human},
			{Name: "Computer", Automated: true, Chooser: bot(0)},
		}
	}
}
