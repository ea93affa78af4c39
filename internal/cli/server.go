package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"struggle-quiz-service/internal/app"
	"struggle-quiz-service/internal/config"
	"struggle-quiz-service/internal/fingerprint"
	"struggle-quiz-service/internal/infra/embedding"
	"struggle-quiz-service/internal/infra/memory"
	pgstore "struggle-quiz-service/internal/infra/postgres"
	redisinfra "struggle-quiz-service/internal/infra/redis"
	transport "struggle-quiz-service/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the challenge server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var embedder fingerprint.Embedder = memory.NewEmbedder(0)
	if cfg.Embedding.URL != "" {
		embedder = embedding.NewClient(cfg.Embedding.URL, config.Duration(cfg.Embedding.Timeout, 10*time.Second))
	} else {
		log.Printf("no embedding server configured, using the deterministic token embedder")
	}
	codec := fingerprint.NewCodec(embedder)

	var store app.WordStore = memory.NewWordStore()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		store = pgstore.NewWordStore(pool)
	}

	var ledger app.PointsLedger = memory.NewPointsLedger()
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cacheTTL := config.Duration(cfg.Redis.CacheTTL, 10*time.Minute)
		store = redisinfra.NewFingerprintCache(client, store, cacheTTL)
		ledger = redisinfra.NewPointsLedger(client)
	}

	historySize := cfg.Challenge.HistorySize
	if historySize <= 0 {
		historySize = config.DefaultHistorySize
	}
	selector := app.NewSelector(store, historySize)
	timeout := config.Duration(cfg.Challenge.Timeout, config.DefaultChallengeTimeout)
	words := app.NewWordService(store, codec)
	challenges := app.NewChallengeService(store, selector, codec, timeout, cfg.SimilarityThreshold())

	reaperCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()
	reaper := app.NewReaper(challenges, config.Duration(cfg.Challenge.SweepInterval, config.DefaultSweepInterval))
	go reaper.Run(reaperCtx)

	wsHandler := transport.NewWSHandler(words, challenges, ledger, cfg.PointsPerAnswer())

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting struggle quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	stopReaper()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
