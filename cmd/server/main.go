// Command server exposes the banking record validation engine over HTTP: one
// POST endpoint per record kind that validates the JSON body and echoes the
// normalized record, mirroring how the validation middleware sits in front of
// persistence in the full banking backend.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/bankcore/rulekit/pkg/config"
	"github.com/bankcore/rulekit/pkg/engine"
	"github.com/bankcore/rulekit/pkg/httpvalidate"
	"github.com/bankcore/rulekit/pkg/logger"
	"github.com/bankcore/rulekit/pkg/refcheck"
	"github.com/bankcore/rulekit/pkg/schema"
)

type serverConfig struct {
	Addr         string        `env:"SERVER_ADDR" envDefault:":8080"`
	LogFormat    string        `env:"LOG_FORMAT" envDefault:"json"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	RedisURL     string        `env:"REDIS_URL"`
	RefCacheTTL  time.Duration `env:"REF_CACHE_TTL" envDefault:"5m"`
	MessagesFile string        `env:"MESSAGES_FILE"`
}

func main() {
	var cfg serverConfig
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithAttr(slog.String("service", "validation")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts, cleanup, err := bankingOptions(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", logger.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	ev := engine.New(schema.NewBankingRegistry(opts...))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router(ev),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("listening", slog.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

// bankingOptions wires the optional collaborators: a Postgres-backed owner
// reference check, cached in Redis when available, and deployment message
// overrides. Everything degrades to the built-in behavior when unset.
func bankingOptions(ctx context.Context, cfg serverConfig, log *slog.Logger) ([]schema.BankingOption, func(), error) {
	var opts []schema.BankingOption
	cleanup := func() {}

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = pool.Close

		var checker refcheck.Checker = refcheck.NewPostgres(pool, "users", "user_id")
		if cfg.RedisURL != "" {
			redisOpts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				return nil, cleanup, err
			}
			checker = refcheck.NewCached(checker, redis.NewClient(redisOpts), "refcheck:users", cfg.RefCacheTTL)
		}
		opts = append(opts, schema.WithUserReferenceCheck(refcheck.AsExternalCheck(checker)))
		log.Info("owner reference check enabled", slog.Bool("cached", cfg.RedisURL != ""))
	}

	if cfg.MessagesFile != "" {
		f, err := os.Open(cfg.MessagesFile)
		if err != nil {
			return nil, cleanup, err
		}
		defer f.Close()

		overrides, err := schema.LoadMessageOverrides(f)
		if err != nil {
			return nil, cleanup, err
		}
		opts = append(opts, schema.WithMessageOverrides(overrides))
	}

	return opts, cleanup, nil
}

func router(ev *engine.Evaluator) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)

	routes := map[string]schema.Kind{
		"/users":        schema.KindUser,
		"/accounts":     schema.KindAccount,
		"/transactions": schema.KindTransaction,
		"/loans":        schema.KindLoan,
		"/employees":    schema.KindEmployee,
		"/branches":     schema.KindBranch,
	}
	for path, kind := range routes {
		r.With(httpvalidate.Middleware(ev, kind)).Post(path, echoNormalized)
	}
	return r
}

// echoNormalized stands in for the persistence layer: it returns the
// normalized record the middleware accepted.
func echoNormalized(w http.ResponseWriter, r *http.Request) {
	record, _ := httpvalidate.RecordFrom(r.Context())
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    record,
	})
}

// requestID tags each request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}
