// Command calcdesk serves the calculator web app.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/calcdesk/modules/calculator"
	"github.com/dmitrymomot/calcdesk/pkg/config"
	"github.com/dmitrymomot/calcdesk/pkg/httpserver"
	"github.com/dmitrymomot/calcdesk/pkg/logger"
	"github.com/dmitrymomot/calcdesk/pkg/ratelimiter"
	"github.com/dmitrymomot/calcdesk/pkg/redis"
	"github.com/dmitrymomot/calcdesk/pkg/requestid"
	"github.com/dmitrymomot/calcdesk/pkg/session"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"calcdesk"`

	HTTP    httpserver.Config
	Session session.Config
	Redis   redis.Config
	Calc    calculator.Config
	Limit   ratelimiter.Config
}

func main() {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), session.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("calcdesk stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	var (
		svcOpts    []calculator.ServiceOption
		limitStore *ratelimiter.MemoryStore
	)
	if cfg.Limit.Enabled() {
		limitStore = ratelimiter.NewMemoryStore()
		bucket, err := ratelimiter.NewBucket(limitStore, cfg.Limit)
		if err != nil {
			limitStore.Close()
			return err
		}
		svcOpts = append(svcOpts, calculator.WithPressLimiter(bucket))
	}

	var (
		checks      []httpserver.Check
		sessionOpts []session.Option
		redisClient *goredis.Client
	)
	if cfg.Session.Store == session.StoreRedis {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			if limitStore != nil {
				limitStore.Close()
			}
			return err
		}
		redisClient = client
		sessionOpts = append(sessionOpts, session.WithStore(session.NewRedisStore(client, cfg.Session.RedisPrefix)))
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	}
	sessions := session.NewFromConfig(cfg.Session, sessionOpts...)

	closeAll := func(l *slog.Logger) {
		if limitStore != nil {
			limitStore.Close()
		}
		if err := sessions.Close(); err != nil {
			l.Error("failed to close session store", logger.Error(err))
		}
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				l.Error("failed to close redis client", logger.Error(err))
			}
		}
	}

	desks, err := calculator.NewRegistry(cfg.Calc, log)
	if err != nil {
		closeAll(log)
		return err
	}
	svc := calculator.NewService(cfg.Calc, sessions, desks, nil, nil, log, svcOpts...)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Mount("/", calculator.Router(calculator.RouterOptions{
		Desk:   svc,
		Checks: checks,
		Logger: log,
	}))

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("calculator ready",
				slog.String("session_store", cfg.Session.Store),
				slog.String("language", cfg.Calc.Language),
			)
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			if err := desks.Close(); err != nil {
				l.Error("failed to close desks", logger.Error(err))
			}
			closeAll(l)
		}),
	)
	return srv.Run(ctx, r)
}
