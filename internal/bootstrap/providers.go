package bootstrap

import (
	"context"
	"fmt"
	"time"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/config"
	"bcvrates-service/internal/domain"
	"bcvrates-service/internal/infrastructure/filestore"
	"bcvrates-service/internal/infrastructure/httpx"
	"bcvrates-service/internal/infrastructure/logx"
	"bcvrates-service/internal/infrastructure/memstore"
	"bcvrates-service/internal/infrastructure/pg"
	"bcvrates-service/internal/infrastructure/provider"
	redisstore "bcvrates-service/internal/infrastructure/redis"
	"bcvrates-service/internal/infrastructure/worker"
	"bcvrates-service/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Storage is the configured history store plus its readiness probe.
type Storage struct {
	History application.HistorialStore
	Ping    func(ctx context.Context) error
}

func noop() {}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideLocation(cfg config.Config) (*time.Location, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}

func ProvideExtractor(cfg config.Config, loc *time.Location) (application.RateExtractor, error) {
	switch cfg.Provider {
	case "bcv":
		return &provider.BCV{
			URL:           cfg.SourceURL,
			USDSelector:   cfg.USDSelector,
			EURSelector:   cfg.EURSelector,
			FechaSelector: cfg.FechaSelector,
			Client: &httpx.Client{
				HTTP:       provider.NewHTTPClient(cfg.RequestTimeout, cfg.SourceInsecureTLS),
				MaxElapsed: cfg.RequestTimeout,
			},
			Location: loc,
		}, nil
	case "static":
		return &provider.Static{Path: cfg.StaticFile}, nil
	case "fake":
		return provider.NewFake("36.50", "39.80"), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, noop, ErrMissingDBURL
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, noop, err
	}
	if err := pg.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, noop, err
	}
	return db, func() {
		log.Info("closing pg")
		db.Close()
	}, nil
}

func ProvideRedisClient(cfg config.Config) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return client, func() { _ = client.Close() }, nil
}

// ProvideHistorial opens the store selected by STORAGE.
func ProvideHistorial(ctx context.Context, log *zap.Logger, cfg config.Config, loc *time.Location) (Storage, func(), error) {
	switch cfg.Storage {
	case "file":
		h := filestore.NewHistorial(cfg.HistorialFile, loc)
		return Storage{History: h, Ping: h.Ping}, noop, nil
	case "memory":
		return Storage{History: memstore.NewHistorial()}, noop, nil
	case "pg":
		db, cleanup, err := ProvideDB(ctx, log, cfg)
		if err != nil {
			return Storage{}, noop, err
		}
		return Storage{History: pg.NewHistorialRepo(db), Ping: db.Ping}, cleanup, nil
	case "redis":
		client, cleanup, err := ProvideRedisClient(cfg)
		if err != nil {
			return Storage{}, noop, err
		}
		s := redisstore.New(client, cfg.RedisPrefix, loc)
		return Storage{History: s, Ping: s.Ping}, cleanup, nil
	default:
		return Storage{}, noop, fmt.Errorf("%w: %q", ErrUnknownStorage, cfg.Storage)
	}
}

func ProvideRefresher(cfg config.Config, loc *time.Location, ex application.RateExtractor, cache application.RateCache,
	history application.HistorialStore, log *zap.Logger, m *metrics.Metrics,
) *application.Refresher {
	return application.NewRefresher(ex, cache, history,
		application.WithLocation(loc),
		application.WithRefreshTimeout(cfg.RequestTimeout),
		application.WithLogger(log),
		application.WithMetrics(m),
	)
}

// ProvideWorker returns nil when scheduling is disabled.
func ProvideWorker(cfg config.Config, loc *time.Location, trigger application.RefreshTrigger,
	history application.HistorialStore, log *zap.Logger,
) (application.Worker, error) {
	if cfg.Provider == "static" {
		log.Info("static provider; scheduler disabled")
		return nil, nil
	}
	sched := ProvideSchedule(cfg, loc)
	switch cfg.ScheduleMode {
	case "timer":
		return &worker.Scheduler{Refresh: trigger, History: history, Schedule: sched, Log: log}, nil
	case "tick":
		return &worker.TickScheduler{Refresh: trigger, Schedule: sched, Every: cfg.TickInterval, Log: log}, nil
	case "off":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheduleMode, cfg.ScheduleMode)
	}
}

func ProvideSchedule(cfg config.Config, loc *time.Location) domain.Schedule {
	return domain.Schedule{Location: loc, Hour: cfg.ScheduleHour}
}
