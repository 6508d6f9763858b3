package bootstrap

import (
	"context"
	"net/http"
	"time"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/config"
	"bcvrates-service/internal/infrastructure/cache"
	httpserver "bcvrates-service/internal/infrastructure/http"
	"bcvrates-service/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// API is everything cmd/api runs: the router and the optional scheduler.
type API struct {
	Config    config.Config
	Location  *time.Location
	Handler   http.Handler
	Refresher *application.Refresher
	Service   *application.RatesService
	Worker    application.Worker
}

// APIOptions lets tests swap collaborators that normally come from the environment.
type APIOptions struct {
	Extractor application.RateExtractor
	Registry  *prometheus.Registry
}

// InitAPI builds the API from cfg. The returned cleanup releases storage clients.
func InitAPI(ctx context.Context, log *zap.Logger, cfg config.Config, opts APIOptions) (*API, func(), error) {
	loc, err := ProvideLocation(cfg)
	if err != nil {
		return nil, noop, err
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}
	m := metrics.New(registerer)

	extractor := opts.Extractor
	if extractor == nil {
		if extractor, err = ProvideExtractor(cfg, loc); err != nil {
			return nil, noop, err
		}
	}

	storage, cleanup, err := ProvideHistorial(ctx, log, cfg, loc)
	if err != nil {
		return nil, noop, err
	}

	rateCache := cache.NewMemory()
	refresher := ProvideRefresher(cfg, loc, extractor, rateCache, storage.History, log, m)
	svc := application.NewRatesService(rateCache, storage.History, refresher, m)

	w, err := ProvideWorker(cfg, loc, refresher, storage.History, log)
	if err != nil {
		cleanup()
		return nil, noop, err
	}

	srv := httpserver.NewServer(svc,
		httpserver.WithServiceName(cfg.ServiceName),
		httpserver.WithLocation(loc),
		httpserver.WithMetrics(m),
	)
	if storage.Ping != nil {
		srv.SetReadyCheck(storage.Ping)
	}

	return &API{
		Config:    cfg,
		Location:  loc,
		Handler:   httpserver.NewRouter(srv, gatherer),
		Refresher: refresher,
		Service:   svc,
		Worker:    w,
	}, cleanup, nil
}
