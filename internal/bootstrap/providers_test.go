package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"bcvrates-service/internal/config"
	"bcvrates-service/internal/infrastructure/filestore"
	"bcvrates-service/internal/infrastructure/memstore"
	"bcvrates-service/internal/infrastructure/provider"
	"bcvrates-service/internal/infrastructure/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		ServiceName:    "bcv-test",
		Provider:       "fake",
		Storage:        "memory",
		HistorialFile:  filepath.Join(t.TempDir(), "historial.json"),
		Timezone:       "America/Caracas",
		ScheduleMode:   "timer",
		ScheduleHour:   8,
		TickInterval:   time.Hour,
		RequestTimeout: time.Second,
		SourceURL:      "https://www.bcv.org.ve/",
		USDSelector:    provider.DefaultUSDSelector,
		EURSelector:    provider.DefaultEURSelector,
	}
}

func TestProvideExtractor(t *testing.T) {
	cfg := baseConfig(t)
	loc := time.UTC

	for name, want := range map[string]any{
		"bcv":    &provider.BCV{},
		"static": &provider.Static{},
		"fake":   &provider.Fake{},
	} {
		cfg.Provider = name
		ex, err := ProvideExtractor(cfg, loc)
		require.NoError(t, err, name)
		require.IsType(t, want, ex, name)
	}

	cfg.Provider = "nope"
	_, err := ProvideExtractor(cfg, loc)
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestProvideHistorial(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig(t)
	log := zap.NewNop()

	s, cleanup, err := ProvideHistorial(ctx, log, cfg, time.UTC)
	require.NoError(t, err)
	cleanup()
	require.IsType(t, &memstore.Historial{}, s.History)
	require.Nil(t, s.Ping)

	cfg.Storage = "file"
	s, cleanup, err = ProvideHistorial(ctx, log, cfg, time.UTC)
	require.NoError(t, err)
	cleanup()
	require.IsType(t, &filestore.Historial{}, s.History)
	require.NoError(t, s.Ping(ctx))

	cfg.Storage = "pg"
	_, _, err = ProvideHistorial(ctx, log, cfg, time.UTC)
	require.ErrorIs(t, err, ErrMissingDBURL)

	cfg.Storage = "sqlite"
	_, _, err = ProvideHistorial(ctx, log, cfg, time.UTC)
	require.ErrorIs(t, err, ErrUnknownStorage)
}

func TestProvideWorker(t *testing.T) {
	cfg := baseConfig(t)
	log := zap.NewNop()
	h := memstore.NewHistorial()

	w, err := ProvideWorker(cfg, time.UTC, nil, h, log)
	require.NoError(t, err)
	require.IsType(t, &worker.Scheduler{}, w)

	cfg.ScheduleMode = "tick"
	w, err = ProvideWorker(cfg, time.UTC, nil, h, log)
	require.NoError(t, err)
	require.IsType(t, &worker.TickScheduler{}, w)

	cfg.ScheduleMode = "off"
	w, err = ProvideWorker(cfg, time.UTC, nil, h, log)
	require.NoError(t, err)
	require.Nil(t, w)

	cfg.ScheduleMode = "timer"
	cfg.Provider = "static"
	w, err = ProvideWorker(cfg, time.UTC, nil, h, log)
	require.NoError(t, err)
	require.Nil(t, w, "static deployments never schedule")

	cfg.Provider = "bcv"
	cfg.ScheduleMode = "cron"
	_, err = ProvideWorker(cfg, time.UTC, nil, h, log)
	require.ErrorIs(t, err, ErrUnknownScheduleMode)
}

func TestProvideLocation_Invalid(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Timezone = "Mars/Olympus"
	_, err := ProvideLocation(cfg)
	require.Error(t, err)
}

func TestInitAPI_ServesFakeRates(t *testing.T) {
	cfg := baseConfig(t)
	api, cleanup, err := InitAPI(context.Background(), zap.NewNop(), cfg, APIOptions{Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, api.Worker)

	rec := httptest.NewRecorder()
	api.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"tasa_dolar_bcv":"36.50"`)
}
