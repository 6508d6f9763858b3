package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"
	"bcvrates-service/internal/infrastructure/codec"
	"bcvrates-service/internal/infrastructure/logx"
	"bcvrates-service/internal/metrics"

	"go.uber.org/zap"
)

const ratesUnavailableMsg = "No se pudieron obtener las tasas del BCV"

type RatesResponse struct {
	Fuente             string `json:"fuente"`
	FechaActualizacion string `json:"fecha_actualizacion"`
	TasaDolar          string `json:"tasa_dolar_bcv"`
	TasaEuro           string `json:"tasa_euro_bcv"`
}

type EstadoResponse struct {
	Servicio string         `json:"servicio"`
	Estado   string         `json:"estado"`
	Tasas    *RatesResponse `json:"tasas"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Server struct {
	svc         *application.RatesService
	ping        func(ctx context.Context) error
	serviceName string
	loc         *time.Location
	metrics     *metrics.Metrics
}

type Option func(*Server)

func WithServiceName(name string) Option     { return func(s *Server) { s.serviceName = name } }
func WithLocation(loc *time.Location) Option { return func(s *Server) { s.loc = loc } }
func WithMetrics(m *metrics.Metrics) Option  { return func(s *Server) { s.metrics = m } }

func NewServer(svc *application.RatesService, opts ...Option) *Server {
	s := &Server{svc: svc, serviceName: "bcv-rates", loc: time.UTC}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetReadyCheck installs the storage probe used by /readyz.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

// GetRates serves the cached snapshot, refreshing lazily on an empty cache.
func (s *Server) GetRates(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Current(r.Context())
	if err != nil {
		logx.WithFields(r.Context()).Error("rates.unavailable", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": ratesUnavailableMsg})
		return
	}
	writeJSON(w, http.StatusOK, toRatesResponse(snap))
}

// GetEstado reports what is cached without triggering a refresh.
func (s *Server) GetEstado(w http.ResponseWriter, _ *http.Request) {
	resp := EstadoResponse{Servicio: s.serviceName, Estado: "sin_datos"}
	if snap, ok := s.svc.Cached(); ok {
		rates := toRatesResponse(snap)
		resp.Estado = "ok"
		resp.Tasas = &rates
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetHistorial(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.History(r.Context())
	if err != nil {
		logx.WithFields(r.Context()).Error("historial.read_failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "historial unavailable")
		return
	}
	writeJSON(w, http.StatusOK, codec.FromEntries(entries, s.loc))
}

func toRatesResponse(s domain.RateSnapshot) RatesResponse {
	return RatesResponse{
		Fuente:             s.Source,
		FechaActualizacion: s.SourceTimestamp,
		TasaDolar:          s.USD,
		TasaEuro:           s.EUR,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}
