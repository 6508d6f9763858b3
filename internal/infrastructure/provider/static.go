package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"
)

var _ application.RateExtractor = (*Static)(nil)

// StaticDocument is the pre-populated file served in static mode. It has the
// same shape as the GET / response.
type StaticDocument struct {
	Fuente             string `json:"fuente"`
	FechaActualizacion string `json:"fecha_actualizacion"`
	TasaDolar          string `json:"tasa_dolar_bcv"`
	TasaEuro           string `json:"tasa_euro_bcv"`
}

// Static reads the rates from a local JSON document instead of the network.
// FetchedAt is left zero and an empty fecha_actualizacion stays empty; the
// refresher stamps both at acceptance time.
type Static struct {
	Path string
}

func (s *Static) Extract(_ context.Context) (domain.RateSnapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: static %s: %w", domain.ErrSourceUnavailable, s.Path, err)
	}
	var doc StaticDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: decode %s: %w", domain.ErrExtraction, s.Path, err)
	}
	usd, err := checkRate("usd", doc.TasaDolar)
	if err != nil {
		return domain.RateSnapshot{}, err
	}
	eur, err := checkRate("eur", doc.TasaEuro)
	if err != nil {
		return domain.RateSnapshot{}, err
	}

	source := doc.Fuente
	if source == "" {
		source = domain.SourceName
	}
	return domain.RateSnapshot{
		USD:             usd,
		EUR:             eur,
		SourceTimestamp: doc.FechaActualizacion,
		Source:          source,
	}, nil
}
