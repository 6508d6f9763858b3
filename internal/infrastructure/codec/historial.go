// Package codec holds the persisted and published JSON shape of history entries.
package codec

import (
	"fmt"
	"time"

	"bcvrates-service/internal/domain"
)

type HistorialRecord struct {
	Fecha        string `json:"fecha"`
	TasaDolar    string `json:"tasa_dolar_bcv"`
	TasaEuro     string `json:"tasa_euro_bcv"`
	HoraRegistro string `json:"hora_registro"`
}

func FromEntry(e domain.HistorialEntry, loc *time.Location) HistorialRecord {
	at := e.RecordedAt
	if loc != nil {
		at = at.In(loc)
	}
	return HistorialRecord{
		Fecha:        e.Date,
		TasaDolar:    e.USD,
		TasaEuro:     e.EUR,
		HoraRegistro: at.Format(domain.TimeLayout),
	}
}

func FromEntries(es []domain.HistorialEntry, loc *time.Location) []HistorialRecord {
	out := make([]HistorialRecord, 0, len(es))
	for _, e := range es {
		out = append(out, FromEntry(e, loc))
	}
	return out
}

// ToEntry rebuilds the entry; RecordedAt is the record's date and time of day in loc.
func ToEntry(r HistorialRecord, loc *time.Location) (domain.HistorialEntry, error) {
	if loc == nil {
		loc = time.UTC
	}
	at, err := time.ParseInLocation(domain.DateLayout+" "+domain.TimeLayout, r.Fecha+" "+r.HoraRegistro, loc)
	if err != nil {
		return domain.HistorialEntry{}, fmt.Errorf("historial record %q: %w", r.Fecha, err)
	}
	return domain.HistorialEntry{
		Date:       r.Fecha,
		USD:        r.TasaDolar,
		EUR:        r.TasaEuro,
		RecordedAt: at,
	}, nil
}
