package provider

import (
	"context"
	"time"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"
)

// Ensure Fake implements application.RateExtractor.
var _ application.RateExtractor = (*Fake)(nil)

type Fake struct {
	usd, eur string
}

func NewFake(usd, eur string) *Fake { return &Fake{usd: usd, eur: eur} }

func (f *Fake) Extract(_ context.Context) (domain.RateSnapshot, error) {
	return domain.RateSnapshot{
		USD:       f.usd,
		EUR:       f.eur,
		FetchedAt: time.Now(),
		Source:    domain.SourceName,
	}, nil
}
