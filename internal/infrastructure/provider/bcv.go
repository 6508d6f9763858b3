package provider

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"
	"bcvrates-service/internal/infrastructure/httpx"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultUSDSelector = "#dolar .centrado"
	DefaultEURSelector = "#euro .centrado"
	// DefaultFechaSelector is the "Fecha Valor" label printed under the rates.
	// News items on the same page reuse date-display-single, hence the scope.
	DefaultFechaSelector = ".pull-right.dinpro.center span.date-display-single"
)

var _ application.RateExtractor = (*BCV)(nil)

// BCV scrapes the rates from the Banco Central de Venezuela home page.
type BCV struct {
	URL         string
	USDSelector string
	EURSelector string
	// FechaSelector locates the source's validity date.
	FechaSelector string
	Client        *httpx.Client
	Location      *time.Location
	Now           func() time.Time
}

// NewHTTPClient builds the fetch client. The BCV site has served incomplete
// certificate chains, so verification can be turned off with insecureTLS.
func NewHTTPClient(timeout time.Duration, insecureTLS bool) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecureTLS {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

func (p *BCV) Extract(ctx context.Context) (domain.RateSnapshot, error) {
	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}
	raw, err := client.Get(ctx, p.URL, map[string]string{"Accept": "text/html"})
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: bcv %s: %w", domain.ErrSourceUnavailable, p.URL, err)
	}
	return p.Parse(raw, p.now())
}

// Parse pulls both rates out of a BCV page.
func (p *BCV) Parse(raw []byte, fetchedAt time.Time) (domain.RateSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return domain.RateSnapshot{}, fmt.Errorf("%w: parse bcv html: %w", domain.ErrExtraction, err)
	}

	usd, err := checkRate("usd", doc.Find(orDefault(p.USDSelector, DefaultUSDSelector)).First().Text())
	if err != nil {
		return domain.RateSnapshot{}, err
	}
	eur, err := checkRate("eur", doc.Find(orDefault(p.EURSelector, DefaultEURSelector)).First().Text())
	if err != nil {
		return domain.RateSnapshot{}, err
	}

	stamp := strings.Join(strings.Fields(doc.Find(orDefault(p.FechaSelector, DefaultFechaSelector)).First().Text()), " ")
	if stamp == "" {
		stamp = domain.FormatLocal(fetchedAt, p.Location)
	}
	return domain.RateSnapshot{
		USD:             usd,
		EUR:             eur,
		SourceTimestamp: stamp,
		FetchedAt:       fetchedAt,
		Source:          domain.SourceName,
	}, nil
}

func (p *BCV) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
