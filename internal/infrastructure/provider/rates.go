package provider

import (
	"fmt"
	"strings"

	"bcvrates-service/internal/domain"

	"github.com/shopspring/decimal"
)

// checkRate verifies that v is a positive number in either "36,50" or "36.50"
// notation and returns it trimmed, otherwise unchanged.
func checkRate(label, v string) (string, error) {
	v = strings.TrimSpace(v)
	if domain.IsBlankRate(v) {
		return "", fmt.Errorf("%w: %s rate not found", domain.ErrExtraction, label)
	}
	d, err := decimal.NewFromString(normalizeNumber(v))
	if err != nil {
		return "", fmt.Errorf("%w: %s rate %q is not a number", domain.ErrExtraction, label, v)
	}
	if !d.IsPositive() {
		return "", fmt.Errorf("%w: %s rate %q is not positive", domain.ErrExtraction, label, v)
	}
	return v, nil
}

// normalizeNumber turns "1.234,56" into "1234.56"; dot-decimal input is left alone.
func normalizeNumber(v string) string {
	if !strings.Contains(v, ",") {
		return v
	}
	v = strings.ReplaceAll(v, ".", "")
	return strings.Replace(v, ",", ".", 1)
}
