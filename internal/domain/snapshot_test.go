package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateSnapshot_Validate(t *testing.T) {
	t.Parallel()
	require.NoError(t, RateSnapshot{USD: "36,50", EUR: "39,80"}.Validate())

	for _, s := range []RateSnapshot{
		{USD: "", EUR: "39,80"},
		{USD: "36,50", EUR: "  "},
		{USD: "No disponible", EUR: "39,80"},
	} {
		err := s.Validate()
		require.ErrorIs(t, err, ErrExtraction)
	}
}

func TestFormatLocal(t *testing.T) {
	t.Parallel()
	loc := caracas(t)
	at := time.Date(2026, 10, 20, 12, 0, 5, 0, time.UTC)
	require.Equal(t, "20/10/2026, 8:00:05 a. m.", FormatLocal(at, loc))

	at = time.Date(2026, 1, 5, 19, 30, 0, 0, time.UTC)
	require.Equal(t, "5/1/2026, 3:30:00 p. m.", FormatLocal(at, loc))
}

func TestNewHistorialEntry_UsesSourceCalendar(t *testing.T) {
	t.Parallel()
	loc := caracas(t)
	// 02:00 UTC on the 21st is still the 20th in Caracas.
	now := time.Date(2026, 10, 21, 2, 0, 0, 0, time.UTC)
	e := NewHistorialEntry(RateSnapshot{USD: "1", EUR: "2"}, now, loc)
	require.Equal(t, "2026-10-20", e.Date)
	require.Equal(t, "1", e.USD)
	require.Equal(t, "2", e.EUR)
	require.True(t, now.Equal(e.RecordedAt))
}
