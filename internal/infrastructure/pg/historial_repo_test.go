package pg_test

import (
	"context"
	"testing"
	"time"

	"bcvrates-service/internal/domain"
	"bcvrates-service/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
)

func TestHistorialRepo_FirstWriteWins(t *testing.T) {
	db := withPostgres(t)
	ctx := context.Background()
	repo := pg.NewHistorialRepo(db)
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	require.NoError(t, repo.Append(ctx, domain.HistorialEntry{Date: "2026-10-19", USD: "36,50", EUR: "39,80", RecordedAt: at}))
	require.NoError(t, repo.Append(ctx, domain.HistorialEntry{Date: "2026-10-19", USD: "99", EUR: "99", RecordedAt: at.Add(time.Hour)}))
	require.NoError(t, repo.Append(ctx, domain.HistorialEntry{Date: "2026-10-20", USD: "36,60", EUR: "39,90", RecordedAt: at.Add(24 * time.Hour)}))

	all, err = repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "2026-10-19", all[0].Date)
	require.Equal(t, "36,50", all[0].USD)
	require.True(t, at.Equal(all[0].RecordedAt))

	ok, err := repo.ExistsForDate(ctx, "2026-10-20")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.ExistsForDate(ctx, "2026-10-21")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, db.Ping(ctx))
}
