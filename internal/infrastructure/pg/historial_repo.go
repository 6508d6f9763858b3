package pg

import (
	"context"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"
	"bcvrates-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

var _ application.HistorialStore = (*HistorialRepo)(nil)

type HistorialRepo struct{ db *DB }

func NewHistorialRepo(db *DB) *HistorialRepo { return &HistorialRepo{db: db} }

func (r *HistorialRepo) Append(ctx context.Context, e domain.HistorialEntry) error {
	const ins = `
        INSERT INTO historial(fecha, tasa_dolar, tasa_euro, recorded_at)
        VALUES ($1::date, $2, $3, $4)
        ON CONFLICT (fecha) DO NOTHING`
	log := logx.L().With(
		zap.String("repo", "historial"),
		zap.String("operation", "Append"),
		zap.String("fecha", e.Date),
	)
	log.Debug("sql.exec_start")
	tag, err := r.db.Pool.Exec(ctx, ins, e.Date, e.USD, e.EUR, e.RecordedAt)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	log.Info("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (r *HistorialRepo) All(ctx context.Context) ([]domain.HistorialEntry, error) {
	const q = `
        SELECT fecha::text, tasa_dolar, tasa_euro, recorded_at
        FROM historial ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		logx.L().Error("sql.query_failed", zap.String("repo", "historial"), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	out := []domain.HistorialEntry{}
	for rows.Next() {
		var e domain.HistorialEntry
		if err := rows.Scan(&e.Date, &e.USD, &e.EUR, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *HistorialRepo) ExistsForDate(ctx context.Context, date string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM historial WHERE fecha = $1::date)`
	var ok bool
	if err := r.db.Pool.QueryRow(ctx, q, date).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
