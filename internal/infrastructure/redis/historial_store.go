package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bcvrates-service/internal/application"
	"bcvrates-service/internal/domain"
	"bcvrates-service/internal/infrastructure/codec"

	"github.com/redis/go-redis/v9"
)

var _ application.HistorialStore = (*Historial)(nil)

// appendOnce indexes the date and pushes the record in one step, so a date
// can never be listed twice.
var appendOnce = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 1 then
  redis.call('RPUSH', KEYS[2], ARGV[2])
  return 1
end
return 0
`)

// Historial keeps the ordered history in a list and a date index in a hash.
type Historial struct {
	Client *redis.Client
	Prefix string
	Loc    *time.Location
}

func New(client *redis.Client, prefix string, loc *time.Location) *Historial {
	if prefix == "" {
		prefix = "bcv"
	}
	return &Historial{Client: client, Prefix: prefix, Loc: loc}
}

func (s *Historial) listKey() string  { return s.Prefix + ":historial" }
func (s *Historial) indexKey() string { return s.Prefix + ":historial:fechas" }

func (s *Historial) Append(ctx context.Context, e domain.HistorialEntry) error {
	payload, err := json.Marshal(codec.FromEntry(e, s.Loc))
	if err != nil {
		return fmt.Errorf("encode historial entry: %w", err)
	}
	keys := []string{s.indexKey(), s.listKey()}
	if err := appendOnce.Run(ctx, s.Client, keys, e.Date, string(payload)).Err(); err != nil {
		return fmt.Errorf("redis append historial: %w", err)
	}
	return nil
}

func (s *Historial) All(ctx context.Context) ([]domain.HistorialEntry, error) {
	raw, err := s.Client.LRange(ctx, s.listKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis read historial: %w", err)
	}
	out := make([]domain.HistorialEntry, 0, len(raw))
	for _, item := range raw {
		var r codec.HistorialRecord
		if err := json.Unmarshal([]byte(item), &r); err != nil {
			return nil, fmt.Errorf("decode historial entry: %w", err)
		}
		e, err := codec.ToEntry(r, s.Loc)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Historial) ExistsForDate(ctx context.Context, date string) (bool, error) {
	ok, err := s.Client.HExists(ctx, s.indexKey(), date).Result()
	if err != nil {
		return false, fmt.Errorf("redis check historial: %w", err)
	}
	return ok, nil
}

func (s *Historial) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}
