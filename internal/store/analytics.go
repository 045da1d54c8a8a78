package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// analyticsRepo keeps a single row (id = 1). Totals are whole seconds.
type analyticsRepo struct {
	store *Store
}

func (r *analyticsRepo) Load(ctx context.Context) (AnalyticsRecord, error) {
	query, args := builder().Select("daily_seconds", "weekly_seconds", "last_reset").
		From(builder().Table("analytics")).
		Where(entsql.EQ("id", 1)).
		Query()

	var daily, weekly, lastReset int64
	err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&daily, &weekly, &lastReset)
	if errors.Is(err, sql.ErrNoRows) {
		rec := AnalyticsRecord{LastReset: r.store.now()}
		if err := r.Save(ctx, rec); err != nil {
			return AnalyticsRecord{}, fmt.Errorf("initialize analytics: %w", err)
		}
		return rec, nil
	}
	if err != nil {
		return AnalyticsRecord{}, fmt.Errorf("load analytics: %w", err)
	}

	return AnalyticsRecord{
		Daily:     time.Duration(daily) * time.Second,
		Weekly:    time.Duration(weekly) * time.Second,
		LastReset: fromMillis(lastReset),
	}, nil
}

func (r *analyticsRepo) Save(ctx context.Context, rec AnalyticsRecord) error {
	ins := builder().Insert("analytics").
		Columns("id", "daily_seconds", "weekly_seconds", "last_reset").
		Values(1, int64(rec.Daily/time.Second), int64(rec.Weekly/time.Second), toMillis(rec.LastReset)).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if err := execQuery(ctx, r.store.db, ins); err != nil {
		return fmt.Errorf("save analytics: %w", err)
	}
	return nil
}

func (r *analyticsRepo) Reset(ctx context.Context) error {
	return r.Save(ctx, AnalyticsRecord{LastReset: r.store.now()})
}
