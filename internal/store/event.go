package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// sequenceCounter manages the global monotonic sequence number shared by
// classification events and focus sessions, so the two tables can be merged
// into one timeline (the export does this) without relying on wall clocks.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo on top of the query builder and the global
// sequence counter.
type eventRepo struct {
	store *Store
}

var classificationColumns = []string{
	"id", "sequence", "timestamp", "video_id", "title", "channel", "educational",
	"source", "confidence", "educational_score", "distracting_score", "fallback_score", "reasoning",
}

func (r *eventRepo) AppendClassification(ctx context.Context, data ClassificationEventData) error {
	seqNum, err := r.store.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := builder().Insert("classification_events").
		Columns(classificationColumns...).
		Values(
			uuid.NewString(), seqNum, r.store.now().UnixMilli(),
			data.VideoID, data.Title, data.Channel, data.Educational,
			data.Source, data.Confidence, data.EducationalScore, data.DistractingScore,
			data.FallbackScore, data.Reasoning,
		)
	if err := execQuery(ctx, r.store.db, ins); err != nil {
		return fmt.Errorf("save classification event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentClassifications(ctx context.Context, opts QueryOpts) ([]ClassificationEvent, error) {
	sel := builder().Select(classificationColumns...).
		From(builder().Table("classification_events")).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts, "timestamp")

	query, args := sel.Query()
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query classification events: %w", err)
	}
	defer rows.Close()

	var events []ClassificationEvent
	for rows.Next() {
		var e ClassificationEvent
		var ts int64
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.VideoID, &e.Title, &e.Channel, &e.Educational,
			&e.Source, &e.Confidence, &e.EducationalScore, &e.DistractingScore,
			&e.FallbackScore, &e.Reasoning,
		); err != nil {
			return nil, fmt.Errorf("scan classification event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) StartFocusSession(ctx context.Context, origin string) (string, error) {
	query, args := builder().Select("id").
		From(builder().Table("focus_sessions")).
		Where(entsql.EQ("ended_at", 0)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var open string
	err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&open)
	switch {
	case err == nil:
		return open, nil
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("query open focus session: %w", err)
	}

	seqNum, err := r.store.seq.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("next sequence: %w", err)
	}
	id := uuid.NewString()
	ins := builder().Insert("focus_sessions").
		Columns("id", "sequence", "started_at", "origin").
		Values(id, seqNum, r.store.now().UnixMilli(), origin)
	if err := execQuery(ctx, r.store.db, ins); err != nil {
		return "", fmt.Errorf("save focus session: %w", err)
	}
	return id, nil
}

func (r *eventRepo) EndFocusSession(ctx context.Context) error {
	upd := builder().Update("focus_sessions").
		Set("ended_at", r.store.now().UnixMilli()).
		Where(entsql.EQ("ended_at", 0))
	if err := execQuery(ctx, r.store.db, upd); err != nil {
		return fmt.Errorf("end focus session: %w", err)
	}
	return nil
}

func (r *eventRepo) FocusSessions(ctx context.Context, opts QueryOpts) ([]FocusSession, error) {
	sel := builder().Select("id", "sequence", "started_at", "ended_at", "origin").
		From(builder().Table("focus_sessions")).
		OrderBy(entsql.Desc("sequence"))
	applyOpts(sel, opts, "started_at")

	query, args := sel.Query()
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []FocusSession
	for rows.Next() {
		var f FocusSession
		var started, ended int64
		if err := rows.Scan(&f.ID, &f.Sequence, &started, &ended, &f.Origin); err != nil {
			return nil, fmt.Errorf("scan focus session: %w", err)
		}
		f.StartedAt = fromMillis(started)
		f.EndedAt = fromMillis(ended)
		sessions = append(sessions, f)
	}
	return sessions, rows.Err()
}

// applyOpts adds the QueryOpts filters to sel. timeColumn holds Unix
// milliseconds.
func applyOpts(sel *entsql.Selector, opts QueryOpts, timeColumn string) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(timeColumn, opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(timeColumn, opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
