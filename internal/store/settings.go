package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	keyFocusMode   = "focus_mode"
	keyPreferences = "preferences"
	keySitesSeeded = "blocked_sites_seeded"
)

// settingsRepo stores JSON values by key in the settings table and the
// ordered blocklist in blocked_sites.
type settingsRepo struct {
	store *Store
}

func (r *settingsRepo) FocusMode(ctx context.Context) (bool, error) {
	var on bool
	if _, err := r.get(ctx, keyFocusMode, &on); err != nil {
		return false, err
	}
	return on, nil
}

func (r *settingsRepo) SetFocusMode(ctx context.Context, on bool) error {
	return r.put(ctx, r.store.db, keyFocusMode, on)
}

func (r *settingsRepo) Preferences(ctx context.Context) (Preferences, error) {
	p := DefaultPreferences()
	if _, err := r.get(ctx, keyPreferences, &p); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

func (r *settingsRepo) SetPreferences(ctx context.Context, p Preferences) error {
	return r.put(ctx, r.store.db, keyPreferences, p)
}

func (r *settingsRepo) BlockedSites(ctx context.Context) ([]string, error) {
	var seeded bool
	found, err := r.get(ctx, keySitesSeeded, &seeded)
	if err != nil {
		return nil, err
	}
	if !found || !seeded {
		sites := r.store.defaultSites
		if err := r.SetBlockedSites(ctx, sites); err != nil {
			return nil, fmt.Errorf("seed blocked sites: %w", err)
		}
		return append([]string(nil), sites...), nil
	}

	query, args := builder().Select("site").
		From(builder().Table("blocked_sites")).
		OrderBy("position").
		Query()
	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blocked sites: %w", err)
	}
	defer rows.Close()

	sites := []string{}
	for rows.Next() {
		var site string
		if err := rows.Scan(&site); err != nil {
			return nil, fmt.Errorf("scan blocked site: %w", err)
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// SetBlockedSites replaces the whole list, keeping the given order.
func (r *settingsRepo) SetBlockedSites(ctx context.Context, sites []string) error {
	return r.store.withTx(ctx, func(tx *sql.Tx) error {
		if err := execQuery(ctx, tx, builder().Delete("blocked_sites")); err != nil {
			return fmt.Errorf("clear blocked sites: %w", err)
		}
		if len(sites) > 0 {
			ins := builder().Insert("blocked_sites").Columns("site", "position")
			for i, s := range sites {
				ins.Values(s, i)
			}
			if err := execQuery(ctx, tx, ins); err != nil {
				return fmt.Errorf("insert blocked sites: %w", err)
			}
		}
		return r.put(ctx, tx, keySitesSeeded, true)
	})
}

// get decodes the value stored under key into dst and reports whether the
// key exists.
func (r *settingsRepo) get(ctx context.Context, key string, dst any) (bool, error) {
	query, args := builder().Select("value").
		From(builder().Table("settings")).
		Where(entsql.EQ("key", key)).
		Query()

	var raw string
	err := r.store.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read setting %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return true, nil
}

func (r *settingsRepo) put(ctx context.Context, e execer, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	ins := builder().Insert("settings").
		Columns("key", "value", "updated_at").
		Values(key, string(raw), r.store.now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues())
	if err := execQuery(ctx, e, ins); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}
