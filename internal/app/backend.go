package app

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/focusflow/internal/blocklist"
	"github.com/abhisek/focusflow/internal/focus"
	"github.com/abhisek/focusflow/internal/screens/home"
	"github.com/abhisek/focusflow/internal/screens/sites"
	"github.com/abhisek/focusflow/internal/store"
)

// backend serves the popup screens from the store. Every call rereads the
// store so the popup reflects changes made by the tracker or the CLI.
type backend struct {
	settings   store.SettingsRepo
	analytics  store.AnalyticsRepo
	controller *focus.Controller
	now        func() time.Time
}

var (
	_ home.Backend  = (*backend)(nil)
	_ sites.Backend = (*backend)(nil)
)

func (b *backend) Status(ctx context.Context) (home.Status, error) {
	on, err := b.settings.FocusMode(ctx)
	if err != nil {
		return home.Status{}, fmt.Errorf("read focus mode: %w", err)
	}
	list, err := b.blocklist(ctx)
	if err != nil {
		return home.Status{}, err
	}
	st := home.Status{FocusOn: on, Sites: list.Len()}
	if b.analytics != nil {
		rec, err := b.analytics.Load(ctx)
		if err != nil {
			return home.Status{}, fmt.Errorf("load analytics: %w", err)
		}
		st.TodayMinutes, st.WeekMinutes = focus.FromRecord(rec).Rollover(b.now()).Minutes()
	}
	return st, nil
}

func (b *backend) SetFocus(ctx context.Context, on bool) error {
	current, err := b.settings.FocusMode(ctx)
	if err != nil {
		return fmt.Errorf("read focus mode: %w", err)
	}
	list, err := b.blocklist(ctx)
	if err != nil {
		return err
	}
	b.controller.SetBlockedSites(list)
	b.controller.Restore(current)
	return b.controller.SetFocus(ctx, on, focus.OriginManual)
}

func (b *backend) Sites(ctx context.Context) ([]string, error) {
	list, err := b.blocklist(ctx)
	if err != nil {
		return nil, err
	}
	return list.Sites(), nil
}

func (b *backend) AddSite(ctx context.Context, site string) ([]string, error) {
	list, err := b.blocklist(ctx)
	if err != nil {
		return nil, err
	}
	if list, err = list.Add(site); err != nil {
		return nil, err
	}
	return b.save(ctx, list)
}

func (b *backend) RemoveSite(ctx context.Context, site string) ([]string, error) {
	list, err := b.blocklist(ctx)
	if err != nil {
		return nil, err
	}
	return b.save(ctx, list.Remove(site))
}

func (b *backend) blocklist(ctx context.Context) (blocklist.List, error) {
	stored, err := b.settings.BlockedSites(ctx)
	if err != nil {
		return blocklist.List{}, fmt.Errorf("read blocked sites: %w", err)
	}
	list, _ := blocklist.New(stored)
	return list, nil
}

func (b *backend) save(ctx context.Context, list blocklist.List) ([]string, error) {
	if err := b.settings.SetBlockedSites(ctx, list.Sites()); err != nil {
		return nil, fmt.Errorf("save blocked sites: %w", err)
	}
	b.controller.SetBlockedSites(list)
	return list.Sites(), nil
}
