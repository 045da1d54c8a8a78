package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/focus"
	"github.com/abhisek/focusflow/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus time and recent classifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		rec, err := e.store.AnalyticsRepo().Load(ctx)
		if err != nil {
			return fmt.Errorf("load analytics: %w", err)
		}
		now := time.Now()
		a := focus.FromRecord(rec).Rollover(now)
		today, week := a.Minutes()

		fmt.Printf("Focus today:      %d min\n", today)
		fmt.Printf("Focus this week:  %d min\n", week)
		fmt.Printf("Last reset:       %s\n", humanize.Time(a.LastReset))

		events := e.store.EventRepo()
		sessions, err := events.FocusSessions(ctx, store.QueryOpts{From: startOfWeek(now)})
		if err != nil {
			return fmt.Errorf("query focus sessions: %w", err)
		}
		var total time.Duration
		for _, s := range sessions {
			total += s.Duration(now)
		}
		fmt.Printf("Sessions (week):  %s, %s total\n",
			humanize.Comma(int64(len(sessions))), total.Truncate(time.Second))

		recent, err := events.RecentClassifications(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query classifications: %w", err)
		}
		if len(recent) == 0 {
			fmt.Println("\nNo classifications recorded.")
			return nil
		}

		var edu int
		for _, c := range recent {
			if c.Educational {
				edu++
			}
		}
		fmt.Printf("\nLast %s classifications: %s educational, %s distracting\n",
			humanize.Comma(int64(len(recent))), humanize.Comma(int64(edu)), humanize.Comma(int64(len(recent)-edu)))
		fmt.Println(strings.Repeat("─", 80))
		for _, c := range recent {
			title := c.Title
			if len(title) > 44 {
				title = title[:41] + "..."
			}
			fmt.Printf("%-16s  %-13s  %-8s  %.2f  %s\n",
				humanize.Time(c.Timestamp), verdictLabel(c.Educational), c.Source, c.Confidence, title)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent classifications to show")
}

// startOfWeek returns Monday 00:00 of now's ISO week.
func startOfWeek(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
