package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/focus"
	"github.com/abhisek/focusflow/internal/store"
)

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Turn focus mode on or off",
}

var focusOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Turn focus mode on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFocus(cmd, true)
	},
}

var focusOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Turn focus mode off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setFocus(cmd, false)
	},
}

var focusStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show focus mode and today's focus time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		on, err := e.store.SettingsRepo().FocusMode(ctx)
		if err != nil {
			return fmt.Errorf("read focus mode: %w", err)
		}
		rec, err := e.store.AnalyticsRepo().Load(ctx)
		if err != nil {
			return fmt.Errorf("load analytics: %w", err)
		}
		sites, err := loadBlocklist(ctx, e.store.SettingsRepo(), e)
		if err != nil {
			return err
		}

		status := dimColor.Sprint("Off")
		if on {
			status = eduColor.Sprint("Active")
		}
		fmt.Printf("Focus mode:  %s\n", status)

		if on {
			sessions, err := e.store.EventRepo().FocusSessions(ctx, store.QueryOpts{Limit: 1})
			if err != nil {
				return fmt.Errorf("query focus sessions: %w", err)
			}
			if len(sessions) == 1 && sessions[0].EndedAt.IsZero() {
				fmt.Printf("Since:       %s (%s)\n",
					humanize.Time(sessions[0].StartedAt), sessions[0].Origin)
			}
		}

		a := focus.FromRecord(rec).Rollover(time.Now())
		today, week := a.Minutes()
		fmt.Printf("Today:       %d min\n", today)
		fmt.Printf("This week:   %d min\n", week)
		fmt.Printf("Blocking:    %d sites\n", sites.Len())
		return nil
	},
}

func init() {
	focusCmd.AddCommand(focusOnCmd)
	focusCmd.AddCommand(focusOffCmd)
	focusCmd.AddCommand(focusStatusCmd)
}

// setFocus flips the persisted focus flag and records the session. Focus
// time itself is accounted by the track daemon.
func setFocus(cmd *cobra.Command, on bool) error {
	ctx := cmd.Context()
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	settings := e.store.SettingsRepo()
	current, err := settings.FocusMode(ctx)
	if err != nil {
		return fmt.Errorf("read focus mode: %w", err)
	}
	sites, err := loadBlocklist(ctx, settings, e)
	if err != nil {
		return err
	}

	c := focus.NewController(sites,
		focus.WithModeStore(settings),
		focus.WithSessionRecorder(e.store.EventRepo()),
		focus.WithLogger(e.logger),
	)
	c.Restore(current)
	if err := c.SetFocus(ctx, on, focus.OriginManual); err != nil {
		return err
	}

	if on {
		fmt.Printf("Focus mode %s. Blocking %d sites.\n", eduColor.Sprint("on"), sites.Len())
	} else {
		fmt.Printf("Focus mode %s.\n", dimColor.Sprint("off"))
	}
	return nil
}
