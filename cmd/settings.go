package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/focus"
	"github.com/abhisek/focusflow/internal/store"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.store.SettingsRepo().Preferences(cmd.Context())
		if err != nil {
			return fmt.Errorf("read preferences: %w", err)
		}
		printPreferences(p)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change preferences",
	Example: `  focusflow settings set --auto-focus custom --schedule-start 09:00 --schedule-end 17:00
  focusflow settings set --strict --notify=false`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		settings := e.store.SettingsRepo()
		p, err := settings.Preferences(ctx)
		if err != nil {
			return fmt.Errorf("read preferences: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("auto-focus") {
			v, _ := flags.GetString("auto-focus")
			switch v {
			case "off", "":
				p.AutoFocus = ""
			case store.AutoFocusCustom:
				p.AutoFocus = store.AutoFocusCustom
			default:
				return fmt.Errorf("--auto-focus must be off or %s, got %q", store.AutoFocusCustom, v)
			}
		}
		if flags.Changed("schedule-start") {
			p.ScheduleStart, _ = flags.GetString("schedule-start")
		}
		if flags.Changed("schedule-end") {
			p.ScheduleEnd, _ = flags.GetString("schedule-end")
		}
		if flags.Changed("notify") {
			p.NotifyDistraction, _ = flags.GetBool("notify")
		}
		if flags.Changed("daily-report") {
			p.DailyReport, _ = flags.GetBool("daily-report")
		}
		if flags.Changed("strict") {
			p.StrictMode, _ = flags.GetBool("strict")
		}
		if flags.Changed("collect-analytics") {
			p.CollectAnalytics, _ = flags.GetBool("collect-analytics")
		}
		if flags.Changed("categories") {
			p.AllowedCategories, _ = flags.GetStringSlice("categories")
		}

		// Reject times the schedule could not run with.
		if _, err := focus.NewSchedule(p.ScheduleStart, p.ScheduleEnd, nil, nil); err != nil {
			return err
		}
		if err := settings.SetPreferences(ctx, p); err != nil {
			return fmt.Errorf("save preferences: %w", err)
		}
		printPreferences(p)
		return nil
	},
}

func init() {
	f := settingsSetCmd.Flags()
	f.String("auto-focus", "", "Auto-focus mode: off or custom (use the schedule window)")
	f.String("schedule-start", "", "Schedule start time (HH:MM)")
	f.String("schedule-end", "", "Schedule end time (HH:MM)")
	f.Bool("notify", true, "Notify when a distracting video is paused")
	f.Bool("daily-report", false, "Show a daily focus report")
	f.Bool("strict", false, "Strict mode")
	f.Bool("collect-analytics", true, "Record focus time and classifications")
	f.StringSlice("categories", nil, "Allowed video categories")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func printPreferences(p store.Preferences) {
	auto := "off"
	if p.ScheduleEnabled() {
		auto = fmt.Sprintf("%s to %s", p.ScheduleStart, p.ScheduleEnd)
	}
	fmt.Printf("Auto-focus:         %s\n", auto)
	fmt.Printf("Schedule window:    %s-%s\n", p.ScheduleStart, p.ScheduleEnd)
	fmt.Printf("Notify:             %v\n", p.NotifyDistraction)
	fmt.Printf("Daily report:       %v\n", p.DailyReport)
	fmt.Printf("Strict mode:        %v\n", p.StrictMode)
	fmt.Printf("Collect analytics:  %v\n", p.CollectAnalytics)
	fmt.Printf("Allowed categories: %s\n", strings.Join(p.AllowedCategories, ", "))
}
