package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/blocklist"
	"github.com/abhisek/focusflow/internal/store"
)

var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Show what focus mode would do with a request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		rt, _ := cmd.Flags().GetString("type")
		force, _ := cmd.Flags().GetBool("focus")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		settings := e.store.SettingsRepo()
		sites, err := loadBlocklist(ctx, settings, e)
		if err != nil {
			return err
		}
		on, err := settings.FocusMode(ctx)
		if err != nil {
			return fmt.Errorf("read focus mode: %w", err)
		}

		action := sites.Check(args[0], blocklist.ParseResourceType(rt), on || force)
		switch action.Kind {
		case blocklist.Allow:
			fmt.Printf("%s  %s\n", eduColor.Sprint("ALLOW"), args[0])
		case blocklist.Redirect:
			fmt.Printf("%s  %s -> %s\n", distColor.Sprint("REDIRECT"), args[0], action.RedirectURL)
		case blocklist.Cancel:
			fmt.Printf("%s  %s (blocked site %s)\n", distColor.Sprint("CANCEL"), args[0], action.Site)
		}
		if !on && !force {
			fmt.Println(dimColor.Sprint("Focus mode is off; nothing is blocked."))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().String("type", "main_frame", "Resource type: main_frame, sub_frame, xmlhttprequest, other")
	checkCmd.Flags().Bool("focus", false, "Check as if focus mode were on")
}

// loadBlocklist reads the stored sites, logging entries that no longer
// normalize.
func loadBlocklist(ctx context.Context, settings store.SettingsRepo, e *env) (blocklist.List, error) {
	stored, err := settings.BlockedSites(ctx)
	if err != nil {
		return blocklist.List{}, fmt.Errorf("read blocked sites: %w", err)
	}
	list, rejected := blocklist.New(stored)
	for _, r := range rejected {
		e.logger.Sugar().Warnf("ignoring invalid blocked site %q", r)
	}
	return list, nil
}
