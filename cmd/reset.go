package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset focus-time statistics",
	Long:  "Reset zeroes today's and this week's focus time. With --all, preferences\nand the blocklist are restored to their defaults as well.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		all, _ := cmd.Flags().GetBool("all")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.store.AnalyticsRepo().Reset(ctx); err != nil {
			return fmt.Errorf("reset analytics: %w", err)
		}
		if all {
			settings := e.store.SettingsRepo()
			if err := settings.SetPreferences(ctx, store.DefaultPreferences()); err != nil {
				return fmt.Errorf("reset preferences: %w", err)
			}
			if err := settings.SetBlockedSites(ctx, e.cfg.BlockedSites); err != nil {
				return fmt.Errorf("reset blocked sites: %w", err)
			}
		}
		fmt.Println("Statistics reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also restore default preferences and blocklist")
}
