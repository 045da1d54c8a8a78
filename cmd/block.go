package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/blocklist"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage blocked sites",
}

var blockAddCmd = &cobra.Command{
	Use:   "add <site>...",
	Short: "Block one or more sites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		settings := e.store.SettingsRepo()
		list, err := loadBlocklist(ctx, settings, e)
		if err != nil {
			return err
		}
		for _, site := range args {
			if list, err = list.Add(site); err != nil {
				return err
			}
		}
		if err := settings.SetBlockedSites(ctx, list.Sites()); err != nil {
			return fmt.Errorf("save blocked sites: %w", err)
		}
		fmt.Printf("Blocking %d sites.\n", list.Len())
		return nil
	},
}

var blockRemoveCmd = &cobra.Command{
	Use:     "remove <site>...",
	Aliases: []string{"rm"},
	Short:   "Unblock one or more sites",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		settings := e.store.SettingsRepo()
		list, err := loadBlocklist(ctx, settings, e)
		if err != nil {
			return err
		}
		for _, site := range args {
			if !list.Contains(site) {
				fmt.Printf("%s is not blocked\n", site)
				continue
			}
			list = list.Remove(site)
		}
		if err := settings.SetBlockedSites(ctx, list.Sites()); err != nil {
			return fmt.Errorf("save blocked sites: %w", err)
		}
		fmt.Printf("Blocking %d sites.\n", list.Len())
		return nil
	},
}

var blockListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blocked sites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		showPatterns, _ := cmd.Flags().GetBool("patterns")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		list, err := loadBlocklist(ctx, e.store.SettingsRepo(), e)
		if err != nil {
			return err
		}
		if list.Len() == 0 {
			fmt.Println("No blocked sites.")
			return nil
		}
		if showPatterns {
			for _, p := range list.Patterns() {
				fmt.Println(p)
			}
			return nil
		}
		for i, s := range list.Sites() {
			fmt.Printf("%2d. %s\n", i+1, s)
		}
		return nil
	},
}

var blockDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Restore the default blocklist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		list, _ := blocklist.New(e.cfg.BlockedSites)
		if err := e.store.SettingsRepo().SetBlockedSites(ctx, list.Sites()); err != nil {
			return fmt.Errorf("save blocked sites: %w", err)
		}
		fmt.Printf("Blocking %d sites.\n", list.Len())
		return nil
	},
}

func init() {
	blockListCmd.Flags().Bool("patterns", false, "Print the URL match patterns instead of the sites")

	blockCmd.AddCommand(blockAddCmd)
	blockCmd.AddCommand(blockRemoveCmd)
	blockCmd.AddCommand(blockListCmd)
	blockCmd.AddCommand(blockDefaultsCmd)
}
