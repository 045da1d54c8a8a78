package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/app"
	"github.com/abhisek/focusflow/internal/focus"
	"github.com/abhisek/focusflow/internal/pipeline"
)

var popupCmd = &cobra.Command{
	Use:   "popup",
	Short: "Open the interactive popup (default)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPopup(cmd)
	},
}

// runPopup opens the TUI. Focus time is left to the tracker, so the
// controller here never writes analytics.
func runPopup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	settings := e.store.SettingsRepo()
	prefs, err := settings.Preferences(ctx)
	if err != nil {
		return fmt.Errorf("read preferences: %w", err)
	}
	var popts []pipeline.Option
	if prefs.CollectAnalytics {
		popts = append(popts, pipeline.WithEventRepo(e.store.EventRepo()))
	}
	p, err := buildPipeline(e.cfg, e.logger, popts...)
	if err != nil {
		return err
	}
	sites, err := loadBlocklist(ctx, settings, e)
	if err != nil {
		return err
	}

	c := focus.NewController(sites,
		focus.WithModeStore(settings),
		focus.WithSessionRecorder(e.store.EventRepo()),
		focus.WithLogger(e.logger.Named("popup")),
	)

	return app.Run(app.Options{
		Settings:   settings,
		Analytics:  e.store.AnalyticsRepo(),
		Controller: c,
		Pipeline:   p,
	})
}
