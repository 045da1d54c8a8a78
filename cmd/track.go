package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/focusflow/internal/config"
	"github.com/abhisek/focusflow/internal/focus"
	"github.com/abhisek/focusflow/internal/host"
	"github.com/abhisek/focusflow/internal/pipeline"
)

// syncInterval is how often the daemon picks up focus and blocklist
// changes made by other focusflow commands, such as "focusflow focus off"
// or "focusflow block add".
const syncInterval = 5 * time.Second

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Run the focus daemon",
	Long: "Track accounts focus time, runs the auto-focus schedule and reloads the\n" +
		"configuration when it changes. With --host it also answers line-delimited\n" +
		"JSON requests from the browser side on stdin/stdout.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serveHost, _ := cmd.Flags().GetBool("host")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return runTracker(ctx, stop, e, serveHost)
	},
}

func init() {
	trackCmd.Flags().Bool("host", false, "Serve the browser protocol on stdin/stdout")
}

func runTracker(ctx context.Context, stop context.CancelFunc, e *env, serveHost bool) error {
	settings := e.store.SettingsRepo()
	events := e.store.EventRepo()

	prefs, err := settings.Preferences(ctx)
	if err != nil {
		return fmt.Errorf("read preferences: %w", err)
	}
	on, err := settings.FocusMode(ctx)
	if err != nil {
		return fmt.Errorf("read focus mode: %w", err)
	}
	sites, err := loadBlocklist(ctx, settings, e)
	if err != nil {
		return err
	}

	var popts []pipeline.Option
	if prefs.CollectAnalytics {
		popts = append(popts, pipeline.WithEventRepo(events))
	}
	p, err := buildPipeline(e.cfg, e.logger, popts...)
	if err != nil {
		return err
	}

	c := focus.NewController(sites,
		focus.WithAnalyticsStore(e.store.AnalyticsRepo()),
		focus.WithSessionRecorder(events),
		focus.WithModeStore(settings),
		focus.WithDecider(p),
		focus.WithLogger(e.logger.Named("focus")),
		focus.WithIntervals(e.cfg.Focus.TickInterval, e.cfg.Focus.SaveInterval),
	)
	c.Restore(on)

	// Everything that can fail is built before the first goroutine starts.
	var sched *focus.Schedule
	if prefs.ScheduleEnabled() {
		loc, err := e.cfg.Location()
		if err != nil {
			return err
		}
		sched, err = focus.NewSchedule(prefs.ScheduleStart, prefs.ScheduleEnd, loc, e.logger.Named("schedule"))
		if err != nil {
			return fmt.Errorf("auto-focus schedule: %w", err)
		}
	}
	storeSync := focus.NewStoreSync(settings, c, e.logger.Named("sync"))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Run(ctx)
	})
	if sched != nil {
		g.Go(func() error {
			return sched.Run(ctx, c)
		})
	}
	g.Go(func() error {
		return storeSync.Run(ctx, syncInterval)
	})

	watched := []string{e.configPath}
	if e.cfg.Classifier.Patterns != "" {
		watched = append(watched, e.cfg.Classifier.Patterns)
	}
	g.Go(func() error {
		return config.Watch(ctx, e.logger.Named("watch"), func(path string) {
			reloadEngine(e, p)
		}, watched...)
	})

	if serveHost {
		g.Go(func() error {
			err := host.Serve(ctx, os.Stdin, os.Stdout, c, e.logger.Named("host"))
			// The browser closed the pipe; shut the daemon down.
			stop()
			return err
		})
	}

	e.logger.Info("focus daemon running",
		zap.Bool("focus_on", on),
		zap.Int("sites", sites.Len()),
		zap.Bool("schedule", prefs.ScheduleEnabled()),
		zap.Bool("host", serveHost))

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	e.logger.Info("focus daemon stopped")
	return nil
}

// reloadEngine rebuilds the classifier from the current config and pattern
// file. The running engine stays in place when the new one fails to build.
func reloadEngine(e *env, p *pipeline.Pipeline) {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		e.logger.Warn("config reload failed", zap.Error(err))
		return
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		e.logger.Warn("pattern reload failed", zap.Error(err))
		return
	}
	p.SetEngine(engine)
	e.logger.Info("classifier reloaded", zap.String("patterns", cfg.Classifier.Patterns))
}
