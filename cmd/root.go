package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/focusflow/internal/classifier"
	"github.com/abhisek/focusflow/internal/config"
	"github.com/abhisek/focusflow/internal/logging"
	"github.com/abhisek/focusflow/internal/patterns"
	"github.com/abhisek/focusflow/internal/pipeline"
	"github.com/abhisek/focusflow/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "focusflow",
	Short: "Keep focus: block distracting sites and filter videos",
	Long: "FocusFlow blocks distracting sites while focus mode is on and classifies\n" +
		"videos as educational or distracting from their title, description and channel.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPopup(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FOCUSFLOW_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/focusflow/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(popupCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfigPath returns the --config flag, else the default location.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the config file and applies the --log-level flag.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, "", fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg, path, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file (which already carries FOCUSFLOW_DB), then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Database.Path != "" {
		return cfg.Database.Path, store.EnsureDir(cfg.Database.Path)
	}
	return store.DefaultDBPath()
}

// env is what most commands need: config, logger and an open store.
type env struct {
	cfg        *config.Config
	configPath string
	logger     *zap.Logger
	store      *store.Store
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	_ = e.logger.Sync()
}

// setup loads the config, builds the logger and opens the store.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, JSON: cfg.Logging.JSON})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithDefaultSites(cfg.BlockedSites))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))
	return &env{cfg: cfg, configPath: path, logger: logger, store: st}, nil
}

// buildEngine creates a classifier over the compiled-in catalogs extended by
// the configured pattern override file.
func buildEngine(cfg *config.Config) (*classifier.Engine, error) {
	if cfg.Classifier.Patterns == "" {
		return classifier.Default(), nil
	}
	o, err := patterns.LoadOverrides(cfg.Classifier.Patterns)
	if err != nil {
		return nil, err
	}
	edu, dist, err := o.Apply(patterns.Educational(), patterns.Distracting())
	if err != nil {
		return nil, err
	}
	return classifier.New(edu, dist), nil
}

// buildPipeline wires the engine, threshold and logger into a pipeline.
func buildPipeline(cfg *config.Config, logger *zap.Logger, opts ...pipeline.Option) (*pipeline.Pipeline, error) {
	engine, err := buildEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}
	base := []pipeline.Option{
		pipeline.WithThreshold(cfg.Classifier.Threshold),
		pipeline.WithLogger(logger),
	}
	return pipeline.New(engine, append(base, opts...)...), nil
}
