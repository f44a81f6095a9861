package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizclient/internal/api"
	"github.com/abhisek/quizclient/internal/app"
	"github.com/abhisek/quizclient/internal/config"
	"github.com/abhisek/quizclient/internal/export"
	"github.com/abhisek/quizclient/internal/logging"
	"github.com/abhisek/quizclient/internal/session"
)

// loadConfig resolves configuration with flags taking the highest priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(config.LoadOptions{ConfigPath: configPath, EnvFile: envFile})
	if err != nil {
		return cfg, err
	}

	if v, _ := cmd.Flags().GetString("server"); v != "" {
		cfg.ServerURL = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("export"); v != "" {
		cfg.ExportPath = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// newLogger opens the configured log. fallback receives logs when no log
// file is set; nil discards them.
func newLogger(cfg config.Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	return logging.New(logging.Options{
		File:     cfg.LogFile,
		Fallback: fallback,
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
	})
}

// newController wires the HTTP client, the export hook and the logger into
// a quiz page controller.
func newController(cfg config.Config, logger *slog.Logger) *session.Controller {
	client := api.New(api.Config{
		QuizURL:      cfg.QuizURL(),
		GradeURL:     cfg.GradeURL(),
		Timeout:      cfg.Timeout,
		ValidateQuiz: cfg.ValidateQuiz,
	}, api.WithLogger(logger))

	opts := []session.Option{
		session.WithViewOptions(cfg.ViewOptions()),
		session.WithLogger(logger),
	}
	if cfg.ExportPath != "" {
		exporter := export.New(cfg.ExportPath)
		opts = append(opts, session.WithGradeHook(exporter.Export))
	}
	return session.New(client, opts...)
}

// runApp loads configuration and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The full-screen UI owns the terminal, so logs only go to a file.
	logger, closer, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("starting", "server_url", cfg.ServerURL, "version", version)
	return app.Run(app.Options{Controller: newController(cfg, logger)})
}
