package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/passgen/passgen-go/internal/config"
	"github.com/passgen/passgen-go/internal/server"
)

// NewRootCmd creates the passgen command, which runs the HTTP API.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passgen",
		Short: "Password Generator API",
		Long: `passgen serves an HTTP API that generates random passwords from a
requested length and optional digits and special characters.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			applyFlags(cmd.Flags(), &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			setupLogger(cfg.Env)
			return server.New(cfg).Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("port", "", "port to listen on (overrides PORT)")
	flags.String("env", "", "environment name (overrides ENV)")
	flags.StringSlice("cors-origins", nil, "allowed CORS origins (overrides CORS_ALLOWED_ORIGINS)")
	flags.String("random-source", "", "random source: crypto or math (overrides RANDOM_SOURCE)")
	flags.String("random-seed", "", "seed for the math random source (overrides RANDOM_SEED)")
	flags.Bool("metrics", true, "serve Prometheus metrics on /metrics (overrides METRICS_ENABLED)")
	flags.Duration("shutdown-timeout", 0, "graceful shutdown timeout (overrides SHUTDOWN_TIMEOUT)")

	return cmd
}

// applyFlags copies explicitly set flags over the environment configuration.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetString("port")
	}
	if flags.Changed("env") {
		cfg.Env, _ = flags.GetString("env")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	}
	if flags.Changed("random-source") {
		cfg.RandomSource, _ = flags.GetString("random-source")
	}
	if flags.Changed("random-seed") {
		cfg.RandomSeed, _ = flags.GetString("random-seed")
	}
	if flags.Changed("metrics") {
		cfg.MetricsEnabled, _ = flags.GetBool("metrics")
	}
	if flags.Changed("shutdown-timeout") {
		cfg.ShutdownTimeout, _ = flags.GetDuration("shutdown-timeout")
	}
}

func setupLogger(env string) {
	var h slog.Handler
	if env == "production" {
		h = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(h))
}
