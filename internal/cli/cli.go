package cli

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/depscope/internal/app"
	"github.com/spf13/cobra"
)

// DotEnvPath is the optional file read for environment defaults.
var DotEnvPath = ".env"

// Environment variables that provide flag defaults.
const (
	EnvLogLevel  = "DEPSCOPE_LOG_LEVEL"
	EnvLogFormat = "DEPSCOPE_LOG_FORMAT"
	EnvAddr      = "DEPSCOPE_ADDR"
)

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	if err := loadDotEnv(DotEnvPath); err != nil {
		return nil, false, usageError(err)
	}

	var (
		cfg       *app.Config
		logLevel  string
		logFormat string
		target    string
		raw       bool
		addr      string
		cacheSize int
	)

	build := func(c app.Config) error {
		c.LogLevel = strings.ToLower(logLevel)
		c.LogFormat = strings.ToLower(logFormat)
		validated, err := app.NewConfig(c)
		if err != nil {
			return err
		}
		cfg = validated
		return nil
	}

	root := &cobra.Command{
		Use:   "depscope",
		Short: "depscope - inspect which entities of an application depend on each other.",
		Long: `depscope answers the questions an application debugger's dependency panel asks:
which entities a selected entity reads, and which entities are affected
when it changes.

Inputs are inverse dependency maps (.json, .yaml, .yml) or HCL application
definitions (.hcl). PATH may be a file or a directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			slog.Debug("No command provided, printing usage and exiting.")
			return cmd.Help()
		},
	}
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr(EnvLogLevel, "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	root.PersistentFlags().StringVar(&logFormat, "log-format", envOr(EnvLogFormat, "text"), "Log output format. Options: 'text' or 'json'.")

	inspect := &cobra.Command{
		Use:   "inspect [PATH...]",
		Short: "Print the dependencies of one entity as JSON.",
		RunE: func(_ *cobra.Command, paths []string) error {
			return build(app.Config{
				Command: app.CommandInspect,
				Paths:   paths,
				Target:  target,
				Raw:     raw,
			})
		},
	}
	inspect.Flags().StringVarP(&target, "target", "t", "", "Entity (or, with --raw, node identifier) to inspect.")
	inspect.Flags().BoolVar(&raw, "raw", false, "Compute the closure over raw node identifiers instead of entities.")

	serve := &cobra.Command{
		Use:   "serve [PATH...]",
		Short: "Serve dependency queries over HTTP and socket.io.",
		RunE: func(_ *cobra.Command, paths []string) error {
			return build(app.Config{
				Command:   app.CommandServe,
				Paths:     paths,
				Addr:      addr,
				CacheSize: cacheSize,
			})
		},
	}
	serve.Flags().StringVar(&addr, "addr", envOr(EnvAddr, ":8080"), "Address the server listens on.")
	serve.Flags().IntVar(&cacheSize, "cache-size", app.DefaultCacheSize, "Number of query results kept in the LRU cache.")

	root.AddCommand(inspect, serve)

	if err := root.Execute(); err != nil {
		return nil, false, usageError(err)
	}
	if cfg == nil {
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "command", cfg.Command, "paths", cfg.Paths)
	return cfg, false, nil
}

// loadDotEnv reads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
