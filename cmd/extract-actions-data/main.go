// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the extract-actions-data command.
// It prints the status of the manually maintained actions data files; PDF
// extraction is not implemented yet.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/extract-actions-data/internal/report"
	"github.com/pdiddy/extract-actions-data/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	cfg    types.ReporterConfig
	logger *zap.Logger

	// configErr holds a config file read failure, logged once the logger exists.
	configErr error

	// loggerFactory builds the logger for a run; tests swap in their own sink.
	loggerFactory = newLogger
)

// rootCmd runs the status report. Flag parsing is disabled so that any
// arguments, including the planned --input and --output, are ignored.
var rootCmd = &cobra.Command{
	Use:   "extract-actions-data",
	Short: "Report on the manually maintained executive actions data",
	Long: `extract-actions-data will extract executive actions data from
"Tracking ExecOs" PDF reports. Until then the data is maintained by hand in
data/actions-pushback.json and data/actions-timeline.json, and this command
reports whether each file is present and how large its JSON content is.

Arguments are accepted and ignored. Configuration comes from environment
variables with the EXTRACT_ACTIONS_ prefix or an extract-actions.yaml file.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = types.ReporterConfig{
			DataDir:  viper.GetString("data_dir"),
			LogLevel: types.LogLevel(viper.GetString("log_level")),
		}

		l, err := loggerFactory(cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l

		if configErr != nil {
			logger.Warn("Could not read config file", zap.Error(configErr))
		} else if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("Using config file", zap.String("path", used))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := cfg.DataDir
		if dataDir == "" {
			d, err := report.DefaultDataDir()
			if err != nil {
				return err
			}
			dataDir = d
		}

		logger.Debug("Reporting on actions data",
			zap.String("version", version),
			zap.String("data_dir", dataDir))
		if len(args) > 0 {
			logger.Debug("Ignoring arguments", zap.Strings("args", args))
		}

		return report.New(cmd.OutOrStdout(), dataDir, logger).Run()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetDefault("data_dir", "")
	viper.SetDefault("log_level", string(types.LogWarn))

	viper.SetEnvPrefix("EXTRACT_ACTIONS")
	viper.AutomaticEnv()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("extract-actions")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "extract-actions"))
		}
	}

	configErr = nil
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			configErr = err
		}
	}
}

// newLogger builds a production zap logger writing JSON to stderr.
func newLogger(level types.LogLevel) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(string(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

// execute runs rootCmd and flushes the logger whether or not the run failed.
// cobra skips post-run hooks when RunE returns an error.
func execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
