package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-agenda/internal/config"
	"github.com/oshokin/alarm-agenda/internal/service/server"
	"github.com/oshokin/alarm-agenda/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile path where the agenda is persisted.
	stateFile string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for serving the alarm tools.
	rootCmd = &cobra.Command{
		Use:   "alarm-agenda",
		Short: "Serve alarm agenda tools to an AI agent over MCP stdio.",
		Long: `Starts an MCP server on stdin/stdout exposing alarm agenda tools:
get_time_now, set_alarm, get_alarm, get_alarms and delete_alarm,
plus the generate_alarm_prompt prompt.

Alarms are kept in alarms.json in the working directory unless the
settings file or --state-file says otherwise. The file is created empty
on first start. Logs go to stderr because stdout carries the protocol.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &server.Options{
				ConfigPath: configPath,
				StateFile:  stateFile,
				LogLevel:   logLevel,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the alarm-agenda CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)
	attachInitConfigCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&stateFile, "state-file", "s", "", "path to the agenda store (overrides settings)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn, error")
}
