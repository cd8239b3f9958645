package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-agenda/internal/config"
)

// errConfigExists is returned when init-config would overwrite a file without --force.
var errConfigExists = errors.New("settings file already exists, use --force to overwrite")

// attachInitConfigCommand attaches an `init-config` subcommand writing default settings.
func attachInitConfigCommand(root *cobra.Command) {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a settings file with default values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("read config flag: %w", err)
			}

			return writeDefaultConfig(cmd, path, force)
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing settings file")
	root.AddCommand(initCmd)
}

// writeDefaultConfig saves config.Default() to path and reports where it went.
func writeDefaultConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", errConfigExists, path)
		}
	}

	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Settings written to %s\n", path)

	return nil
}
