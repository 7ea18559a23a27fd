package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gardar/scanstamp/pkg/config"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Init writes the default settings to the configuration file, by default
in the XDG config directory (~/.config/scanstamp/scanstamp.yml). Use
--config to choose another location. Running it again resets the
settings to their defaults when --force is given.`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration file")
	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if path == "" {
		path = config.DefaultPath()
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
		}
	}
	if err := config.Save(path, config.Default()); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", path)
	return nil
}
