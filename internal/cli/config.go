package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tada-cloud/internal/config"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect tada configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show merged configuration",
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				shown := *a.cfg
				if shown.Server.Token != "" {
					shown.Server.Token = mask(shown.Server.Token)
				}
				data, err := yaml.Marshal(&shown)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "# Merged configuration (defaults + files + TADA_* env)")
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show configuration file paths",
			Args:  noArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out := cmd.OutOrStdout()
				if a.configPath != "" {
					fmt.Fprintf(out, "explicit: %s\n", a.configPath)
				}
				fmt.Fprintf(out, "global:   %s\n", config.GlobalPath())
				fmt.Fprintf(out, "project:  %s\n", config.ProjectPath())
				return nil
			},
		},
	)
	return cmd
}
