package main

import (
	"github.com/fbkclanna/cargows/internal/logger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cargows",
		Short: "Regenerate a Cargo workspace manifest from the sub-projects on disk",
		Long: `cargows scans the source root (src by default) for Cargo.toml files and
rewrites the workspace manifest (Cargo.toml by default) so that its members list
matches the sub-projects that exist. Running it without a subcommand is the same
as "cargows generate".`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logger.New(logger.Config{Level: level, Out: cmd.ErrOrStderr()})
		},
		RunE: runGenerate,
	}

	cmd.PersistentFlags().String("root", ".", "Project directory holding the manifest and cargows.yaml")
	cmd.PersistentFlags().String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	addGenerateFlags(cmd)

	cmd.AddCommand(
		newGenerateCmd(),
		newCheckCmd(),
		newListCmd(),
		newWatchCmd(),
		newDoctorCmd(),
	)

	return cmd
}
