package main

import (
	"fmt"

	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Rewrite the workspace manifest from discovered sub-projects",
		Args:    cobra.NoArgs,
		RunE:    runGenerate,
	}
	addGenerateFlags(cmd)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("verbose", false, "Print each member as it is written")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	verbose, _ := cmd.Flags().GetBool("verbose")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}

	res, err := ctx.Generate()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		p := ui.NewProgress(out, len(res.Members))
		for _, m := range res.Members {
			p.Step(m.Path)
		}
	}
	_, _ = fmt.Fprintf(out, "Wrote %s (%d members)\n", res.ManifestPath, len(res.Members))
	return nil
}
