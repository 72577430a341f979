package main

import (
	"encoding/json"

	"github.com/fbkclanna/cargows/internal/discover"
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered sub-projects without writing the manifest",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}

	members, err := ctx.Discover()
	if err != nil {
		return err
	}
	if members == nil {
		members = []discover.Member{}
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(members)
	}

	tbl := ui.NewTable(out, "MEMBER", "MARKER")
	for _, m := range members {
		tbl.Row(m.Path, m.Marker)
	}
	return tbl.Flush()
}
