package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/fbkclanna/cargows/internal/fsutil"
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fail if the workspace manifest does not match the sub-projects on disk",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}

	st, err := ctx.Check()
	var fsErr *fsutil.FileSystemError
	if errors.As(err, &fsErr) && fsErr.Path == ctx.ManifestPath && errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("manifest %s does not exist (run cargows generate)", ctx.ManifestPath)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if st.UpToDate {
		_, _ = fmt.Fprintf(out, "%s is up to date\n", ctx.ManifestPath)
		return nil
	}

	if st.Empty() {
		_, _ = fmt.Fprintf(out, "%s lists the right members but its order or layout differs\n", ctx.ManifestPath)
	} else {
		ui.Drift(out, st.Added, st.Removed)
	}
	return fmt.Errorf("manifest %s is out of date (run cargows generate)", ctx.ManifestPath)
}
