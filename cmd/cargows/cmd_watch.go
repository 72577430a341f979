package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fbkclanna/cargows/internal/watch"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the workspace manifest whenever sub-projects change",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	cmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before regenerating")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	debounce, _ := cmd.Flags().GetDuration("debounce")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}

	res, err := ctx.Generate()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Wrote %s (%d members)\n", res.ManifestPath, len(res.Members))

	w, err := watch.New(watch.Config{
		Root:     ctx.SourceRoot,
		Marker:   ctx.Config.Marker,
		Debounce: debounce,
		Exclude:  ctx.Config.Exclude,
		Ignore:   []string{ctx.ManifestPath},
		OnChange: func() error {
			res, err := ctx.Generate()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "Wrote %s (%d members)\n", res.ManifestPath, len(res.Members))
			return nil
		},
	})
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Run(sigCtx)
}
