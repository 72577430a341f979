package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/fsutil"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the project setup for common issues",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	out := cmd.OutOrStdout()
	ok := true

	_, _ = fmt.Fprint(out, "Checking config... ")
	ctx, err := workspace.Load(root)
	if err != nil {
		_, _ = fmt.Fprintf(out, "INVALID\n  %v\n", err)
		return fmt.Errorf("doctor checks failed")
	}
	if ctx.ConfigPath == "" {
		_, _ = fmt.Fprintln(out, "none (using defaults)")
	} else {
		_, _ = fmt.Fprintf(out, "%s\n", ctx.ConfigPath)
	}

	_, _ = fmt.Fprint(out, "Checking source root... ")
	members, err := ctx.Discover()
	if err != nil {
		_, _ = fmt.Fprintf(out, "FAILED\n  %v\n", err)
		ok = false
	} else {
		_, _ = fmt.Fprintf(out, "%s (%d sub-projects)\n", ctx.SourceRoot, len(members))
	}

	_, _ = fmt.Fprint(out, "Checking manifest directory... ")
	if err := checkWritable(filepath.Dir(ctx.ManifestPath)); err != nil {
		_, _ = fmt.Fprintf(out, "NOT WRITABLE\n  %v\n", err)
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, "OK")
	}

	if ok {
		_, _ = fmt.Fprint(out, "Checking manifest... ")
		st, err := ctx.Check()
		switch {
		case err != nil:
			_, _ = fmt.Fprintf(out, "UNREADABLE\n  %v\n", err)
		case st.UpToDate:
			_, _ = fmt.Fprintln(out, "up to date")
		default:
			_, _ = fmt.Fprintf(out, "stale (+%d -%d)\n", len(st.Added), len(st.Removed))
		}
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

// checkWritable creates and removes a temp file in dir.
func checkWritable(dir string) error {
	if err := fsutil.RequireDir(dir); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".cargows-doctor-*")
	if err != nil {
		return fsutil.Wrap("create", dir, err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
