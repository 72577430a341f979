package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Drift prints members that a regeneration would add ("+ path") and remove
// ("- path"). Colours are used only when out supports them.
func Drift(out io.Writer, added, removed []string) {
	r := lipgloss.NewRenderer(out)
	add := r.NewStyle().Foreground(lipgloss.Color("2"))
	del := r.NewStyle().Foreground(lipgloss.Color("1"))

	for _, m := range added {
		_, _ = fmt.Fprintln(out, add.Render("+ "+m))
	}
	for _, m := range removed {
		_, _ = fmt.Fprintln(out, del.Render("- "+m))
	}
}
