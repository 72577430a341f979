package ui

import (
	"fmt"
	"io"
)

// Progress prints one numbered line per processed item.
type Progress struct {
	out   io.Writer
	total int
	n     int
}

// NewProgress creates a progress printer for total items.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Step marks the next item as processed and prints "[n/total] label".
func (p *Progress) Step(label string) {
	p.n++
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", p.n, p.total, label)
}
