package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the gatefold ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{"              _        __       _     _ ", "#34d399"},
		{"   __ _  __ _| |_ ___ / _| ___ | | __| |", "#2dd4bf"},
		{"  / _` |/ _` | __/ _ \\ |_ / _ \\| |/ _` |", "#22d3ee"},
		{" | (_| | (_| | ||  __/  _| (_) | | (_| |", "#38bdf8"},
		{"  \\__, |\\__,_|\\__\\___|_|  \\___/|_|\\__,_|", "#60a5fa"},
		{"  |___/                                 ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
