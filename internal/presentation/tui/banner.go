package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the surveykit banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Using a subtle gradient-like color scheme (Teal/Indigo)
	lines := []struct{ text, color string }{
		{`  ___ _  _ _ ___ _____ _  _ _  _____ _____`, "#2dd4bf"},
		{` / __| || | '_\ V / -_) || | |/ /| |_   _|`, "#38bdf8"},
		{` \__ \\_,_|_|  \_/\___|\_, |_|\_\|_| |_|`, "#818cf8"},
		{` |___/                 |__/`, "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  "+version).Faint())
	fmt.Fprintln(w)
}
