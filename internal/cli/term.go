package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/codalotl/diffrefine/internal/render"
)

// useColor resolves a --color setting for output w. "auto" enables color only when w is a terminal and NO_COLOR is unset.
func useColor(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w if it is a terminal, else render.DefaultWidth.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return render.DefaultWidth
}
