// Package term decides whether output gets ANSI colors and paints text in
// the few styles gsjoin uses: one per log level plus the banner.
//
// The decision is process-wide. [Configure] makes it once during startup;
// after that [Paint] returns text unchanged when colors are off.
package term

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/gsjoin/internal/config"
)

// Style is a color role.
type Style int

const (
	StyleInfo Style = iota
	StyleSuccess
	StyleWarn
	StyleError
	StyleDebug
	StyleBanner
)

const reset = "\033[0m"

var codes = map[Style]string{
	StyleInfo:    "\033[1;94m", // bright blue
	StyleSuccess: "\033[1;92m", // bright green
	StyleWarn:    "\033[1;93m", // bright yellow
	StyleError:   "\033[1;91m", // bright red
	StyleDebug:   "\033[1;96m", // bright cyan
	StyleBanner:  "\033[1;95m", // bright magenta
}

var enabled bool

// Configure turns colors on or off for mode. In auto mode colors are on
// only when out is a terminal, NO_COLOR is unset and TERM is not "dumb".
func Configure(mode config.ColorMode, out io.Writer) {
	switch mode {
	case config.ColorAlways:
		enabled = true
	case config.ColorNever:
		enabled = false
	default:
		f, _ := out.(*os.File)
		enabled = IsTerminal(f) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return enabled }

// Paint wraps text in the style's color and a reset, or returns it as is
// when colors are off.
func Paint(s Style, text string) string {
	if !enabled {
		return text
	}
	return codes[s] + text + reset
}

// IsTerminal reports whether f is attached to a TTY, including Cygwin/MSYS
// pseudo-terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
