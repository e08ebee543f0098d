package display

import (
	"fmt"
	"io"

	"github.com/backmassage/gsjoin/internal/term"
)

// PrintBanner prints the ASCII art banner; painted in the banner style when colors are on.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Paint(term.StyleBanner, `             _       _
  __ _ ___  (_) ___ (_)_ __
 / _`+"`"+` / __| | |/ _ \| | '_ \
| (_| \__ \ | | (_) | | | | |
 \__, |___/_/ |\___/|_|_| |_|
 |___/    |__/
`))
	fmt.Fprintln(w)
}
