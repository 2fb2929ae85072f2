package hoa

import (
	"fmt"
	"io"

	"github.com/alecthomas/repr"
)

// Dump writes a human-readable rendering of the automaton to w, for
// debugging automata producers.
func Dump(w io.Writer, a *Automaton) {
	fmt.Fprintln(w, repr.String(a, repr.Indent("  "), repr.OmitEmpty(true)))
}
