package game

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PGWriter is the Sink producing PGSolver text: a "parity H;" header
// followed by one line per vertex of the form
//
//	<id> <priority> <owner> <succ1>,<succ2>,... "<label>"
type PGWriter struct {
	w io.Writer
}

func NewPGWriter(w io.Writer) *PGWriter { return &PGWriter{w: w} }

func (p *PGWriter) Header(maxID int) error {
	_, err := fmt.Fprintf(p.w, "parity %d;\n", maxID)
	return err
}

func (p *PGWriter) Vertex(id, priority, owner int, succs []int, label string) error {
	var b strings.Builder
	b.WriteString(strconv.Itoa(id))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(priority))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(owner))
	b.WriteByte(' ')
	for i, s := range succs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s))
	}
	b.WriteString(" \"")
	b.WriteString(label)
	b.WriteString("\"\n")
	_, err := io.WriteString(p.w, b.String())
	return err
}
