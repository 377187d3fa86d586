package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints an AST as an indented tree, one node per line. It is
// a debugging aid only (there is no requirement on its output format).
type Printer struct {
	Output io.Writer
}

// Print walks n and writes an indented description of every node to
// p.Output.
func (p *Printer) Print(n Node) error {
	pp := &printer{w: p.Output}
	Walk(pp, n)
	return pp.err
}

type printer struct {
	w     io.Writer
	depth int
	err   error
}

func (pp *printer) Visit(n Node, dir VisitDirection) Visitor {
	if pp.err != nil {
		return nil
	}
	if dir == VisitExit {
		pp.depth--
		return pp
	}
	_, err := fmt.Fprintf(pp.w, "%s%s %s\n", strings.Repeat("  ", pp.depth), typeName(n), n)
	if err != nil {
		pp.err = err
		return nil
	}
	pp.depth++
	return pp
}

func typeName(n Node) string {
	return fmt.Sprintf("%T", n)
}
