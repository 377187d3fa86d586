package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/astfixture"
	"github.com/mna/zklint/cfg"
	"github.com/mna/zklint/config"
)

// Build runs cfg.BuildAll over the astfixture archive. If any definition
// fails to lower, it prints each failure to stderr and returns an error
// without printing the others; otherwise it prints, per definition, its block
// and declaration counts, its reports, and each block's immediate dominator
// and IR statements. With -ast, it first prints each definition's input AST.
func (c *Cmd) Build(ctx context.Context, stdio mainer.Stdio, args []string) error {
	a := astfixture.Archive()

	if c.PrintAST {
		p := &ast.Printer{Output: stdio.Stdout}
		for name, def := range a.Templates() {
			fmt.Fprintf(stdio.Stdout, "-- template %s --\n", name)
			if err := p.Print(def.Body); err != nil {
				return err
			}
		}
		for name, def := range a.Functions() {
			fmt.Fprintf(stdio.Stdout, "-- function %s --\n", name)
			if err := p.Print(def.Body); err != nil {
				return err
			}
		}
	}

	cfgs, reports, failures := cfg.BuildAll(a, config.DefaultCurve)

	for name, failure := range failures {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", name, failure)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d definition(s) failed to build", len(failures))
	}

	for name, g := range cfgs {
		fmt.Fprintf(stdio.Stdout, "%s: %d block(s), %d declaration(s)\n", name, len(g.Blocks), g.Decls.Len())
		for _, r := range reports[name].All() {
			fmt.Fprintf(stdio.Stdout, "  %s\n", r)
		}
		for _, b := range g.Blocks {
			fmt.Fprintf(stdio.Stdout, "  block %d (idom=%d):\n", b.Index, g.IDom(b.Index))
			for _, s := range b.Stmts {
				fmt.Fprintf(stdio.Stdout, "    %s\n", s)
			}
		}
	}
	return nil
}
