package ast_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/fileset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printMeta() *ast.Meta { return ast.NewMeta(1, fileset.Span{}) }

// Walk visits a node's children depth-first, in source order, which Printer
// renders as increasing indentation: a statement's expression children
// appear one level deeper than the statement itself.
func TestWalkVisitsChildrenInOrder(t *testing.T) {
	stmt := &ast.SubstitutionStmt{
		M:   printMeta(),
		Name: "x",
		Op:  ast.AssignVar,
		Rhs: &ast.NumberExpr{M: printMeta(), Value: big.NewInt(7)},
	}

	var visited []string
	v := ast.VisitorFunc(func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
		if dir == ast.VisitEnter {
			visited = append(visited, n.String())
		}
		return ast.VisitorFunc(func(n ast.Node, dir ast.VisitDirection) ast.Visitor {
			if dir == ast.VisitEnter {
				visited = append(visited, n.String())
			}
			return nil
		})
	})
	ast.Walk(v, stmt)

	require.Len(t, visited, 2)
	assert.Contains(t, visited[0], "x")
	assert.Contains(t, visited[1], "7")
}

func TestPrinterIndentsNestedBlocks(t *testing.T) {
	body := &ast.BlockStmt{
		M: printMeta(),
		Stmts: []ast.Stmt{
			&ast.IfThenElseStmt{
				M:    printMeta(),
				Cond: &ast.VariableExpr{M: printMeta(), Name: "c"},
				IfCase: &ast.BlockStmt{
					M:     printMeta(),
					Stmts: []ast.Stmt{&ast.ReturnStmt{M: printMeta()}},
				},
			},
		},
	}

	var buf bytes.Buffer
	p := &ast.Printer{Output: &buf}
	require.NoError(t, p.Print(body))

	out := buf.String()
	assert.Contains(t, out, "BlockStmt")
	assert.Contains(t, out, "IfThenElseStmt")
	assert.Contains(t, out, "ReturnStmt")

	// the innermost ReturnStmt is indented three levels past the outer block
	// (if, inner block, return), so at least two levels' worth of spaces.
	lines := bytes.Split(buf.Bytes(), []byte("\n"))
	var returnLine string
	for _, l := range lines {
		if bytes.Contains(l, []byte("ReturnStmt")) {
			returnLine = string(l)
		}
	}
	require.NotEmpty(t, returnLine)
	assert.True(t, len(returnLine)-len(bytes.TrimLeft([]byte(returnLine), " ")) >= 4)
}
