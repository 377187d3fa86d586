// Package astfixture hand-builds small, valid ast.ParamData/ast.BlockStmt
// pairs for exercising the pipeline end to end without a parser, standing in
// for what internal/filetest's golden .nen files do for the teacher: a fixed
// set of known-shape inputs that package tests (and the cmd/zklint demo) can
// build a Cfg from.
package astfixture

import (
	"math/big"

	"github.com/mna/zklint/archive"
	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/fileset"
)

// File is the fileset.FileID every fixture node claims as its source file;
// fixtures have no real backing source text, so a single placeholder id is
// enough.
const File fileset.FileID = 1

func meta() *ast.Meta {
	return ast.NewMeta(File, fileset.Span{})
}

func num(n int64) *ast.NumberExpr {
	return &ast.NumberExpr{M: meta(), Value: big.NewInt(n)}
}

func ref(name string) *ast.VariableExpr {
	return &ast.VariableExpr{M: meta(), Name: name}
}

func infix(op ast.InfixOp, l, r ast.Expr) *ast.InfixOpExpr {
	return &ast.InfixOpExpr{M: meta(), Op: op, Left: l, Right: r}
}

func block(stmts ...ast.Stmt) *ast.BlockStmt {
	return &ast.BlockStmt{M: meta(), Stmts: stmts}
}

func decl(name string, kind ast.VariableKind) *ast.DeclarationStmt {
	return &ast.DeclarationStmt{M: meta(), Name: name, Kind: kind}
}

func assign(name string, op ast.AssignOp, rhs ast.Expr) *ast.SubstitutionStmt {
	return &ast.SubstitutionStmt{M: meta(), Name: name, Op: op, Rhs: rhs}
}

// AbsoluteValue returns the `Abs(x)` function fixture:
//
//	function Abs(x) {
//	    if (x < 0) {
//	        return -x;
//	    }
//	    return x;
//	}
//
// It exercises a conditional with no else branch, a unary operator, and two
// distinct return sites.
func AbsoluteValue() *archive.Definition {
	params := &ast.ParamData{
		Name:   "Abs",
		Kind:   ast.FunctionDef,
		Params: []string{"x"},
		Meta:   meta(),
	}
	body := block(
		&ast.IfThenElseStmt{
			M:    meta(),
			Cond: infix(ast.Lt, ref("x"), num(0)),
			IfCase: block(
				&ast.ReturnStmt{M: meta(), Value: &ast.PrefixOpExpr{M: meta(), Op: ast.Neg, Right: ref("x")}},
			),
		},
		&ast.ReturnStmt{M: meta(), Value: ref("x")},
	)
	return &archive.Definition{Params: params, Body: body}
}

// Counter returns the `Counter(n)` template fixture:
//
//	template Counter(n) {
//	    var i = 0;
//	    signal output out;
//	    while (i < n) {
//	        i = i + 1;
//	    }
//	    out <-- i;
//	}
//
// It exercises a loop header/body/back-edge, a local variable whose value is
// refined then lost across the loop's join point, and a signal declared
// through InitializationBlockStmt and substituted after the loop.
func Counter() *archive.Definition {
	params := &ast.ParamData{
		Name:    "Counter",
		Kind:    ast.TemplateDef,
		Params:  []string{"n"},
		Meta:    meta(),
		Outputs: []ast.SignalDecl{{Name: "out"}},
	}
	body := block(
		&ast.InitializationBlockStmt{
			M:    meta(),
			Kind: ast.VarKind{},
			Initializations: []ast.Stmt{
				decl("i", ast.VarKind{}),
				assign("i", ast.AssignVar, num(0)),
			},
		},
		&ast.InitializationBlockStmt{
			M:    meta(),
			Kind: ast.SignalKind{Direction: ast.SignalOutput},
			Initializations: []ast.Stmt{
				decl("out", ast.SignalKind{Direction: ast.SignalOutput}),
			},
		},
		&ast.WhileStmt{
			M:    meta(),
			Cond: infix(ast.Lt, ref("i"), ref("n")),
			Body: block(
				assign("i", ast.AssignVar, infix(ast.Add, ref("i"), num(1))),
			),
		},
		assign("out", ast.AssignSignal, ref("i")),
	)
	return &archive.Definition{Params: params, Body: body}
}

// Archive returns a StaticArchive containing every fixture definition above,
// ready for cfg.BuildAll.
func Archive() *archive.StaticArchive {
	return &archive.StaticArchive{
		TemplateDefs: map[string]*archive.Definition{"Counter": Counter()},
		FunctionDefs: map[string]*archive.Definition{"Abs": AbsoluteValue()},
	}
}
