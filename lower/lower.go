// Package lower converts rewritten-AST expressions and statements to their
// IR counterparts, resolving every variable reference against an env.Env.
// It is not a standalone pass: the basic-block builder calls Expr and Stmt
// inline as it visits each AST statement, mirroring the original
// implementation's ast::Expr::try_into_ir / ast::Statement::try_into_ir
// being invoked directly from its statement visitor rather than run as a
// separate tree-to-tree translation up front.
package lower

import (
	"errors"
	"fmt"

	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/env"
	"github.com/mna/zklint/ir"
)

// ErrUnknownSymbol is returned when an expression references a name with no
// matching declaration in scope.
var ErrUnknownSymbol = errors.New("lower: unknown symbol")

// Declaration records name's binding in e, without producing any IR
// statement — per the lowering contract, declarations only update the
// environment. s.Name is expected to already be the unique name assigned by
// the uniqueness rewriter.
func Declaration(s *ast.DeclarationStmt, e *env.Env) error {
	dims, err := exprList(s.Dimensions, e)
	if err != nil {
		return err
	}
	original := s.OriginalName
	if original == "" {
		original = s.Name
	}
	return e.Declare(s.Name, &env.Binding{
		Name:       original,
		UniqueName: s.Name,
		Kind:       s.Kind,
		Dimensions: dims,
		IsConstant: s.IsConstant,
		DeclSpan:   s.M.Span,
	})
}

// Expr lowers an AST expression to its IR counterpart, resolving every
// variable reference against e.
func Expr(x ast.Expr, e *env.Env) (ir.Expr, error) {
	switch x := x.(type) {
	case *ast.NumberExpr:
		return &ir.NumberExpr{M: x.M, Value: x.Value}, nil

	case *ast.VariableExpr:
		b, err := e.Lookup(x.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, x.Name)
		}
		accesses, err := accessList(x.Accesses, e)
		if err != nil {
			return nil, err
		}
		return &ir.VariableExpr{M: x.M, Name: b.UniqueName, Kind: b.Kind, Accesses: accesses}, nil

	case *ast.InfixOpExpr:
		left, err := Expr(x.Left, e)
		if err != nil {
			return nil, err
		}
		right, err := Expr(x.Right, e)
		if err != nil {
			return nil, err
		}
		return &ir.InfixOpExpr{M: x.M, Op: x.Op, Left: left, Right: right}, nil

	case *ast.PrefixOpExpr:
		right, err := Expr(x.Right, e)
		if err != nil {
			return nil, err
		}
		return &ir.PrefixOpExpr{M: x.M, Op: x.Op, Right: right}, nil

	case *ast.ParallelOpExpr:
		right, err := Expr(x.Right, e)
		if err != nil {
			return nil, err
		}
		return &ir.ParallelOpExpr{M: x.M, Right: right}, nil

	case *ast.InlineSwitchExpr:
		// Preserved in expression position, not lifted to a block-level
		// conditional: lowering it is just lowering its three operands.
		cond, err := Expr(x.Cond, e)
		if err != nil {
			return nil, err
		}
		ifTrue, err := Expr(x.IfTrue, e)
		if err != nil {
			return nil, err
		}
		ifFalse, err := Expr(x.IfFalse, e)
		if err != nil {
			return nil, err
		}
		return &ir.InlineSwitchExpr{M: x.M, Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse}, nil

	case *ast.CallExpr:
		args, err := exprList(x.Args, e)
		if err != nil {
			return nil, err
		}
		return &ir.CallExpr{M: x.M, Name: x.Name, Args: args}, nil

	case *ast.AnonymousComponentExpr:
		args, err := exprList(x.Args, e)
		if err != nil {
			return nil, err
		}
		return &ir.AnonymousComponentExpr{M: x.M, Name: x.Name, Args: args}, nil

	case *ast.ArrayInLineExpr:
		elems, err := exprList(x.Elements, e)
		if err != nil {
			return nil, err
		}
		return &ir.ArrayInLineExpr{M: x.M, Elements: elems}, nil

	case *ast.TupleExpr:
		elems, err := exprList(x.Elements, e)
		if err != nil {
			return nil, err
		}
		return &ir.TupleExpr{M: x.M, Elements: elems}, nil

	case *ast.UniformArrayExpr:
		v, err := Expr(x.Value, e)
		if err != nil {
			return nil, err
		}
		n, err := Expr(x.Length, e)
		if err != nil {
			return nil, err
		}
		return &ir.UniformArrayExpr{M: x.M, Value: v, Length: n}, nil

	default:
		return nil, fmt.Errorf("lower: unhandled expression type %T", x)
	}
}

func exprList(xs []ast.Expr, e *env.Env) ([]ir.Expr, error) {
	if xs == nil {
		return nil, nil
	}
	out := make([]ir.Expr, len(xs))
	for i, x := range xs {
		lx, err := Expr(x, e)
		if err != nil {
			return nil, err
		}
		out[i] = lx
	}
	return out, nil
}

func accessList(accesses []ast.Access, e *env.Env) ([]ir.Access, error) {
	if accesses == nil {
		return nil, nil
	}
	out := make([]ir.Access, len(accesses))
	for i, a := range accesses {
		if a.Kind != ast.ArrayAccess {
			out[i] = ir.Access{Kind: a.Kind, Signal: a.Signal}
			continue
		}
		idx, err := Expr(a.Index, e)
		if err != nil {
			return nil, err
		}
		out[i] = ir.Access{Kind: ast.ArrayAccess, Index: idx}
	}
	return out, nil
}

// Stmt lowers one of the non-structural AST statements (Return, Assert,
// LogCall, Substitution, MultiSubstitution, ConstraintEquality) to its IR
// counterpart. Block, InitializationBlock, IfThenElse, While, and
// Declaration are structural or environment-only and are handled by the
// basic-block builder directly, never passed here.
func Stmt(s ast.Stmt, e *env.Env) (ir.Stmt, error) {
	switch s := s.(type) {
	case *ast.ReturnStmt:
		var v ir.Expr
		if s.Value != nil {
			lv, err := Expr(s.Value, e)
			if err != nil {
				return nil, err
			}
			v = lv
		}
		return &ir.ReturnStmt{M: s.M, Value: v}, nil

	case *ast.AssertStmt:
		arg, err := Expr(s.Arg, e)
		if err != nil {
			return nil, err
		}
		return &ir.AssertStmt{M: s.M, Arg: arg}, nil

	case *ast.LogCallStmt:
		args, err := exprList(s.Args, e)
		if err != nil {
			return nil, err
		}
		return &ir.LogCallStmt{M: s.M, Args: args}, nil

	case *ast.SubstitutionStmt:
		b, err := e.Lookup(s.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, s.Name)
		}
		accesses, err := accessList(s.Accesses, e)
		if err != nil {
			return nil, err
		}
		rhs, err := Expr(s.Rhs, e)
		if err != nil {
			return nil, err
		}
		return &ir.SubstitutionStmt{
			M: s.M, Name: b.UniqueName, Kind: b.Kind, Accesses: accesses, Op: s.Op, Rhs: rhs,
		}, nil

	case *ast.MultiSubstitutionStmt:
		lhs, err := exprList(s.Lhs, e)
		if err != nil {
			return nil, err
		}
		rhs, err := Expr(s.Rhs, e)
		if err != nil {
			return nil, err
		}
		return &ir.MultiSubstitutionStmt{M: s.M, Lhs: lhs, Op: s.Op, Rhs: rhs}, nil

	case *ast.ConstraintEqualityStmt:
		lhs, err := Expr(s.Lhs, e)
		if err != nil {
			return nil, err
		}
		rhs, err := Expr(s.Rhs, e)
		if err != nil {
			return nil, err
		}
		return &ir.ConstraintEqualityStmt{M: s.M, Lhs: lhs, Rhs: rhs}, nil

	default:
		return nil, fmt.Errorf("lower: unhandled statement type %T", s)
	}
}
