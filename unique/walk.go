package unique

import "github.com/mna/zklint/ast"

func (rw *rewriter) rewriteStmt(s ast.Stmt) ast.Stmt {
	switch s := s.(type) {
	case *ast.BlockStmt:
		rw.enterScope()
		stmts := make([]ast.Stmt, len(s.Stmts))
		for i, inner := range s.Stmts {
			stmts[i] = rw.rewriteStmt(inner)
		}
		rw.leaveScope()
		return &ast.BlockStmt{M: s.M, Stmts: stmts}

	case *ast.InitializationBlockStmt:
		rw.enterScope()
		inits := make([]ast.Stmt, len(s.Initializations))
		for i, inner := range s.Initializations {
			inits[i] = rw.rewriteStmt(inner)
		}
		rw.leaveScope()
		return &ast.InitializationBlockStmt{M: s.M, Kind: s.Kind, Initializations: inits}

	case *ast.IfThenElseStmt:
		cond := rw.rewriteExpr(s.Cond)
		ifCase := rw.rewriteStmt(s.IfCase)
		var elseCase ast.Stmt
		if s.ElseCase != nil {
			elseCase = rw.rewriteStmt(s.ElseCase)
		}
		return &ast.IfThenElseStmt{M: s.M, Cond: cond, IfCase: ifCase, ElseCase: elseCase}

	case *ast.WhileStmt:
		cond := rw.rewriteExpr(s.Cond)
		body := rw.rewriteStmt(s.Body)
		return &ast.WhileStmt{M: s.M, Cond: cond, Body: body}

	case *ast.ReturnStmt:
		var v ast.Expr
		if s.Value != nil {
			v = rw.rewriteExpr(s.Value)
		}
		return &ast.ReturnStmt{M: s.M, Value: v}

	case *ast.AssertStmt:
		return &ast.AssertStmt{M: s.M, Arg: rw.rewriteExpr(s.Arg)}

	case *ast.LogCallStmt:
		return &ast.LogCallStmt{M: s.M, Args: rw.rewriteExprList(s.Args)}

	case *ast.DeclarationStmt:
		dims := rw.rewriteExprList(s.Dimensions)
		name := s.Name
		switch s.Kind.(type) {
		case ast.VarKind:
			name = rw.declareVar(s.Name, s.M.Span)
		case ast.SignalKind:
			rw.declareOther(s.Name, true)
		default:
			rw.declareOther(s.Name, false)
		}
		return &ast.DeclarationStmt{
			M: s.M, Name: name, OriginalName: s.Name, Kind: s.Kind, Dimensions: dims, IsConstant: s.IsConstant,
		}

	case *ast.SubstitutionStmt:
		name := rw.resolveUse(s.Name)
		accesses := rw.rewriteAccesses(s.Accesses)
		rhs := rw.rewriteExpr(s.Rhs)
		return &ast.SubstitutionStmt{M: s.M, Name: name, Accesses: accesses, Op: s.Op, Rhs: rhs}

	case *ast.MultiSubstitutionStmt:
		lhs := rw.rewriteExprList(s.Lhs)
		rhs := rw.rewriteExpr(s.Rhs)
		return &ast.MultiSubstitutionStmt{M: s.M, Lhs: lhs, Op: s.Op, Rhs: rhs}

	case *ast.ConstraintEqualityStmt:
		return &ast.ConstraintEqualityStmt{
			M: s.M, Lhs: rw.rewriteExpr(s.Lhs), Rhs: rw.rewriteExpr(s.Rhs),
		}

	default:
		panic("unique: unhandled statement type")
	}
}

func (rw *rewriter) rewriteExpr(e ast.Expr) ast.Expr {
	switch e := e.(type) {
	case *ast.NumberExpr:
		return e

	case *ast.VariableExpr:
		return &ast.VariableExpr{
			M: e.M, Name: rw.resolveUse(e.Name), Accesses: rw.rewriteAccesses(e.Accesses),
		}

	case *ast.InfixOpExpr:
		return &ast.InfixOpExpr{M: e.M, Op: e.Op, Left: rw.rewriteExpr(e.Left), Right: rw.rewriteExpr(e.Right)}

	case *ast.PrefixOpExpr:
		return &ast.PrefixOpExpr{M: e.M, Op: e.Op, Right: rw.rewriteExpr(e.Right)}

	case *ast.ParallelOpExpr:
		return &ast.ParallelOpExpr{M: e.M, Right: rw.rewriteExpr(e.Right)}

	case *ast.InlineSwitchExpr:
		return &ast.InlineSwitchExpr{
			M: e.M, Cond: rw.rewriteExpr(e.Cond), IfTrue: rw.rewriteExpr(e.IfTrue), IfFalse: rw.rewriteExpr(e.IfFalse),
		}

	case *ast.CallExpr:
		return &ast.CallExpr{M: e.M, Name: e.Name, Args: rw.rewriteExprList(e.Args)}

	case *ast.AnonymousComponentExpr:
		return &ast.AnonymousComponentExpr{M: e.M, Name: e.Name, Args: rw.rewriteExprList(e.Args)}

	case *ast.ArrayInLineExpr:
		return &ast.ArrayInLineExpr{M: e.M, Elements: rw.rewriteExprList(e.Elements)}

	case *ast.TupleExpr:
		return &ast.TupleExpr{M: e.M, Elements: rw.rewriteExprList(e.Elements)}

	case *ast.UniformArrayExpr:
		return &ast.UniformArrayExpr{M: e.M, Value: rw.rewriteExpr(e.Value), Length: rw.rewriteExpr(e.Length)}

	default:
		panic("unique: unhandled expression type")
	}
}

func (rw *rewriter) rewriteExprList(exprs []ast.Expr) []ast.Expr {
	if exprs == nil {
		return nil
	}
	out := make([]ast.Expr, len(exprs))
	for i, e := range exprs {
		out[i] = rw.rewriteExpr(e)
	}
	return out
}

func (rw *rewriter) rewriteAccesses(accesses []ast.Access) []ast.Access {
	if accesses == nil {
		return nil
	}
	out := make([]ast.Access, len(accesses))
	for i, a := range accesses {
		if a.Kind == ast.ArrayAccess {
			out[i] = ast.Access{Kind: ast.ArrayAccess, Index: rw.rewriteExpr(a.Index)}
		} else {
			out[i] = a
		}
	}
	return out
}
