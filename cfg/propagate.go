package cfg

import (
	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/ir"
	"github.com/mna/zklint/value"
)

// Propagate runs the value-knowledge propagation pass over c, as spec'd for
// the value package (see value.BindingEnv's doc comment for the two-mechanism
// split this implements). It walks the CFG to a fixed point — required
// because a while-loop header has a back edge, so a single reverse-postorder
// pass does not see every reaching definition — tracking, per block, the
// binding environment merged in from all predecessors. Only once the
// environments have converged does it make a second, committing pass that
// actually calls Knowledge.Set on IR nodes, so that a value later found to
// disagree with an earlier guess (possible mid-fixed-point, impossible once
// converged) never trips Knowledge's monotonicity check.
//
// Three rules decide what gets Set:
//   - a NumberExpr's Knowledge is always set to its own FieldElement value.
//   - an InfixOpExpr with a boolean operator (==, !=, <, <=, >, >=, &&, ||)
//     has its Knowledge set to the Boolean result when both operands are
//     currently known, either as literals or through a variable binding.
//   - a VariableExpr's own Knowledge is set to whatever value the binding
//     environment currently holds for it, letting a later analysis read a
//     used variable's constant value directly off the use site without
//     re-deriving it.
func Propagate(c *Cfg) error {
	n := len(c.Blocks)
	if n == 0 {
		return ErrEmptyCfg
	}

	out := make([]*value.BindingEnv, n)
	for i := range out {
		out[i] = value.NewBindingEnv()
	}

	order := c.rpo
	if len(order) == 0 {
		order = make([]int, n)
		for i := range order {
			order[i] = i
		}
	}

	for iter := 0; iter < n+1; iter++ {
		changed := false
		for _, i := range order {
			in := mergeIn(c, out, i)
			newOut := walkBlock(in, c.Blocks[i], false)
			if !newOut.Equal(out[i]) {
				out[i] = newOut
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for _, i := range order {
		in := mergeIn(c, out, i)
		walkBlock(in, c.Blocks[i], true)
	}
	return nil
}

// mergeIn builds block i's entry environment by merging the out-environments
// of all of its currently-known predecessors; a block with no predecessors
// (only the entry block, normally) starts from an empty environment.
func mergeIn(c *Cfg, out []*value.BindingEnv, i int) *value.BindingEnv {
	preds := c.Blocks[i].Predecessors
	var in *value.BindingEnv
	first := true
	iterateSet(preds, func(p uint) {
		if first {
			in = out[p].Clone()
			first = false
			return
		}
		in.MergeFrom(out[p])
	})
	if in == nil {
		in = value.NewBindingEnv()
	}
	return in
}

// walkBlock runs env forward through block's statements, returning the
// resulting environment. When commit is true it also calls Knowledge.Set on
// every IR node the rules above cover; when false (during fixed-point
// iteration) it only updates the environment, since intermediate guesses can
// still change and must not touch Knowledge.
func walkBlock(env *value.BindingEnv, block *BasicBlock, commit bool) *value.BindingEnv {
	env = env.Clone()
	for _, s := range block.Stmts {
		walkStmt(s, env, commit)
	}
	return env
}

func walkStmt(s ir.Stmt, env *value.BindingEnv, commit bool) {
	switch s := s.(type) {
	case *ir.IfThenElseStmt:
		walkExpr(s.Cond, env, commit)
	case *ir.ReturnStmt:
		if s.Value != nil {
			walkExpr(s.Value, env, commit)
		}
	case *ir.AssertStmt:
		walkExpr(s.Arg, env, commit)
	case *ir.LogCallStmt:
		for _, a := range s.Args {
			walkExpr(a, env, commit)
		}
	case *ir.SubstitutionStmt:
		for _, a := range s.Accesses {
			if a.Kind == ir.ArrayAccess {
				walkExpr(a.Index, env, commit)
			}
		}
		r, ok := walkExpr(s.Rhs, env, commit)
		// An indexed substitution (into an array element or component signal)
		// assigns one element, not the whole name, so the prior known value (if
		// any) for the bare name can no longer be trusted either way.
		if ok && len(s.Accesses) == 0 {
			env.Set(s.Name, r)
		} else {
			env.Clear(s.Name)
		}
	case *ir.MultiSubstitutionStmt:
		walkExpr(s.Rhs, env, commit)
		for _, lhs := range s.Lhs {
			if v, ok := lhs.(*ir.VariableExpr); ok {
				env.Clear(v.Name)
			}
		}
	case *ir.ConstraintEqualityStmt:
		walkExpr(s.Lhs, env, commit)
		walkExpr(s.Rhs, env, commit)
	}
}

// walkExpr recurses through x, returning the Reduction it currently reduces
// to (if any) per the BindingEnv and the three rules documented on Propagate.
// When commit is true, known reductions are also written to the
// corresponding node's Knowledge.
func walkExpr(x ir.Expr, env *value.BindingEnv, commit bool) (value.Reduction, bool) {
	switch x := x.(type) {
	case *ir.NumberExpr:
		r := value.FieldElement(x.Value)
		setKnowledge(x.GetMeta(), r, commit)
		return r, true

	case *ir.VariableExpr:
		for _, a := range x.Accesses {
			if a.Kind == ir.ArrayAccess {
				walkExpr(a.Index, env, commit)
			}
		}
		if len(x.Accesses) > 0 {
			// An indexed reference (array element, component signal) isn't
			// tracked at the granularity this environment models.
			return value.Reduction{}, false
		}
		if r, ok := env.Get(x.Name); ok {
			setKnowledge(x.GetMeta(), r, commit)
			return r, true
		}
		return value.Reduction{}, false

	case *ir.InfixOpExpr:
		l, lok := walkExpr(x.Left, env, commit)
		r, rok := walkExpr(x.Right, env, commit)
		if x.Op.IsBoolean() && lok && rok {
			if b, ok := evalBoolean(x.Op, l, r); ok {
				res := value.Boolean(b)
				setKnowledge(x.GetMeta(), res, commit)
				return res, true
			}
		}
		return value.Reduction{}, false

	case *ir.PrefixOpExpr:
		walkExpr(x.Right, env, commit)
		return value.Reduction{}, false

	case *ir.ParallelOpExpr:
		walkExpr(x.Right, env, commit)
		return value.Reduction{}, false

	case *ir.InlineSwitchExpr:
		walkExpr(x.Cond, env, commit)
		walkExpr(x.IfTrue, env, commit)
		walkExpr(x.IfFalse, env, commit)
		return value.Reduction{}, false

	case *ir.CallExpr:
		for _, a := range x.Args {
			walkExpr(a, env, commit)
		}
		return value.Reduction{}, false

	case *ir.AnonymousComponentExpr:
		for _, a := range x.Args {
			walkExpr(a, env, commit)
		}
		return value.Reduction{}, false

	case *ir.ArrayInLineExpr:
		for _, e := range x.Elements {
			walkExpr(e, env, commit)
		}
		return value.Reduction{}, false

	case *ir.TupleExpr:
		for _, e := range x.Elements {
			walkExpr(e, env, commit)
		}
		return value.Reduction{}, false

	case *ir.UniformArrayExpr:
		walkExpr(x.Value, env, commit)
		walkExpr(x.Length, env, commit)
		return value.Reduction{}, false

	default:
		return value.Reduction{}, false
	}
}

func setKnowledge(meta *ast.Meta, r value.Reduction, commit bool) {
	if !commit {
		return
	}
	// A conflicting Set here means the fixed point above did not actually
	// converge before the commit pass ran, which is a propagation-pass bug,
	// not a recoverable condition; let it surface.
	if err := meta.Knowledge.Set(r); err != nil {
		panic(err)
	}
}

func evalBoolean(op ir.InfixOp, l, r value.Reduction) (bool, bool) {
	switch op {
	case ast.Eq:
		return l.Equal(r), true
	case ast.NotEq:
		return !l.Equal(r), true
	case ast.Lt, ast.Lte, ast.Gt, ast.Gte:
		lf, lok := l.AsFieldElement()
		rf, rok := r.AsFieldElement()
		if !lok || !rok {
			return false, false
		}
		cmp := lf.Cmp(rf)
		switch op {
		case ast.Lt:
			return cmp < 0, true
		case ast.Lte:
			return cmp <= 0, true
		case ast.Gt:
			return cmp > 0, true
		default: // ast.Gte
			return cmp >= 0, true
		}
	case ast.BoolAnd, ast.BoolOr:
		lb, lok := l.AsBoolean()
		rb, rok := r.AsBoolean()
		if !lok || !rok {
			return false, false
		}
		if op == ast.BoolAnd {
			return lb && rb, true
		}
		return lb || rb, true
	default:
		return false, false
	}
}
