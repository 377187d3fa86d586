package cfg

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/config"
	"github.com/mna/zklint/env"
	"github.com/mna/zklint/ir"
	"github.com/mna/zklint/lower"
	"github.com/mna/zklint/report"
	"github.com/mna/zklint/unique"
)

// Build rewrites body for uniqueness, lowers it to IR while constructing its
// basic blocks, computes the dominator tree and declaration map, and runs
// value-knowledge propagation over the result. It returns a fatal
// *ir.LoweringError (never a bare sentinel) and no Cfg when the definition
// cannot be lowered; callers lowering many definitions (see BuildOne,
// BuildAll) should catch the error and continue with the rest.
func Build(params *ast.ParamData, body *ast.BlockStmt, curve config.Curve) (*Cfg, *report.Collection, error) {
	rewritten, reports := unique.Rewrite(body, params.Params, params.Meta.File)
	if reports.HasErrors() {
		return nil, reports, classifyErr(ErrShadowingSignal)
	}

	bb := &blockBuilder{env: env.New()}
	bb.blocks = append(bb.blocks, newBasicBlock(0, params.Meta))

	for _, p := range params.Params {
		if err := bb.env.Declare(p, &env.Binding{Name: p, UniqueName: p, Kind: ast.VarKind{}}); err != nil {
			return nil, reports, classifyErr(err)
		}
	}

	if _, err := bb.visitStmt(rewritten); err != nil {
		return nil, reports, classifyErr(err)
	}

	decls := buildDeclarationMap(bb.env)
	c := &Cfg{Name: params.Name, Curve: curve, Params: params, Decls: decls, Blocks: bb.blocks}
	if err := computeDominators(c); err != nil {
		return nil, reports, classifyErr(err)
	}
	if err := Propagate(c); err != nil {
		return nil, reports, classifyErr(err)
	}
	return c, reports, nil
}

// classifyErr wraps err in an *ir.LoweringError carrying the ErrKind that
// matches its underlying sentinel, so callers can branch on Kind instead of
// string-matching or importing every package that might have produced it.
func classifyErr(err error) error {
	switch {
	case errors.Is(err, env.ErrDuplicateDeclaration):
		return &ir.LoweringError{Kind: ir.DuplicateDeclaration, Err: err}
	case errors.Is(err, env.ErrUnknownSymbol), errors.Is(err, lower.ErrUnknownSymbol):
		return &ir.LoweringError{Kind: ir.UnknownSymbol, Err: err}
	case errors.Is(err, ErrShadowingSignal):
		return &ir.LoweringError{Kind: ir.ShadowingSignal, Err: err}
	case errors.Is(err, ErrMalformedInitBlock):
		return &ir.LoweringError{Kind: ir.MalformedInitBlock, Err: err}
	case errors.Is(err, ErrEmptyCfg):
		return &ir.LoweringError{Kind: ir.EmptyCfg, Err: err}
	default:
		return err
	}
}

type blockBuilder struct {
	env    *env.Env
	blocks []*BasicBlock
	cur    int
}

func (bb *blockBuilder) appendStmt(block int, s ir.Stmt) {
	bb.blocks[block].Stmts = append(bb.blocks[block].Stmts, s)
}

func (bb *blockBuilder) lastStmt(block int) ir.Stmt {
	stmts := bb.blocks[block].Stmts
	if len(stmts) == 0 {
		return nil
	}
	return stmts[len(stmts)-1]
}

// completeBasicBlock allocates a new block with predecessors pred, wires
// the edges, and — for any predecessor whose last statement is a pending
// conditional (IfFalse unset) not already targeting the new block — patches
// its IfFalse target to the new block. This is the only place a
// conditional's false-branch target is ever set.
func (bb *blockBuilder) completeBasicBlock(pred *bitset.BitSet, meta *ast.Meta) int {
	j := len(bb.blocks)
	nb := newBasicBlock(j, meta)
	bb.blocks = append(bb.blocks, nb)

	iterateSet(pred, func(i uint) {
		bb.blocks[i].Successors.Set(uint(j))
		nb.Predecessors.Set(i)
		if ite, ok := bb.lastStmt(int(i)).(*ir.IfThenElseStmt); ok {
			if ite.IfFalse == nil && (ite.IfTrue == nil || int(*ite.IfTrue) != j) {
				jj := ir.BlockIndex(j)
				ite.IfFalse = &jj
			}
		}
	})
	bb.cur = j
	return j
}

func singleton(i int) *bitset.BitSet {
	return bitset.New(0).Set(uint(i))
}

func (bb *blockBuilder) visitStmt(s ast.Stmt) (*bitset.BitSet, error) {
	switch s := s.(type) {
	case *ast.InitializationBlockStmt:
		for _, inner := range s.Initializations {
			switch inner.(type) {
			case *ast.DeclarationStmt, *ast.SubstitutionStmt:
			default:
				return nil, ErrMalformedInitBlock
			}
			if _, err := bb.visitStmt(inner); err != nil {
				return nil, err
			}
		}
		return bitset.New(0), nil

	case *ast.BlockStmt:
		bb.env.EnterScope()
		pred := bitset.New(0)
		for _, inner := range s.Stmts {
			if pred.Count() > 0 {
				bb.completeBasicBlock(pred, inner.GetMeta())
			}
			var err error
			pred, err = bb.visitStmt(inner)
			if err != nil {
				bb.env.LeaveScope()
				return nil, err
			}
		}
		bb.env.LeaveScope()
		return pred, nil

	case *ast.WhileStmt:
		current := bb.cur
		header := bb.completeBasicBlock(singleton(current), s.M)

		condIR, err := lower.Expr(s.Cond, bb.env)
		if err != nil {
			return nil, err
		}
		bodyIdx := ir.BlockIndex(header + 1)
		bb.appendStmt(header, &ir.IfThenElseStmt{M: s.M, Cond: condIR, IfTrue: &bodyIdx})

		bb.completeBasicBlock(singleton(header), s.M)

		bodyPred, err := bb.visitStmt(s.Body)
		if err != nil {
			return nil, err
		}
		backEdges := bodyPred
		if backEdges.Count() == 0 {
			backEdges = singleton(bb.cur)
		}
		iterateSet(backEdges, func(i uint) {
			bb.blocks[i].Successors.Set(uint(header))
			bb.blocks[header].Predecessors.Set(i)
		})
		return singleton(header), nil

	case *ast.IfThenElseStmt:
		current := bb.cur
		condIR, err := lower.Expr(s.Cond, bb.env)
		if err != nil {
			return nil, err
		}
		trueIdx := ir.BlockIndex(current + 1)
		bb.appendStmt(current, &ir.IfThenElseStmt{M: s.M, Cond: condIR, IfTrue: &trueIdx})

		bb.completeBasicBlock(singleton(current), s.M)
		ifPred, err := bb.visitStmt(s.IfCase)
		if err != nil {
			return nil, err
		}
		if ifPred.Count() == 0 {
			ifPred = singleton(bb.cur)
		}

		if s.ElseCase != nil {
			bb.completeBasicBlock(singleton(current), s.M)
			elsePred, err := bb.visitStmt(s.ElseCase)
			if err != nil {
				return nil, err
			}
			if elsePred.Count() == 0 {
				elsePred = singleton(bb.cur)
			}
			return ifPred.Union(elsePred), nil
		}
		return ifPred.Union(singleton(current)), nil

	case *ast.DeclarationStmt:
		if err := lower.Declaration(s, bb.env); err != nil {
			return nil, err
		}
		return bitset.New(0), nil

	default:
		irStmt, err := lower.Stmt(s, bb.env)
		if err != nil {
			return nil, err
		}
		bb.appendStmt(bb.cur, irStmt)
		return bitset.New(0), nil
	}
}
