package cfg

import (
	"github.com/bits-and-blooms/bitset"
)

// computeDominators fills in c.Idom, c.DomTree, and c.Frontier. It implements
// the iterative dominance algorithm of Cooper, Harvey & Kennedy, "A Simple,
// Fast Dominance Algorithm" (2001) over reverse postorder from block 0, and
// then the dominance-frontier construction of Cytron et al. (1991) by
// visiting the dominator tree in postorder and unioning each block's own
// frontier edges with its children's frontiers — the same two-pass shape as
// golang.org/x/tools's SSA builder (ssa/lift.go's buildDomTree/domFrontier),
// adapted to use bitset unions in place of that package's plain slices (its
// own comments flag the slice representation as something worth optimizing
// away).
func computeDominators(c *Cfg) error {
	n := len(c.Blocks)
	if n == 0 {
		return ErrEmptyCfg
	}

	postNum := make([]int, n)
	for i := range postNum {
		postNum[i] = -1
	}
	visited := make([]bool, n)
	postorder := make([]int, 0, n)
	var walk func(i int)
	walk = func(i int) {
		visited[i] = true
		succ := c.Blocks[i].Successors
		for s, ok := succ.NextSet(0); ok; s, ok = succ.NextSet(s + 1) {
			if !visited[s] {
				walk(int(s))
			}
		}
		postorder = append(postorder, i)
	}
	walk(0)
	for num, i := range postorder {
		postNum[i] = num
	}

	rpo := make([]int, len(postorder))
	for i, b := range postorder {
		rpo[len(postorder)-1-i] = b
	}

	idom := make([]int, n)
	for i := range idom {
		idom[i] = -1
	}
	idom[0] = 0

	intersect := func(a, b int) int {
		for a != b {
			for postNum[a] < postNum[b] {
				a = idom[a]
			}
			for postNum[b] < postNum[a] {
				b = idom[b]
			}
		}
		return a
	}

	for changed := true; changed; {
		changed = false
		for _, b := range rpo {
			if b == 0 || postNum[b] == -1 {
				continue
			}
			newIdom := -1
			preds := c.Blocks[b].Predecessors
			for p, ok := preds.NextSet(0); ok; p, ok = preds.NextSet(p + 1) {
				pi := int(p)
				if idom[pi] == -1 {
					continue
				}
				if newIdom == -1 {
					newIdom = pi
					continue
				}
				newIdom = intersect(pi, newIdom)
			}
			if newIdom != -1 && idom[b] != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
	}
	idom[0] = -1 // the entry block has no immediate dominator.

	children := make([][]int, n)
	for b := 1; b < n; b++ {
		if idom[b] != -1 {
			children[idom[b]] = append(children[idom[b]], b)
		}
	}

	frontier := make([]*bitset.BitSet, n)
	for i := range frontier {
		frontier[i] = bitset.New(0)
	}
	var buildFrontier func(u int)
	buildFrontier = func(u int) {
		for _, w := range children[u] {
			buildFrontier(w)
		}
		succ := c.Blocks[u].Successors
		for s, ok := succ.NextSet(0); ok; s, ok = succ.NextSet(s + 1) {
			v := int(s)
			if idom[v] != u {
				frontier[u].Set(uint(v))
			}
		}
		for _, w := range children[u] {
			iterateSet(frontier[w], func(vi uint) {
				v := int(vi)
				if idom[v] != u {
					frontier[u].Set(vi)
				}
			})
		}
	}
	buildFrontier(0)

	c.Idom = idom
	c.DomTree = children
	c.Frontier = frontier
	c.rpo = rpo
	return nil
}
