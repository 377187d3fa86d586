package value

// BindingEnv tracks the current known value of each variable during a
// propagation pass. It is distinct from a node's own Knowledge: a variable's
// known value in this environment can flip freely from one program point to
// the next (a later assignment simply replaces it, and merging two
// predecessors' environments drops a binding the predecessors disagree on),
// whereas a node's own Knowledge, once set, never changes. Propagation passes
// use BindingEnv to decide, at each use, what Reduction (if any) to Set on
// that use's Meta.Knowledge.
type BindingEnv struct {
	scopes []map[string]Reduction
}

// NewBindingEnv returns an environment with a single, empty top-level scope.
func NewBindingEnv() *BindingEnv {
	return &BindingEnv{scopes: []map[string]Reduction{{}}}
}

// EnterScope pushes a new, empty scope.
func (e *BindingEnv) EnterScope() {
	e.scopes = append(e.scopes, map[string]Reduction{})
}

// LeaveScope pops the innermost scope.
func (e *BindingEnv) LeaveScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Set records that name currently reduces to v, shadowing any outer binding.
func (e *BindingEnv) Set(name string, v Reduction) {
	e.scopes[len(e.scopes)-1][name] = v
}

// Clear removes any known value for name, e.g. after an assignment from a
// non-constant expression.
func (e *BindingEnv) Clear(name string) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		delete(e.scopes[i], name)
	}
}

// Get returns the currently known value of name, searching from the
// innermost scope outward.
func (e *BindingEnv) Get(name string) (Reduction, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	return Reduction{}, false
}

// Clone returns a deep-enough copy of e suitable for diverging down one
// branch of a conditional and later merging back with MergeFrom.
func (e *BindingEnv) Clone() *BindingEnv {
	clone := &BindingEnv{scopes: make([]map[string]Reduction, len(e.scopes))}
	for i, scope := range e.scopes {
		m := make(map[string]Reduction, len(scope))
		for k, v := range scope {
			m[k] = v
		}
		clone.scopes[i] = m
	}
	return clone
}

// Equal reports whether e and other currently hold the same bindings at
// every scope depth, used to detect a fixed point when iterating a
// propagation pass to convergence over a CFG with loops.
func (e *BindingEnv) Equal(other *BindingEnv) bool {
	if len(e.scopes) != len(other.scopes) {
		return false
	}
	for i, scope := range e.scopes {
		os := other.scopes[i]
		if len(scope) != len(os) {
			return false
		}
		for k, v := range scope {
			ov, ok := os[k]
			if !ok || !ov.Equal(v) {
				return false
			}
		}
	}
	return true
}

// MergeFrom merges other into e following the branch-join rule: a name known
// in both with equal values remains known; a name known in only one, or
// known in both with differing values, becomes unknown in e (⊥).
func (e *BindingEnv) MergeFrom(other *BindingEnv) {
	for i := range e.scopes {
		merged := make(map[string]Reduction)
		var otherScope map[string]Reduction
		if i < len(other.scopes) {
			otherScope = other.scopes[i]
		}
		for name, v := range e.scopes[i] {
			if ov, ok := otherScope[name]; ok && ov.Equal(v) {
				merged[name] = v
			}
		}
		e.scopes[i] = merged
	}
}
