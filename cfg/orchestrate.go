package cfg

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/mna/zklint/archive"
	"github.com/mna/zklint/config"
	"github.com/mna/zklint/report"
)

// ErrUnknownDefinition is returned by BuildOne when name names neither a
// template nor a function in the given archive.
var ErrUnknownDefinition = errors.New("cfg: unknown definition")

// Pass is the shape a downstream analysis pass takes: a built Cfg plus the
// archive it came from (for cross-definition lookups, e.g. resolving a
// CallExpr's callee), returning whatever it finds. No concrete Pass is
// implemented in this module — analysis passes are out of scope — but the
// type is named here so one can be written against a stable signature.
type Pass func(*Cfg, archive.Archive) report.Collection

// BuildOne builds the Cfg for a single named definition, looked up in a
// first in templates, then in functions.
func BuildOne(a archive.Archive, name string, curve config.Curve) (*Cfg, *report.Collection, error) {
	def, ok := a.Templates()[name]
	if !ok {
		def, ok = a.Functions()[name]
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownDefinition, name)
	}
	return Build(def.Params, def.Body, curve)
}

// BuildAll lowers every definition in a (templates and functions) to a Cfg,
// fanning the work out across a bounded pool of goroutines, one per
// available CPU, and collecting per-definition failures instead of aborting
// the whole run. The rewriter's own non-fatal reports (e.g. a
// parameter-shadowing warning) are returned alongside each successful Cfg
// rather than discarded.
func BuildAll(a archive.Archive, curve config.Curve) (map[string]*Cfg, map[string]*report.Collection, map[string]error) {
	type job struct {
		name string
		def  *archive.Definition
	}

	var jobs []job
	for name, def := range a.Templates() {
		jobs = append(jobs, job{name, def})
	}
	for name, def := range a.Functions() {
		jobs = append(jobs, job{name, def})
	}

	results := make(map[string]*Cfg, len(jobs))
	reports := make(map[string]*report.Collection, len(jobs))
	failures := make(map[string]error)
	var mu sync.Mutex

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	ch := make(chan job)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range ch {
				c, rs, err := Build(j.def.Params, j.def.Body, curve)
				mu.Lock()
				if err != nil {
					failures[j.name] = err
				} else {
					results[j.name] = c
					reports[j.name] = rs
				}
				mu.Unlock()
			}
		}()
	}
	for _, j := range jobs {
		ch <- j
	}
	close(ch)
	wg.Wait()

	return results, reports, failures
}
