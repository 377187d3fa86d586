// Package archive defines the minimal upstream contract this module consumes
// but does not implement: the parsed collection of template/function
// definitions, and the file library backing their source positions. Both are
// external collaborators — a real parser and file-library package would
// implement these interfaces; this module only needs to be typed against
// their shape so cfg.BuildAll can iterate a whole archive without depending
// on how it was produced.
package archive

import (
	"github.com/mna/zklint/ast"
	"github.com/mna/zklint/fileset"
)

// Definition is one template or function as the upstream parser would hand
// it to this module: its fixed parameter/signature record plus its body,
// ready for cfg.Build (which runs the uniqueness rewriter on it).
type Definition struct {
	Params *ast.ParamData
	Body   *ast.BlockStmt
}

// Archive is the parsed program: every template and function definition,
// keyed by name.
type Archive interface {
	Templates() map[string]*Definition
	Functions() map[string]*Definition
}

// FileLibrary maps file ids to source text and tracks which files were given
// directly by the user (as opposed to pulled in via an include), the
// distinction diagnostics use to decide whether a report location is worth
// showing to the user at all.
type FileLibrary interface {
	Source(id fileset.FileID) (string, bool)
	UserInputs() fileset.Set
}

// StaticArchive is a trivial, in-memory Archive, useful for tests and the
// cmd/zklint demo fixture.
type StaticArchive struct {
	TemplateDefs map[string]*Definition
	FunctionDefs map[string]*Definition
}

func (a *StaticArchive) Templates() map[string]*Definition { return a.TemplateDefs }
func (a *StaticArchive) Functions() map[string]*Definition { return a.FunctionDefs }

// StaticFileLibrary is a trivial, in-memory FileLibrary.
type StaticFileLibrary struct {
	Files  map[fileset.FileID]string
	Inputs fileset.Set
}

func (l *StaticFileLibrary) Source(id fileset.FileID) (string, bool) {
	s, ok := l.Files[id]
	return s, ok
}

func (l *StaticFileLibrary) UserInputs() fileset.Set { return l.Inputs }
