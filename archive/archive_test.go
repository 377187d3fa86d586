package archive_test

import (
	"testing"

	"github.com/mna/zklint/archive"
	"github.com/mna/zklint/fileset"
	"github.com/stretchr/testify/assert"
)

func TestStaticArchive(t *testing.T) {
	def := &archive.Definition{}
	a := &archive.StaticArchive{
		TemplateDefs: map[string]*archive.Definition{"T": def},
		FunctionDefs: map[string]*archive.Definition{"F": def},
	}

	var _ archive.Archive = a
	assert.Same(t, def, a.Templates()["T"])
	assert.Same(t, def, a.Functions()["F"])
	assert.Nil(t, a.Templates()["missing"])
}

func TestStaticFileLibrary(t *testing.T) {
	lib := &archive.StaticFileLibrary{
		Files:  map[fileset.FileID]string{1: "source text"},
		Inputs: fileset.NewSet(1),
	}
	var _ archive.FileLibrary = lib

	src, ok := lib.Source(1)
	assert.True(t, ok)
	assert.Equal(t, "source text", src)

	_, ok = lib.Source(2)
	assert.False(t, ok)

	assert.True(t, lib.UserInputs().Has(1))
	assert.False(t, lib.UserInputs().Has(2))
}
