package report_test

import (
	"testing"

	"github.com/mna/zklint/fileset"
	"github.com/mna/zklint/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryString(t *testing.T) {
	cases := []struct {
		cat  report.Category
		want string
	}{
		{report.Info, "info"},
		{report.Warning, "warning"},
		{report.Error, "error"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.cat.String())
	}
}

func TestCollectionAllSortsByFileSpanID(t *testing.T) {
	var c report.Collection
	c.Add(report.Report{ID: "b", File: 1, Span: fileset.Span{Start: 5}})
	c.Add(report.Report{ID: "a", File: 1, Span: fileset.Span{Start: 5}})
	c.Add(report.Report{ID: "z", File: 0, Span: fileset.Span{Start: 10}})
	c.Add(report.Report{ID: "y", File: 1, Span: fileset.Span{Start: 1}})

	got := c.All()
	require.Len(t, got, 4)
	want := []string{"z", "y", "a", "b"}
	for i, r := range got {
		assert.Equal(t, want[i], r.ID, "position %d", i)
	}
}

func TestCollectionHasErrors(t *testing.T) {
	var c report.Collection
	assert.False(t, c.HasErrors())
	c.Add(report.Report{Category: report.Warning})
	assert.False(t, c.HasErrors())
	c.Add(report.Report{Category: report.Error})
	assert.True(t, c.HasErrors())
}

func TestCollectionLen(t *testing.T) {
	var c report.Collection
	assert.Equal(t, 0, c.Len())
	c.Add(report.Report{})
	assert.Equal(t, 1, c.Len())
}

func TestCollectionErr(t *testing.T) {
	var empty report.Collection
	assert.NoError(t, empty.Err())

	var c report.Collection
	c.Add(report.Report{ID: "x", Category: report.Error, Message: "boom"})
	err := c.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "x")
}

func TestReportString(t *testing.T) {
	r := report.Report{
		ID:       "decl-shadows-signal",
		Category: report.Error,
		Message:  "bad thing happened",
		Labels:   []report.Label{{Text: "declared here"}},
	}
	s := r.String()
	assert.Contains(t, s, "bad thing happened")
	assert.Contains(t, s, "decl-shadows-signal")
	assert.Contains(t, s, "declared here")
}
