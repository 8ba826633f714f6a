package writer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDiff_Identical(t *testing.T) {
	d := &Differ{ContextLines: 2, Width: 80}
	assert.Empty(t, d.Diff("a.go", []byte("same\n"), []byte("same\n")))
}

func TestDiff_NewFile(t *testing.T) {
	d := &Differ{ContextLines: 2, Width: 80}
	assert.Contains(t, d.Diff("a.go", nil, []byte("abc")), "a.go (new file, 3 bytes)")
}

func TestDiff_ChangedLine(t *testing.T) {
	d := &Differ{ContextLines: 1, Width: 80}
	old := "one\ntwo\nthree\nfour\nfive\n"
	newer := "one\ntwo\nTHREE\nfour\nfive\n"

	out := d.Diff("a.go", []byte(old), []byte(newer))

	assert.Contains(t, out, "--- a.go")
	assert.Contains(t, out, "@@ -2 +2 @@")
	assert.Contains(t, out, "- three")
	assert.Contains(t, out, "+ THREE")
	assert.Contains(t, out, "  two")
	assert.NotContains(t, out, "  one", "line outside the context window")
}

func TestDiff_SeparateHunks(t *testing.T) {
	d := &Differ{ContextLines: 1, Width: 80}
	oldLines := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	newLines := []string{"A", "b", "c", "d", "e", "f", "g", "H"}

	out := d.Diff("x", []byte(strings.Join(oldLines, "\n")), []byte(strings.Join(newLines, "\n")))

	assert.Equal(t, 2, strings.Count(out, "@@ -"))
}

func TestDiff_NearbyChangesShareHunk(t *testing.T) {
	d := &Differ{ContextLines: 1, Width: 80}
	oldLines := []string{"a", "b", "c", "d"}
	newLines := []string{"A", "b", "c", "D"}

	out := d.Diff("x", []byte(strings.Join(oldLines, "\n")), []byte(strings.Join(newLines, "\n")))

	assert.Equal(t, 1, strings.Count(out, "@@ -"))
}

func TestDiff_TruncatesLongLines(t *testing.T) {
	d := &Differ{ContextLines: 0, Width: 20}
	out := d.Diff("x", []byte("short\n"), []byte(strings.Repeat("y", 100)+"\n"))

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("y", 30))
}

func TestLineEdits(t *testing.T) {
	edits := lineEdits([]string{"a", "b", "c"}, []string{"a", "c", "d"})

	var kinds []editKind
	for _, e := range edits {
		kinds = append(kinds, e.kind)
	}
	assert.Equal(t, []editKind{keep, remove, keep, insert}, kinds)
}

func TestDiff_TruncatesOnRuneBoundary(t *testing.T) {
	d := &Differ{ContextLines: 0, Width: 20}
	out := d.Diff("x", []byte("short\n"), []byte(strings.Repeat("é", 100)+"\n"))

	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("é", 15)+"…")
	assert.NotContains(t, out, strings.Repeat("é", 16))
}

func TestDiff_ShortMultibyteLineKept(t *testing.T) {
	d := &Differ{ContextLines: 0, Width: 20}
	line := strings.Repeat("日", 16)
	out := d.Diff("x", []byte("short\n"), []byte(line+"\n"))

	assert.Contains(t, out, line)
	assert.NotContains(t, out, "…")
}
