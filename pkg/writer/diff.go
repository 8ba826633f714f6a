package writer

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Lipgloss styles for diff previews
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// maxDiffCells bounds the LCS table; larger files get a one-line summary.
const maxDiffCells = 4_000_000

type editKind int

const (
	keep editKind = iota
	insert
	remove
)

type edit struct {
	kind editKind
	text string
}

// Differ renders line diffs between the file on disk and a generated artifact.
type Differ struct {
	ContextLines int
	Width        int
}

// NewDiffer creates a Differ sized to the terminal, falling back to 120
// columns when stdout is not a terminal.
func NewDiffer() *Differ {
	width := 120
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w
	}
	return &Differ{ContextLines: 2, Width: width}
}

// Diff returns a unified-style diff, or "" when old and newer are identical.
// A nil old is rendered as a new file.
func (d *Differ) Diff(path string, old, newer []byte) string {
	if string(old) == string(newer) {
		return ""
	}

	var b strings.Builder
	if old == nil {
		b.WriteString(headerStyle.Render(fmt.Sprintf("+++ %s (new file, %d bytes)", path, len(newer))) + "\n")
		return b.String()
	}

	oldLines := splitLines(string(old))
	newLines := splitLines(string(newer))
	if len(oldLines)*len(newLines) > maxDiffCells {
		return headerStyle.Render(fmt.Sprintf("~~~ %s (%d -> %d lines, too large to diff)", path, len(oldLines), len(newLines))) + "\n"
	}

	b.WriteString(headerStyle.Render("--- "+path) + "\n")
	b.WriteString(headerStyle.Render("+++ "+path+" (generated)") + "\n")

	edits := lineEdits(oldLines, newLines)
	for _, h := range hunks(edits, d.ContextLines) {
		b.WriteString(hunkStyle.Render(fmt.Sprintf("@@ -%d +%d @@", h.oldStart, h.newStart)) + "\n")
		for _, e := range edits[h.from:h.to] {
			b.WriteString(d.line(e) + "\n")
		}
	}

	return b.String()
}

func (d *Differ) line(e edit) string {
	text := e.text
	if d.Width > 4 && utf8.RuneCountInString(text) > d.Width-4 {
		text = string([]rune(text)[:d.Width-5]) + "…"
	}
	switch e.kind {
	case insert:
		return addedStyle.Render("+ " + text)
	case remove:
		return removedStyle.Render("- " + text)
	default:
		return "  " + text
	}
}

// lineEdits computes a shortest edit script via a longest-common-subsequence
// table.
func lineEdits(old, newer []string) []edit {
	n, m := len(old), len(newer)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if old[i] == newer[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	edits := make([]edit, 0, n+m)
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case old[i] == newer[j]:
			edits = append(edits, edit{keep, old[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			edits = append(edits, edit{remove, old[i]})
			i++
		default:
			edits = append(edits, edit{insert, newer[j]})
			j++
		}
	}
	for ; i < n; i++ {
		edits = append(edits, edit{remove, old[i]})
	}
	for ; j < m; j++ {
		edits = append(edits, edit{insert, newer[j]})
	}
	return edits
}

type hunk struct {
	from, to           int // edit range
	oldStart, newStart int // 1-based line numbers
}

// hunks groups changed edits with up to ctx unchanged lines around them.
// Changes separated by at most 2*ctx unchanged lines share a hunk.
func hunks(edits []edit, ctx int) []hunk {
	var result []hunk
	oldLine, newLine := 1, 1
	lineAt := make([][2]int, len(edits))
	for i, e := range edits {
		lineAt[i] = [2]int{oldLine, newLine}
		if e.kind != insert {
			oldLine++
		}
		if e.kind != remove {
			newLine++
		}
	}

	for i := 0; i < len(edits); i++ {
		if edits[i].kind == keep {
			continue
		}
		from := max(i-ctx, 0)
		to := i + 1
		for to < len(edits) {
			if edits[to].kind != keep {
				to++
				continue
			}
			run := to
			for run < len(edits) && edits[run].kind == keep {
				run++
			}
			if run < len(edits) && run-to <= 2*ctx {
				to = run
				continue
			}
			to = min(to+ctx, len(edits))
			break
		}
		result = append(result, hunk{from: from, to: to, oldStart: lineAt[from][0], newStart: lineAt[from][1]})
		i = to - 1
	}
	return result
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
