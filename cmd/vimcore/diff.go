package main

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff returns a line diff of two buffers. Unchanged lines start with
// two spaces, removed lines with "- " and added lines with "+ ". Equal
// buffers give an empty string.
func lineDiff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()

	// Diff whole lines: each line is mapped to one rune, diffed, and
	// mapped back.
	a, b, lines := dmp.DiffLinesToChars(before+"\n", after+"\n")
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}
