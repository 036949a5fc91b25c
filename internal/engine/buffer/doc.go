// Package buffer defines the text-storage contract consumed by the editing
// core and a line-based in-memory implementation of it.
//
// All addressing is grapheme based:
//
//   - Position: a line index and a grapheme-cluster offset within the line
//   - Range: two Positions plus linewise and block flags; End is inclusive
//   - Edit: a reversible replacement of Old with New at a Position
//
// A Position whose Col equals the line's grapheme count addresses the line
// break that follows it. Charwise ranges may end there to include the break.
//
// Basic usage:
//
//	buf := buffer.NewFromString("hello world")
//
//	// Insert text
//	edit, end := buf.Insert(buffer.Position{Line: 0, Col: 5}, ",")
//
//	// Undo it
//	buf.Apply(edit.Invert())
//
// Buffers are not safe for concurrent mutation. Readers running on another
// goroutine should work from a Snapshot, which is never modified after it
// is taken.
package buffer
