// Package motion resolves cursor motions over grapheme-addressed text.
//
// Resolve applies a single-step resolver count times for repeatable motions
// (h, l, w, b, e, paragraphs) and stops as soon as a step no longer moves, so
// every step re-reads the line it lands on. Motions whose count selects a
// target instead (G, N%, |, f, t, H, L) use it directly.
//
// Vertical motions remember the display column they started from in
// Cursor.WantCol; every other motion returns a cursor without one.
package motion
