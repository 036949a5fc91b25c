// Package key defines key events as delivered by the terminal layer and the
// Vim key notation used to write them down.
//
// An Event is a plain comparable value: either a special Key, or KeyRune with
// the typed character in Rune. Ctrl combinations are KeyRune events with
// ModCtrl set and a lowercase rune, so <C-w> is Event{KeyRune, 'w', ModCtrl}.
// Shifted characters carry their case in the rune and no modifier.
//
// # Notation
//
// Single keys parse with Parse:
//
//   - Characters: "a", "A", "@"
//   - Vim-style: "<C-w>", "<Esc>", "<CR>", "<BS>", "<lt>", "<S-Tab>"
//   - Modifier style: "Ctrl+S", "Alt+x"
//
// Whole key streams such as "3dw" or "ihello<Esc>" parse with ParseKeys and
// print back with Format.
package key
