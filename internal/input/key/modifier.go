package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

const (
	ModNone Modifier = 0
	// ModShift is only kept on special keys; for characters it is part of
	// the rune.
	ModShift Modifier = 1 << iota
	ModCtrl
	// ModAlt covers Alt, Meta and Option.
	ModAlt
)

// modifierNames lists each modifier in Vim notation order with the
// spellings accepted when parsing.
var modifierNames = []struct {
	mod      Modifier
	notation string
	names    []string
}{
	{ModCtrl, "C-", []string{"c", "ctrl", "control"}},
	{ModAlt, "A-", []string{"a", "m", "alt", "meta", "option"}},
	{ModShift, "S-", []string{"s", "shift"}},
}

// Has reports whether any modifier of mod is held.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without returns m minus mod.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// String returns the notation prefix, such as "C-" or "C-A-".
func (m Modifier) String() string {
	var sb strings.Builder
	for _, n := range modifierNames {
		if m.Has(n.mod) {
			sb.WriteString(n.notation)
		}
	}
	return sb.String()
}

// ModifierFromName looks up a modifier by any of its spellings, ignoring
// case. Unknown names give ModNone.
func ModifierFromName(name string) Modifier {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range modifierNames {
		for _, s := range n.names {
			if s == name {
				return n.mod
			}
		}
	}
	return ModNone
}
