package key

import (
	"fmt"
	"unicode"
)

// Event represents a single key press event. Events are comparable and carry
// no timestamp, so replaying the same events always yields the same result.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Char is shorthand for an unmodified character event.
func Char(r rune) Event {
	return NewRuneEvent(r, ModNone)
}

// Ctrl is shorthand for a Ctrl+character event.
func Ctrl(r rune) Event {
	return NewRuneEvent(unicode.ToLower(r), ModCtrl)
}

// Special is shorthand for an unmodified special key.
func Special(k Key) Event {
	return NewSpecialEvent(k, ModNone)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character typed without Ctrl
// or Alt.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.Modifiers.Has(ModCtrl|ModAlt) && unicode.IsPrint(e.Rune)
}

// IsCtrl reports whether e is Ctrl held with r.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Modifiers == ModCtrl && e.Rune == unicode.ToLower(r)
}

// IsEscape returns true if this is the Escape key or its Ctrl-[ alias.
func (e Event) IsEscape() bool {
	return (e.Key == KeyEscape && e.Modifiers == ModNone) || e.IsCtrl('[')
}

// IsEnter returns true if this is Enter (with no modifiers).
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// IsBackspace returns true if this is Backspace or Ctrl-H.
func (e Event) IsBackspace() bool {
	return (e.Key == KeyBackspace && e.Modifiers == ModNone) || e.IsCtrl('h')
}

// IsTab returns true if this is Tab (with no modifiers).
func (e Event) IsTab() bool {
	return e.Key == KeyTab && e.Modifiers == ModNone
}

// IsDigit reports whether e is an unmodified ASCII digit.
func (e Event) IsDigit() bool {
	return e.IsChar() && e.Rune >= '0' && e.Rune <= '9'
}

// String returns the Vim notation for the event: "a", "<Esc>", "<C-w>".
func (e Event) String() string {
	if e.Key == KeyRune && !e.Modifiers.Has(ModCtrl|ModAlt) {
		switch e.Rune {
		case ' ':
			return "<Space>"
		case '<':
			return "<lt>"
		case 0:
			return "<Nul>"
		}
		return string(e.Rune)
	}
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
		switch e.Rune {
		case ' ':
			name = "Space"
		case '<':
			name = "lt"
		case '>':
			name = "gt"
		case '-':
			name = "minus"
		}
	}
	return "<" + e.Modifiers.String() + name + ">"
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{Key: %s, Rune: %q, Modifiers: %q}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
