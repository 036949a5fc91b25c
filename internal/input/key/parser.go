package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key specification into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Key names: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+S", "Alt+x"
//   - Vim-style: "<C-s>", "<A-f>", "<S-Tab>", "<CR>", "<Esc>", "<lt>"
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return Char(r), nil
	}
	spec = strings.TrimSpace(spec)

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}
	if strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}
	return parseKeyWithModifiers(spec, ModNone)
}

// parseVimStyle parses the inside of <...>, like "C-s", "A-F4", "CR".
func parseVimStyle(inner string) (Event, error) {
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}
	var mods Modifier
	// A trailing "-" is the minus key itself, as in <C-->.
	for len(inner) > 2 && inner[1] == '-' {
		mod := ModifierFromName(inner[:1])
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, inner[:1])
		}
		mods = mods.With(mod)
		inner = inner[2:]
	}
	return parseKeyWithModifiers(inner, mods)
}

// parseModifierStyle parses "Ctrl+S" style notation.
func parseModifierStyle(spec string) (Event, error) {
	parts := strings.Split(spec, "+")
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	last := parts[len(parts)-1]
	if last == "" {
		// "Ctrl++" names the plus key.
		last = "+"
	}
	return parseKeyWithModifiers(last, mods)
}

// parseKeyWithModifiers parses a key part with already-known modifiers.
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}
	lower := strings.ToLower(keyPart)
	if r, ok := runeNameMap[lower]; ok {
		return runeEvent(r, mods), nil
	}
	if lower == "minus" {
		return runeEvent('-', mods), nil
	}
	if k := KeyFromName(lower); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return runeEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// runeEvent folds Shift into the rune and lowercases Ctrl letters.
func runeEvent(r rune, mods Modifier) Event {
	if mods.Has(ModShift) {
		r = unicode.ToUpper(r)
		mods = mods.Without(ModShift)
	}
	if mods.Has(ModCtrl) {
		r = unicode.ToLower(r)
	}
	return NewRuneEvent(r, mods)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// ParseKeys parses a stream of keys in Vim notation, such as
// "2dw" or "ihello<Esc>". A "<" that does not start a valid key name is
// taken literally.
func ParseKeys(s string) ([]Event, error) {
	var events []Event
	for len(s) > 0 {
		if s[0] == '<' {
			if end := strings.IndexByte(s, '>'); end > 1 {
				if ev, err := parseVimStyle(s[1:end]); err == nil {
					events = append(events, ev)
					s = s[end+1:]
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size <= 1 {
			return events, fmt.Errorf("%w: invalid UTF-8 in %q", ErrInvalidSpec, s)
		}
		if r == '\n' {
			events = append(events, Special(KeyEnter))
		} else if r == '\t' {
			events = append(events, Special(KeyTab))
		} else {
			events = append(events, Char(r))
		}
		s = s[size:]
	}
	return events, nil
}

// MustParseKeys is ParseKeys for known-valid input.
func MustParseKeys(s string) []Event {
	events, err := ParseKeys(s)
	if err != nil {
		panic(err)
	}
	return events
}

// Format renders events in the notation ParseKeys reads.
func Format(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(e.String())
	}
	return sb.String()
}
