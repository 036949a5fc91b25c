package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimcore/internal/input/key"
)

// specialKeys maps tcell keys that have a key.Key of their own. Terminals
// send Ctrl-M, Ctrl-I, Ctrl-H and Ctrl-[ as Enter, Tab, Backspace and
// Escape, so those codes are listed here and not as Ctrl letters.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// ctrlPunct maps the control codes above Ctrl-Z to their characters.
var ctrlPunct = map[tcell.Key]rune{
	tcell.KeyCtrlSpace:      ' ',
	tcell.KeyCtrlBackslash:  '\\',
	tcell.KeyCtrlRightSq:    ']',
	tcell.KeyCtrlCarat:      '^',
	tcell.KeyCtrlUnderscore: '_',
}

// ConvertKey converts a tcell key event to a key.Event. It returns false
// for keys the editor has no name for.
func ConvertKey(ev *tcell.EventKey) (key.Event, bool) {
	k := ev.Key()
	mods := convertMod(ev.Modifiers())

	if k == tcell.KeyRune {
		r := ev.Rune()
		if mods.Has(key.ModCtrl) {
			r = unicode.ToLower(r)
		}
		// Shift is already part of the character.
		return key.NewRuneEvent(r, mods.Without(key.ModShift)), true
	}
	if k == tcell.KeyBacktab {
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift)), true
	}
	if sk, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(sk, mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return key.NewRuneEvent(r, mods.Without(key.ModShift).With(key.ModCtrl)), true
	}
	if r, ok := ctrlPunct[k]; ok {
		return key.NewRuneEvent(r, mods.Without(key.ModShift).With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		result |= key.ModAlt
	}
	return result
}
