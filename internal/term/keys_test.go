package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/dshills/vimcore/internal/input/key"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), key.Char('a')},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), key.Char('A')},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), key.NewRuneEvent('x', key.ModAlt)},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModCtrl), key.Ctrl('r')},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), key.Ctrl('w')},
		{"ctrl backslash", tcell.NewEventKey(tcell.KeyCtrlBackslash, 0, tcell.ModCtrl), key.Ctrl('\\')},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Special(key.KeyEnter)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.Special(key.KeyEscape)},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.Special(key.KeyBackspace)},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), key.Special(key.KeyTab)},
		{"shift tab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), key.NewSpecialEvent(key.KeyTab, key.ModShift)},
		{"shift arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), key.NewSpecialEvent(key.KeyUp, key.ModShift)},
		{"unmapped", tcell.NewEventKey(tcell.KeyPrint, 0, tcell.ModNone), key.Event{}},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), key.Special(key.KeyF5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConvertKey(tt.ev)
			assert.Equal(t, tt.want != key.Event{}, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
