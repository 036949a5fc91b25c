package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/engine/textobject"
	"github.com/dshills/vimcore/internal/input/vim"
)

func TestKindNames(t *testing.T) {
	seen := make(map[string]Kind)
	for _, k := range Kinds() {
		name := k.String()
		assert.NotContains(t, name, "Kind(", "kind %d has no name", k)
		if prev, dup := seen[name]; dup {
			t.Errorf("kinds %d and %d share name %q", prev, k, name)
		}
		seen[name] = k
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		it         Intent
		repeatable bool
		jump       bool
		modeChange bool
		session    bool
	}{
		{"word motion", Move(motion.WordForward, 1), false, false, false, false},
		{"goto line", Move(motion.GotoLine, 4), false, true, false, false},
		{"bracket", Move(motion.MatchBracket, 1), false, true, false, false},
		{"delete word", Apply(vim.OpDelete, motion.Motion{Kind: motion.WordForward}, 1), true, false, false, false},
		{"yank", ApplyLines(vim.OpYank, 1), false, false, false, false},
		{"change object", ApplyObject(vim.OpChange, textobject.Object{Kind: textobject.Word}), true, false, false, true},
		{"insert", Intent{Kind: EnterInsert}, false, false, true, true},
		{"replace mode", Intent{Kind: EnterReplace}, false, false, true, true},
		{"escape", Intent{Kind: Escape}, false, false, true, false},
		{"put", Intent{Kind: Put}, true, false, false, false},
		{"search", Intent{Kind: SearchForward, Text: "x"}, false, true, false, false},
		{"mark", Intent{Kind: GotoMark, Char: 'a'}, false, true, false, false},
		{"jump back", Intent{Kind: JumpBack}, false, false, false, false},
		{"undo", Intent{Kind: Undo}, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.repeatable, tt.it.IsRepeatable(), "repeatable")
			assert.Equal(t, tt.jump, tt.it.IsJump(), "jump")
			assert.Equal(t, tt.modeChange, tt.it.IsModeChange(), "mode change")
			assert.Equal(t, tt.session, tt.it.StartsSession(), "session")
		})
	}
}

func TestMacroToggle(t *testing.T) {
	assert.True(t, Intent{Kind: MacroStart, Register: 'q'}.IsMacroToggle())
	assert.True(t, Intent{Kind: MacroStop}.IsMacroToggle())
	assert.False(t, Intent{Kind: MacroPlay, Register: 'q'}.IsMacroToggle())
}

func TestString(t *testing.T) {
	it := Apply(vim.OpDelete, motion.Motion{Kind: motion.FindCharForward, Char: 'x'}, 2)
	it.Register = 'a'
	assert.Equal(t, `Operator count=2 reg='a' op=delete motion=findCharForward('x')`, it.String())
	assert.Equal(t, 1, Intent{}.N())
}
