package macro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/engine/motion"
	"github.com/dshills/vimcore/internal/input/intent"
)

var (
	down  = intent.Move(motion.Down, 1)
	right = intent.Move(motion.Right, 2)
)

func TestIsValidRegister(t *testing.T) {
	tests := []struct {
		reg  rune
		want bool
	}{
		{'a', true},
		{'Z', true},
		{'0', true},
		{'"', false},
		{'@', false},
		{'é', false},
	}
	for _, tt := range tests {
		if got := IsValidRegister(tt.reg); got != tt.want {
			t.Errorf("IsValidRegister(%q) = %v, want %v", tt.reg, got, tt.want)
		}
	}
	assert.Equal(t, 'q', NormalizeRegister('Q'))
	assert.Equal(t, rune(0), NormalizeRegister('!'))
}

func TestRecorderBasic(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.Start('q'))
	assert.True(t, r.IsRecording())
	assert.Equal(t, 'q', r.Register())

	r.Record(down)
	r.Record(intent.Intent{Kind: intent.MacroStop})
	r.Record(right)

	assert.Equal(t, 'q', r.Stop())
	assert.False(t, r.IsRecording())
	assert.Equal(t, []intent.Intent{down, right}, r.Get('q'))
	assert.Equal(t, rune(0), r.Stop(), "stop without start")
}

func TestRecorderErrors(t *testing.T) {
	r := NewRecorder()
	assert.ErrorIs(t, r.Start('!'), ErrInvalidRegister)

	require.NoError(t, r.Start('a'))
	assert.ErrorIs(t, r.Start('b'), ErrAlreadyRecording)
}

func TestRecorderAppend(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.Set('a', []intent.Intent{down}))

	require.NoError(t, r.Start('A'))
	r.Record(right)
	assert.Equal(t, 'a', r.Stop())

	assert.Equal(t, []intent.Intent{down, right}, r.Get('a'))
}

func TestRecorderEmptyClears(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.Set('a', []intent.Intent{down}))
	require.NoError(t, r.Start('a'))
	r.Stop()

	assert.False(t, r.HasMacro('a'))
	assert.Empty(t, r.Registers())
}

func TestRecorderGetIsCopy(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.Set('a', []intent.Intent{down}))
	got := r.Get('a')
	got[0] = right
	assert.Equal(t, []intent.Intent{down}, r.Get('a'))
}

func TestPlayerCount(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.Set('a', []intent.Intent{down, right}))
	p := NewPlayer(r, 0)

	var got []intent.Intent
	err := p.Play('a', 3, func(it intent.Intent) error {
		assert.True(t, p.IsPlaying())
		got = append(got, it)
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 6)
	assert.False(t, p.IsPlaying())
	assert.Equal(t, 'a', r.LastPlayed())
}

func TestPlayerLast(t *testing.T) {
	r := NewRecorder()
	p := NewPlayer(r, 0)
	noop := func(intent.Intent) error { return nil }

	assert.ErrorIs(t, p.Play('@', 1, noop), ErrNoLastMacro)

	require.NoError(t, r.Set('b', []intent.Intent{down}))
	require.NoError(t, p.Play('b', 1, noop))
	require.NoError(t, p.Play('@', 1, noop))

	assert.ErrorIs(t, p.Play('c', 1, noop), ErrEmptyRegister)
	assert.ErrorIs(t, p.Play('"', 1, noop), ErrInvalidRegister)
}

func TestPlayerAbort(t *testing.T) {
	r := NewRecorder()
	require.NoError(t, r.Set('a', []intent.Intent{down, right, down}))
	p := NewPlayer(r, 0)

	stop := errors.New("motion failed")
	calls := 0
	err := p.Play('a', 5, func(it intent.Intent) error {
		calls++
		if it == right {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestPlayerRecursionBounded(t *testing.T) {
	r := NewRecorder()
	self := intent.Intent{Kind: intent.MacroPlay, Register: 'a'}
	require.NoError(t, r.Set('a', []intent.Intent{self}))
	p := NewPlayer(r, 10)

	maxDepth := 0
	var handler Handler
	handler = func(it intent.Intent) error {
		maxDepth = max(maxDepth, p.Depth())
		return p.Play(it.Register, 1, handler)
	}
	err := p.Play('a', 1, handler)

	assert.ErrorIs(t, err, ErrDepth)
	assert.Equal(t, 10, maxDepth)
	assert.Equal(t, 0, p.Depth())
}
