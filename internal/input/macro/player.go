package macro

import (
	"fmt"

	"github.com/dshills/vimcore/internal/input/intent"
)

// DefaultMaxDepth bounds nested playback.
const DefaultMaxDepth = 100

// Handler receives each replayed intent. A non-nil error aborts the rest
// of the playback, the way a failing motion stops a Vim macro.
type Handler func(it intent.Intent) error

// Player replays recorded macros through a Handler.
type Player struct {
	recorder *Recorder
	depth    int
	maxDepth int
}

// NewPlayer creates a player over recorder's registers. maxDepth <= 0
// selects DefaultMaxDepth.
func NewPlayer(recorder *Recorder, maxDepth int) *Player {
	p := &Player{recorder: recorder}
	p.SetMaxDepth(maxDepth)
	return p
}

// SetMaxDepth changes the nesting limit.
func (p *Player) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// Play replays reg count times (minimum 1). '@' names the last played
// register. Playback may re-enter Play from inside handler; once the nesting
// depth exceeds the limit Play returns ErrDepth.
func (p *Player) Play(reg rune, count int, handler Handler) error {
	if reg == '@' {
		reg = p.recorder.LastPlayed()
		if reg == 0 {
			return ErrNoLastMacro
		}
	}
	if !IsValidRegister(reg) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, reg)
	}
	intents := p.recorder.Get(reg)
	if len(intents) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyRegister, reg)
	}
	if p.depth >= p.maxDepth {
		return fmt.Errorf("%w (%d)", ErrDepth, p.maxDepth)
	}

	p.recorder.SetLastPlayed(reg)
	p.depth++
	defer func() { p.depth-- }()

	for range max(count, 1) {
		for _, it := range intents {
			if err := handler(it); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsPlaying reports whether a macro is being replayed.
func (p *Player) IsPlaying() bool {
	return p.depth > 0
}

// Depth returns the current nesting depth.
func (p *Player) Depth() int {
	return p.depth
}
