package macro

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/vimcore/internal/input/intent"
)

// Errors returned by Recorder and Player.
var (
	ErrInvalidRegister  = errors.New("macro: invalid register")
	ErrAlreadyRecording = errors.New("macro: already recording")
	ErrEmptyRegister    = errors.New("macro: empty register")
	ErrNoLastMacro      = errors.New("macro: no previously used register")
	ErrDepth            = errors.New("macro: recursion too deep")
)

// Recorder captures intents into macro registers.
type Recorder struct {
	recording  bool
	register   rune
	appending  bool
	intents    []intent.Intent
	registers  map[rune][]intent.Intent
	lastPlayed rune
}

// NewRecorder creates a new macro recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{
		registers: make(map[rune][]intent.Intent),
	}
}

// Start begins recording to reg. An uppercase register appends to the
// existing macro when recording stops.
func (r *Recorder) Start(reg rune) error {
	if !IsValidRegister(reg) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, reg)
	}
	if r.recording {
		return fmt.Errorf("%w into %q", ErrAlreadyRecording, r.register)
	}
	r.recording = true
	r.appending = appends(reg)
	r.register = NormalizeRegister(reg)
	r.intents = nil
	return nil
}

// Stop ends the recording and stores it. It returns the register written,
// or 0 if nothing was being recorded. An empty recording clears the
// register, as "qaq" does in Vim.
func (r *Recorder) Stop() rune {
	if !r.recording {
		return 0
	}
	r.recording = false
	reg := r.register
	if r.appending {
		r.registers[reg] = append(r.registers[reg], r.intents...)
	} else {
		r.registers[reg] = r.intents
	}
	if len(r.registers[reg]) == 0 {
		delete(r.registers, reg)
	}
	r.intents = nil
	return reg
}

// IsRecording returns true if currently recording.
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// Register returns the register being recorded to, or 0 if not recording.
func (r *Recorder) Register() rune {
	if r.recording {
		return r.register
	}
	return 0
}

// Record adds an intent to the current recording. Macro toggles are never
// recorded. Does nothing if not recording.
func (r *Recorder) Record(it intent.Intent) {
	if r.recording && !it.IsMacroToggle() {
		r.intents = append(r.intents, it)
	}
}

// Get returns a copy of the macro stored in reg.
func (r *Recorder) Get(reg rune) []intent.Intent {
	return slices.Clone(r.registers[NormalizeRegister(reg)])
}

// Set replaces the macro in reg. An empty slice clears it.
func (r *Recorder) Set(reg rune, intents []intent.Intent) error {
	if !IsValidRegister(reg) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, reg)
	}
	reg = NormalizeRegister(reg)
	if len(intents) == 0 {
		delete(r.registers, reg)
		return nil
	}
	r.registers[reg] = slices.Clone(intents)
	return nil
}

// HasMacro returns true if the register contains a macro.
func (r *Recorder) HasMacro(reg rune) bool {
	return len(r.registers[NormalizeRegister(reg)]) > 0
}

// Registers returns the registers holding macros, sorted.
func (r *Recorder) Registers() []rune {
	out := make([]rune, 0, len(r.registers))
	for reg := range r.registers {
		out = append(out, reg)
	}
	slices.Sort(out)
	return out
}

// LastPlayed returns the register "@@" replays, or 0.
func (r *Recorder) LastPlayed() rune {
	return r.lastPlayed
}

// SetLastPlayed records the register most recently played.
func (r *Recorder) SetLastPlayed(reg rune) {
	r.lastPlayed = NormalizeRegister(reg)
}
