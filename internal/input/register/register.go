// Package register stores yanked, deleted and inserted text in Vim's named,
// numbered and special registers.
package register

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Errors returned by Store.
var (
	ErrReadOnly    = errors.New("register: read-only register")
	ErrInvalidName = errors.New("register: invalid register name")
)

// Kind is the shape of register content.
type Kind uint8

const (
	Charwise Kind = iota
	Linewise
	Blockwise
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Charwise:
		return "charwise"
	case Linewise:
		return "linewise"
	case Blockwise:
		return "blockwise"
	default:
		return "unknown"
	}
}

// Register holds text and its shape. Linewise content ends with a newline.
// Blockwise content holds one line of the block per line.
type Register struct {
	Content string
	Kind    Kind
}

// IsEmpty reports whether the register holds no text.
func (r Register) IsEmpty() bool {
	return r.Content == ""
}

// Lines splits linewise or blockwise content into its lines.
func (r Register) Lines() []string {
	s := r.Content
	if r.Kind == Linewise {
		s = strings.TrimSuffix(s, "\n")
	}
	return strings.Split(s, "\n")
}

// Class categorizes register names.
type Class uint8

const (
	ClassUnnamed Class = iota
	ClassNamed
	ClassNumbered
	ClassSmallDelete
	ClassBlackHole
	ClassClipboard
	ClassPrimary
	ClassSearch
	ClassExpression
	ClassLastInserted
	ClassCurrentFile
	ClassAlternateFile
	ClassLastCommand
)

// Special register names.
const (
	Unnamed       = '"'
	LastYank      = '0'
	SmallDelete   = '-'
	BlackHole     = '_'
	Clipboard     = '+'
	Primary       = '*'
	Search        = '/'
	Expression    = '='
	LastInserted  = '.'
	CurrentFile   = '%'
	AlternateFile = '#'
	LastCommand   = ':'
)

// ClassOf returns the class of a register name.
func ClassOf(name rune) (Class, bool) {
	switch {
	case name == Unnamed:
		return ClassUnnamed, true
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return ClassNamed, true
	case name >= '0' && name <= '9':
		return ClassNumbered, true
	}
	switch name {
	case SmallDelete:
		return ClassSmallDelete, true
	case BlackHole:
		return ClassBlackHole, true
	case Clipboard:
		return ClassClipboard, true
	case Primary:
		return ClassPrimary, true
	case Search:
		return ClassSearch, true
	case Expression:
		return ClassExpression, true
	case LastInserted:
		return ClassLastInserted, true
	case CurrentFile:
		return ClassCurrentFile, true
	case AlternateFile:
		return ClassAlternateFile, true
	case LastCommand:
		return ClassLastCommand, true
	}
	return ClassUnnamed, false
}

// IsValid returns true if the register name is valid.
func IsValid(name rune) bool {
	_, ok := ClassOf(name)
	return ok
}

// IsReadOnly reports whether Set refuses name. Read-only registers are
// written by the editor through the SetLast* methods.
func IsReadOnly(name rune) bool {
	switch name {
	case LastInserted, CurrentFile, AlternateFile, LastCommand, Search:
		return true
	}
	return false
}

// ClipboardProvider abstracts system clipboard access for "+ and "*.
type ClipboardProvider interface {
	Get() (string, error)
	Set(content string) error
}

// Store holds every register. It is not safe for concurrent use.
type Store struct {
	registers map[rune]Register
	clipboard ClipboardProvider
}

// Option configures a Store.
type Option func(*Store)

// WithClipboard routes "+ and "* through p.
func WithClipboard(p ClipboardProvider) Option {
	return func(s *Store) {
		s.clipboard = p
	}
}

// NewStore creates an empty register store.
func NewStore(opts ...Option) *Store {
	s := &Store{registers: make(map[rune]Register)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetClipboard replaces the clipboard provider. nil keeps "+ and "* in
// memory.
func (s *Store) SetClipboard(p ClipboardProvider) {
	s.clipboard = p
}

// Get returns the register's content. Unset, unknown and black-hole
// registers read as empty.
func (s *Store) Get(name rune) Register {
	name = unicode.ToLower(name)
	if (name == Clipboard || name == Primary) && s.clipboard != nil {
		content, err := s.clipboard.Get()
		if err != nil {
			return Register{}
		}
		kind := Charwise
		if strings.HasSuffix(content, "\n") {
			kind = Linewise
		}
		return Register{Content: content, Kind: kind}
	}
	return s.registers[name]
}

// Set writes a register. An uppercase letter appends to its lowercase
// register. Writing the black hole register discards the text.
func (s *Store) Set(name rune, r Register) error {
	if !IsValid(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if IsReadOnly(name) {
		return fmt.Errorf("%w: %q", ErrReadOnly, name)
	}
	return s.write(name, r)
}

func (s *Store) write(name rune, r Register) error {
	switch {
	case name == BlackHole:
		return nil
	case name >= 'A' && name <= 'Z':
		lower := unicode.ToLower(name)
		s.registers[lower] = appendRegister(s.registers[lower], r)
		return nil
	case (name == Clipboard || name == Primary) && s.clipboard != nil:
		if err := s.clipboard.Set(r.Content); err != nil {
			return fmt.Errorf("register %q: %w", name, err)
		}
		return nil
	}
	s.registers[name] = r
	return nil
}

func appendRegister(old, r Register) Register {
	switch {
	case old.IsEmpty():
		return r
	case old.Kind == Linewise && r.Kind != Linewise:
		return Register{Content: old.Content + r.Content + "\n", Kind: Linewise}
	case old.Kind != Linewise && r.Kind == Linewise:
		return Register{Content: old.Content + "\n" + r.Content, Kind: Linewise}
	}
	return Register{Content: old.Content + r.Content, Kind: old.Kind}
}

// Yank stores yanked text. The unnamed register and register 0 receive it
// unless a named or clipboard register was given, which then receives it
// along with the unnamed register.
func (s *Store) Yank(name rune, r Register) error {
	return s.store(name, r, func() {
		s.registers[LastYank] = r
	})
}

// Delete stores deleted text. Without a named register, a small charwise
// delete (within one line) goes to "- and anything else shifts "1 through
// "9 down and lands in "1.
func (s *Store) Delete(name rune, r Register, small bool) error {
	return s.store(name, r, func() {
		if small {
			s.registers[SmallDelete] = r
			return
		}
		for i := '9'; i > '1'; i-- {
			s.registers[i] = s.registers[i-1]
		}
		s.registers['1'] = r
	})
}

func (s *Store) store(name rune, r Register, fallback func()) error {
	if name == BlackHole {
		return nil
	}
	if name == 0 || name == Unnamed {
		fallback()
		s.registers[Unnamed] = r
		return nil
	}
	if err := s.Set(name, r); err != nil {
		return err
	}
	s.registers[Unnamed] = s.Get(name)
	return nil
}

// SetLastInserted updates ". with the text of the last insert session.
func (s *Store) SetLastInserted(text string) {
	s.registers[LastInserted] = Register{Content: text}
}

// SetLastCommand updates ": with the last executed Ex command.
func (s *Store) SetLastCommand(cmd string) {
	s.registers[LastCommand] = Register{Content: cmd}
}

// SetLastSearch updates "/ with the last search pattern.
func (s *Store) SetLastSearch(pattern string) {
	s.registers[Search] = Register{Content: pattern}
}

// SetFileNames updates "% and "#.
func (s *Store) SetFileNames(current, alternate string) {
	s.registers[CurrentFile] = Register{Content: current}
	s.registers[AlternateFile] = Register{Content: alternate}
}

// Entry is one listed register.
type Entry struct {
	Name     rune
	Register Register
}

// List returns every non-empty register in the order :registers prints
// them.
func (s *Store) List() []Entry {
	var out []Entry
	for name, r := range s.registers {
		if !r.IsEmpty() {
			out = append(out, Entry{Name: name, Register: r})
		}
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return listOrder(a.Name) - listOrder(b.Name)
	})
	return out
}

// listOrder sorts the unnamed register first, then digits, letters and the
// special registers.
func listOrder(name rune) int {
	switch {
	case name == Unnamed:
		return 0
	case name >= '0' && name <= '9':
		return 1 + int(name-'0')
	case name >= 'a' && name <= 'z':
		return 20 + int(name-'a')
	}
	return 100 + int(name)
}
