package vim

// Operator is a mutation applied over a motion, text object or visual range.
type Operator uint8

const (
	OpNone Operator = iota
	OpDelete
	OpYank
	OpChange
	OpIndent
	OpUnindent
	OpLowercase
	OpUppercase
	OpToggleCase
	OpFormat

	opCount
)

var operatorNames = [...]string{
	OpNone:       "none",
	OpDelete:     "delete",
	OpYank:       "yank",
	OpChange:     "change",
	OpIndent:     "indent",
	OpUnindent:   "unindent",
	OpLowercase:  "lowercase",
	OpUppercase:  "uppercase",
	OpToggleCase: "toggleCase",
	OpFormat:     "format",
}

// operatorKeys holds the Vim notation that triggers each operator.
var operatorKeys = [...]string{
	OpDelete:     "d",
	OpYank:       "y",
	OpChange:     "c",
	OpIndent:     ">",
	OpUnindent:   "<",
	OpLowercase:  "gu",
	OpUppercase:  "gU",
	OpToggleCase: "g~",
	OpFormat:     "gq",
}

// String returns the operator name.
func (o Operator) String() string {
	if int(o) < len(operatorNames) {
		return operatorNames[o]
	}
	return "unknown"
}

// Keys returns the key sequence that triggers the operator.
func (o Operator) Keys() string {
	if o == OpNone || int(o) >= len(operatorKeys) {
		return ""
	}
	return operatorKeys[o]
}

// Operators returns every operator except OpNone.
func Operators() []Operator {
	out := make([]Operator, 0, opCount-1)
	for o := OpDelete; o < opCount; o++ {
		out = append(out, o)
	}
	return out
}

// ChangesText reports whether the operator modifies the buffer.
func (o Operator) ChangesText() bool {
	return o != OpNone && o != OpYank
}

// EntersInsert reports whether the operator leaves the editor in Insert mode.
func (o Operator) EntersInsert() bool {
	return o == OpChange
}

// WritesRegister reports whether the operator stores the covered text in a
// register.
func (o Operator) WritesRegister() bool {
	return o == OpDelete || o == OpYank || o == OpChange
}

// ForcesLinewise reports whether the operator always works on whole lines.
func (o Operator) ForcesLinewise() bool {
	return o == OpIndent || o == OpUnindent || o == OpFormat
}

// operators maps single-key operators.
var operators = map[rune]Operator{
	'd': OpDelete,
	'c': OpChange,
	'y': OpYank,
	'>': OpIndent,
	'<': OpUnindent,
	'=': OpFormat,
}

// gOperators maps g-prefixed operators.
var gOperators = map[rune]Operator{
	'~': OpToggleCase,
	'u': OpLowercase,
	'U': OpUppercase,
	'q': OpFormat,
	'w': OpFormat,
}

// OperatorForKey returns the operator a key starts.
func OperatorForKey(r rune) (Operator, bool) {
	op, ok := operators[r]
	return op, ok
}

// GOperatorForKey returns the operator a key after "g" starts.
func GOperatorForKey(r rune) (Operator, bool) {
	op, ok := gOperators[r]
	return op, ok
}

// IsDoubled reports whether r repeated after the operator selects whole
// lines: "dd", "yy", ">>", "guu", "gUU", "g~~", "gqq".
func (o Operator) IsDoubled(r rune) bool {
	k := o.Keys()
	if k == "" {
		return false
	}
	last := rune(k[len(k)-1])
	return r == last
}

// VisualOperatorForKey maps operator keys valid in Visual mode, including
// the single-key case operators "u", "U" and "~".
func VisualOperatorForKey(r rune) (Operator, bool) {
	switch r {
	case 'u':
		return OpLowercase, true
	case 'U':
		return OpUppercase, true
	case '~':
		return OpToggleCase, true
	case 'x', 'X', 'D':
		return OpDelete, true
	case 's', 'S', 'C', 'R':
		return OpChange, true
	case 'Y':
		return OpYank, true
	}
	return OperatorForKey(r)
}
