package vim

// MaxCount caps accumulated counts so arithmetic on them never overflows.
const MaxCount = 999_999

// Count accumulates a numeric prefix. The zero value holds no count.
type Count struct {
	value int
	set   bool
}

// Push adds a digit to the count. A leading '0' is not a count digit (it is
// the LineStart motion), so Push reports false for it.
func (c *Count) Push(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	if !c.set && r == '0' {
		return false
	}
	c.set = true
	c.value = min(c.value*10+int(r-'0'), MaxCount)
	return true
}

// IsSet reports whether any digit was typed.
func (c Count) IsSet() bool {
	return c.set
}

// Value returns the effective count, 1 when none was typed.
func (c Count) Value() int {
	if !c.set || c.value < 1 {
		return 1
	}
	return c.value
}

// Raw returns the typed count, or 0 when none was typed.
func (c Count) Raw() int {
	if !c.set {
		return 0
	}
	return c.value
}

// Reset clears the count.
func (c *Count) Reset() {
	*c = Count{}
}

// IsCountStart returns true if r could start a count.
func IsCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

// Multiply combines a pre-operator and post-operator count ("2d3w" deletes
// six words). Zero means "not typed" and counts as 1; the result is capped
// at MaxCount.
func Multiply(a, b int) int {
	a, b = max(a, 1), max(b, 1)
	if a > MaxCount/b {
		return MaxCount
	}
	return a * b
}
