package macro

// Macros live in the letter and digit registers. An uppercase letter names
// the register of its lowercase form; recording into it appends.

// canonical returns the register reg names and whether it can hold a macro.
func canonical(reg rune) (rune, bool) {
	switch {
	case reg >= 'a' && reg <= 'z', reg >= '0' && reg <= '9':
		return reg, true
	case reg >= 'A' && reg <= 'Z':
		return reg + ('a' - 'A'), true
	}
	return 0, false
}

// IsValidRegister reports whether a macro can be recorded into reg.
func IsValidRegister(reg rune) bool {
	_, ok := canonical(reg)
	return ok
}

// NormalizeRegister returns the lowercase register reg names, or 0 when
// reg cannot hold a macro.
func NormalizeRegister(reg rune) rune {
	r, _ := canonical(reg)
	return r
}

func appends(reg rune) bool {
	return reg >= 'A' && reg <= 'Z'
}
