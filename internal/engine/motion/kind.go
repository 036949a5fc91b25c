package motion

// Kind identifies a motion.
type Kind uint8

const (
	None Kind = iota

	Left
	Right
	Up
	Down

	LineStart
	LineEnd
	FirstNonBlank
	LastNonBlank
	Column
	NextLineStart
	PrevLineStart

	WordForward
	WordBackward
	WordEnd
	WordEndBackward
	BigWordForward
	BigWordBackward
	BigWordEnd
	BigWordEndBackward

	GotoLine
	GotoFirstLine
	GotoLastLine
	GotoPercent

	ParagraphForward
	ParagraphBackward

	ScreenTop
	ScreenMiddle
	ScreenBottom

	FindCharForward
	FindCharBackward
	TillCharForward
	TillCharBackward
	MatchBracket

	kindCount
)

var kindNames = [...]string{
	None:               "none",
	Left:               "left",
	Right:              "right",
	Up:                 "up",
	Down:               "down",
	LineStart:          "lineStart",
	LineEnd:            "lineEnd",
	FirstNonBlank:      "firstNonBlank",
	LastNonBlank:       "lastNonBlank",
	Column:             "column",
	NextLineStart:      "nextLineStart",
	PrevLineStart:      "prevLineStart",
	WordForward:        "wordForward",
	WordBackward:       "wordBackward",
	WordEnd:            "wordEnd",
	WordEndBackward:    "wordEndBackward",
	BigWordForward:     "bigWordForward",
	BigWordBackward:    "bigWordBackward",
	BigWordEnd:         "bigWordEnd",
	BigWordEndBackward: "bigWordEndBackward",
	GotoLine:           "gotoLine",
	GotoFirstLine:      "gotoFirstLine",
	GotoLastLine:       "gotoLastLine",
	GotoPercent:        "gotoPercent",
	ParagraphForward:   "paragraphForward",
	ParagraphBackward:  "paragraphBackward",
	ScreenTop:          "screenTop",
	ScreenMiddle:       "screenMiddle",
	ScreenBottom:       "screenBottom",
	FindCharForward:    "findCharForward",
	FindCharBackward:   "findCharBackward",
	TillCharForward:    "tillCharForward",
	TillCharBackward:   "tillCharBackward",
	MatchBracket:       "matchBracket",
}

// String returns the motion name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every defined motion kind except None.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Left; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Linewise reports whether an operator over this motion covers whole lines.
func (k Kind) Linewise() bool {
	switch k {
	case Up, Down, NextLineStart, PrevLineStart,
		GotoLine, GotoFirstLine, GotoLastLine, GotoPercent,
		ScreenTop, ScreenMiddle, ScreenBottom:
		return true
	}
	return false
}

// Inclusive reports whether an operator over this motion includes the
// grapheme the motion lands on.
func (k Kind) Inclusive() bool {
	switch k {
	case LineEnd, LastNonBlank,
		WordEnd, WordEndBackward, BigWordEnd, BigWordEndBackward,
		FindCharForward, TillCharForward, MatchBracket:
		return true
	}
	return false
}

// IsJump reports whether the motion records a jump-list entry.
func (k Kind) IsJump() bool {
	switch k {
	case GotoLine, GotoFirstLine, GotoLastLine, GotoPercent,
		ParagraphForward, ParagraphBackward,
		ScreenTop, ScreenMiddle, ScreenBottom,
		MatchBracket:
		return true
	}
	return false
}

// IsVertical reports whether the motion keeps the desired display column.
func (k Kind) IsVertical() bool {
	return k == Up || k == Down
}

// NeedsChar reports whether the motion takes a character argument.
func (k Kind) NeedsChar() bool {
	switch k {
	case FindCharForward, FindCharBackward, TillCharForward, TillCharBackward:
		return true
	}
	return false
}

// Reverse returns the find motion searching the opposite way, used by ",".
func (k Kind) Reverse() Kind {
	switch k {
	case FindCharForward:
		return FindCharBackward
	case FindCharBackward:
		return FindCharForward
	case TillCharForward:
		return TillCharBackward
	case TillCharBackward:
		return TillCharForward
	}
	return k
}
