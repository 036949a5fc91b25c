package vim

import "github.com/dshills/vimcore/internal/engine/textobject"

// textObjects maps the key after "i" or "a" to a text object.
var textObjects = map[rune]textobject.Kind{
	'w':  textobject.Word,
	'W':  textobject.BigWord,
	's':  textobject.Sentence,
	'p':  textobject.Paragraph,
	'"':  textobject.DoubleQuote,
	'\'': textobject.SingleQuote,
	'`':  textobject.BackQuote,
	'(':  textobject.Paren,
	')':  textobject.Paren,
	'b':  textobject.Paren,
	'[':  textobject.Bracket,
	']':  textobject.Bracket,
	'{':  textobject.Brace,
	'}':  textobject.Brace,
	'B':  textobject.Brace,
	'<':  textobject.Angle,
	'>':  textobject.Angle,
	't':  textobject.Tag,
	'a':  textobject.Argument,
}

// TextObjectForKey returns the text object for the key after a scope key.
func TextObjectForKey(r rune) (textobject.Kind, bool) {
	k, ok := textObjects[r]
	return k, ok
}

// ScopeForKey maps 'i' to Inner and 'a' to Around.
func ScopeForKey(r rune) (textobject.Scope, bool) {
	switch r {
	case 'i':
		return textobject.Inner, true
	case 'a':
		return textobject.Around, true
	}
	return textobject.Inner, false
}
