// Package intent defines the closed set of editor intents.
//
// An Intent is what a key sequence means once the modal grammar has been
// applied: "move three words", "delete inside parentheses into register a",
// "enter Insert mode after the cursor". Intents are the only way input
// reaches editor state, so recording them is enough to replay a macro or
// repeat a change with ".", independent of the mode the keys were typed in.
//
// Intent is a comparable value. Fields beyond Kind are meaningful only for
// the kinds that document them.
package intent
