// Package expr evaluates the expression register ("=") and ":lua" command
// lines with an embedded, sandboxed Lua interpreter.
//
// An Evaluator owns one Lua state. Expressions are evaluated as
// "return <expr>" and the result is converted to register text: strings
// as-is, integral numbers without a fraction, booleans as "true" or
// "false" and nil as the empty string. Tables and functions have no text
// form and are rejected with ErrUnsupportedValue.
//
// The state opens only the base, table, string and math libraries. File
// loading, dynamic code loading and require are removed, and print writes
// to a buffer that Exec returns instead of stdout. Host functions are
// exposed to scripts through the "editor" table with Define.
//
// Every call runs under a deadline (WithTimeout) so a runaway loop cannot
// stall the editor. An Evaluator is safe for concurrent use; calls are
// serialized.
package expr
