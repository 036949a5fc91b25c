// Package dispatcher applies intents to editor state.
//
// The Dispatcher is the only writer of an EditorState. Every intent passes
// through the same pipeline, after pre-dispatch hooks had the chance to
// rewrite or cancel it:
//
//  1. While a macro is recording, the intent is captured, unless it starts
//     or stops the recording or a macro is being played back.
//  2. A repeatable change is remembered for "." and the cursor before it is
//     pushed onto the change list.
//  3. A jump pushes the cursor before it onto the jump list.
//  4. The intent is executed. A panic in a handler becomes an error result.
//  5. If the editor was in InsertNormal mode (entered with Ctrl-O) and the
//     intent did not itself change modes, the editor returns to Insert.
//
// Afterwards the cursor is clamped for the current mode, the viewport is
// scrolled to keep it visible and post-dispatch hooks run.
//
// # Operators
//
// An Operator intent resolves a range from its motion, text object or line
// count and applies the operator to it. A VisualOperator applies to the
// visual selection. Delete, Yank and Change write the addressed register;
// every text change is recorded in the undo history. Change and the insert
// commands open an insert session: everything typed until Escape is one undo
// step and is repeated as a unit by ".".
//
// # Collaborators
//
// Ex commands, regular-expression search, the expression register, embedded
// terminals and window commands are reached through the ExHandler, Searcher,
// Evaluator, Terminal and WindowHandler interfaces. Only the Searcher has a
// default implementation.
//
// # Usage
//
//	st := dispatcher.NewEditorState(buffer.NewFromString(text), dispatcher.DefaultOptions())
//	d := dispatcher.New(dispatcher.WithLogger(log), dispatcher.WithExHandler(ex))
//	res := d.Dispatch(st, intent.Move(motion.WordForward, 2))
//	snap := st.Snapshot()
package dispatcher
