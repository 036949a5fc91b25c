// Package macro records intents into registers and replays them.
//
// Recording captures resolved intents, not keys, so a macro replays the
// same commands regardless of the mode it is played from.
//
//	rec := macro.NewRecorder()
//	rec.Start('a')       // qa
//	rec.Record(it)       // every dispatched intent
//	rec.Stop()           // q
//
//	player := macro.NewPlayer(rec, 100)
//	player.Play('a', 3, dispatch) // 3@a
//
// Playback is synchronous. A macro may play other macros (or itself); the
// Player bounds the nesting depth instead of refusing re-entry.
//
// Registers are a-z and 0-9. An uppercase letter appends to the lowercase
// register when recording, as in Vim. Neither type is safe for concurrent
// use; both belong to the goroutine that dispatches intents.
package macro
