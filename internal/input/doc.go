// Package input turns key events into intents.
//
// The Resolver is a mode-aware parser over the Vim grammar. It keeps no
// state of its own: counts, pending prefixes and the selected register live
// in the mode.State passed to every call, which the caller owns.
//
//	res := input.NewResolver()
//	for ev := range keys {
//	    r := res.Resolve(st.Mode, ev)
//	    switch r.Status {
//	    case input.Complete:
//	        disp.Dispatch(st, r.Intent)
//	    case input.Pending:
//	        // show r.Pending in the status line
//	    case input.Unhandled:
//	        // beep; r.Intent may still carry a cancel to dispatch
//	    }
//	}
//
// Digits accumulate a count ('0' alone is the LineStart motion). Prefix
// keys (g z m ' ` " @ q f F t T, and i/a before a text object) wait for
// one more key. Escape always cancels pending input.
package input
