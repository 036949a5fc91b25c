package dispatcher

import (
	"slices"

	"github.com/dshills/vimcore/internal/input/intent"
	"github.com/dshills/vimcore/internal/input/register"
)

func (d *Dispatcher) macroStart(st *EditorState, it intent.Intent) Result {
	if err := st.Macros.Start(it.Register); err != nil {
		return Error(err)
	}
	st.Mode.Recording = true
	return SuccessWithMessage("recording @" + string(st.Macros.Register()))
}

func (d *Dispatcher) macroStop(st *EditorState) Result {
	st.Mode.Recording = false
	if st.Macros.Stop() == 0 {
		return NoOp()
	}
	return Success()
}

// macroPlay replays a macro register Count times. "@:" repeats the last
// Ex command line instead.
func (d *Dispatcher) macroPlay(st *EditorState, it intent.Intent) Result {
	if it.Register == register.LastCommand {
		if st.lastEx == "" {
			return Error(ErrNoPreviousCommand)
		}
		var res Result
		for range it.N() {
			if res = d.exCommand(st, st.lastEx); res.IsError() {
				break
			}
		}
		return res
	}

	err := st.player.Play(it.Register, it.N(), func(x intent.Intent) error {
		if res := d.Dispatch(st, x); res.IsError() {
			return res.Error
		}
		return nil
	})
	if err != nil {
		return Error(err)
	}
	return Success()
}

// repeatForm returns what "." should replay for a repeatable intent, or
// nil to keep the previous change. Changes are remembered when their
// insert session ends instead.
func (d *Dispatcher) repeatForm(st *EditorState, it intent.Intent) []intent.Intent {
	if it.StartsSession() {
		return nil
	}
	if st.Mode.Mode.IsVisual() {
		form, ok := visualForm(st, it)
		if !ok {
			return nil
		}
		return []intent.Intent{form}
	}
	return []intent.Intent{it}
}

// repeat replays the last change ("."). A count replaces the count of the
// change and is remembered for the next ".".
func (d *Dispatcher) repeat(st *EditorState, it intent.Intent) Result {
	if len(st.lastChange) == 0 {
		return NoOp()
	}
	if it.Count > 0 {
		st.lastChange[0].Count = it.Count
	}
	seq := slices.Clone(st.lastChange)

	st.repeating++
	defer func() { st.repeating-- }()
	for _, x := range seq {
		if res := d.Dispatch(st, x); res.IsError() {
			return res
		}
	}
	return Success()
}
