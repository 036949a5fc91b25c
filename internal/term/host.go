// Package term runs an app.Editor full screen on a tcell.Screen. It
// converts terminal key events to key.Events, draws editor snapshots and
// applies configuration reloads, all from one goroutine.
package term

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimcore/internal/app"
	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/logging"
)

// Host drives an editor from terminal events.
type Host struct {
	screen  tcell.Screen
	editor  *app.Editor
	log     *logging.Logger
	reloads <-chan config.Reload
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the host's logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Host) {
		h.log = logging.OrNop(l).WithComponent("term")
	}
}

// WithReloads applies configurations received on ch, typically from a
// config.Watcher.
func WithReloads(ch <-chan config.Reload) Option {
	return func(h *Host) {
		h.reloads = ch
	}
}

// New creates a host for an initialized screen.
func New(screen tcell.Screen, editor *app.Editor, opts ...Option) *Host {
	h := &Host{
		screen: screen,
		editor: editor,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Open creates and initializes the terminal screen.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// Run processes events until the editor quits or ctx is done. It returns
// ctx.Err() when cancelled and nil after a quit command.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	stop := make(chan struct{})
	defer close(stop)
	go h.poll(events, stop)

	h.resize()
	h.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case r, ok := <-h.reloads:
			if !ok {
				h.reloads = nil
				continue
			}
			h.log.Info("config reload from %s (err=%v)", r.Path, r.Err)
			h.editor.Reload(r)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			h.handle(ev)
			if h.editor.Done() {
				h.log.Info("editor quit")
				return nil
			}
		}
		h.draw()
	}
}

// poll forwards screen events until the screen is finalized or stop is
// closed.
func (h *Host) poll(events chan<- tcell.Event, stop <-chan struct{}) {
	defer close(events)
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

func (h *Host) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := ConvertKey(ev)
		if !ok {
			h.log.Debug("unmapped key %s", ev.Name())
			return
		}
		h.editor.HandleKey(k)

	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
	}
}

func (h *Host) resize() {
	_, height := h.screen.Size()
	h.editor.Resize(TextHeight(height))
}

func (h *Host) draw() {
	cfg := h.editor.Config()
	Draw(h.screen, h.editor.Snapshot(), DrawOptions{
		TabStop:     cfg.Editor.TabStop,
		LineNumbers: cfg.Terminal.LineNumbers,
		ShowMode:    cfg.Terminal.ShowMode,
	})
	h.screen.Show()
}
