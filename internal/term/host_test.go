package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/config"
)

func runHost(t *testing.T, ctx context.Context, h *Host) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("host did not stop")
		return nil
	}
}

func injectRunes(s tcell.SimulationScreen, keys string) {
	for _, r := range keys {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
}

func TestHostQuits(t *testing.T) {
	s := newScreen(t, 20, 5)
	e := newEditor(t, "abc", 5)
	done := runHost(t, context.Background(), New(s, e))

	injectRunes(s, "x:q!")
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	require.NoError(t, wait(t, done))
	assert.True(t, e.Done())
	assert.Equal(t, "bc", e.Text())
}

func TestHostResizesEditor(t *testing.T) {
	s := newScreen(t, 20, 5)
	e := newEditor(t, "a\nb\nc\nd\ne\nf", 20)
	done := runHost(t, context.Background(), New(s, e))

	injectRunes(s, ":q")
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	require.NoError(t, wait(t, done))

	assert.Len(t, e.Snapshot().Lines, 4)
}

func TestHostCancel(t *testing.T) {
	s := newScreen(t, 20, 5)
	e := newEditor(t, "abc", 5)
	ctx, cancel := context.WithCancel(context.Background())
	done := runHost(t, ctx, New(s, e))

	cancel()
	assert.ErrorIs(t, wait(t, done), context.Canceled)
	assert.False(t, e.Done())
}

func TestHostAppliesReloads(t *testing.T) {
	s := newScreen(t, 20, 5)
	e := newEditor(t, "abc", 5)
	reloads := make(chan config.Reload)
	done := runHost(t, context.Background(), New(s, e, WithReloads(reloads)))

	cfg := config.Default()
	cfg.Terminal.LineNumbers = true
	cfg.Editor.ShiftWidth = 2
	reloads <- config.Reload{Path: "config.toml", Config: cfg}

	injectRunes(s, ":q")
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	require.NoError(t, wait(t, done))

	assert.Same(t, cfg, e.Config())
	assert.Equal(t, 2, e.State().Options.ShiftWidth)
}
