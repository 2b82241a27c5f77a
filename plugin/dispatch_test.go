package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchEchoScenario(t *testing.T) {
	r := NewRegistry(newFakeClock())
	d := NewDispatcher(r)

	cb := newRecorder()
	require.NoError(t, r.RegisterCommand(CommandSpec{
		Name:     "/echo",
		MinArgs:  1,
		MaxArgs:  1,
		Usage:    "/echo <text>",
		Callback: cb,
	}))

	cont, err := d.Dispatch("/echo", []string{})
	assert.True(t, cont)
	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Equal(t, "/echo <text>", usageErr.Usage)
	assert.Equal(t, 0, usageErr.Got)
	assert.Empty(t, cb.calls)

	cont, err = d.Dispatch("/echo", []string{"hi"})
	require.NoError(t, err)
	assert.True(t, cont)
	assert.Equal(t, [][]string{{"hi"}}, cb.calls)
}

func TestDispatchArityBounds(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		max     int
		argc    int
		invoked bool
	}{
		{"below min", 2, 3, 1, false},
		{"at min", 2, 3, 2, true},
		{"at max", 2, 3, 3, true},
		{"above max", 2, 3, 4, false},
		{"zero args allowed", 0, 0, 0, true},
		{"zero args exceeded", 0, 0, 1, false},
		{"unbounded many", 1, Unbounded, 12, true},
		{"unbounded below min", 1, Unbounded, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry(newFakeClock())
			d := NewDispatcher(r)
			cb := newRecorder()
			require.NoError(t, r.RegisterCommand(CommandSpec{
				Name: "/cmd", MinArgs: tt.min, MaxArgs: tt.max, Usage: "/cmd ...", Callback: cb,
			}))

			argv := make([]string, tt.argc)
			for i := range argv {
				argv[i] = string(rune('a' + i))
			}
			_, err := d.Dispatch("/cmd", argv)

			if tt.invoked {
				require.NoError(t, err)
				require.Len(t, cb.calls, 1)
				assert.Equal(t, len(argv), len(cb.calls[0]))
			} else {
				var usageErr *UsageError
				assert.ErrorAs(t, err, &usageErr)
				assert.Empty(t, cb.calls)
			}
		})
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	d := NewDispatcher(NewRegistry(newFakeClock()))

	cont, err := d.Dispatch("/nope", nil)
	assert.True(t, cont)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestDispatchReturnsContinueSignal(t *testing.T) {
	r := NewRegistry(newFakeClock())
	d := NewDispatcher(r)

	cb := newRecorder()
	cb.cont = false
	require.NoError(t, r.RegisterCommand(CommandSpec{Name: "/bye", MaxArgs: 0, Callback: cb}))

	cont, err := d.Dispatch("/bye", nil)
	require.NoError(t, err)
	assert.False(t, cont)
}

func TestDispatchIsolatesCallbackFailure(t *testing.T) {
	r := NewRegistry(newFakeClock())
	d := NewDispatcher(r)

	boom := errors.New("boom")
	require.NoError(t, r.RegisterCommand(CommandSpec{
		Name: "/fail", MaxArgs: Unbounded, Owner: "bad",
		Callback: CallbackFunc(func([]string) (bool, error) { return false, boom }),
	}))
	require.NoError(t, r.RegisterCommand(CommandSpec{
		Name: "/panic", MaxArgs: Unbounded, Owner: "bad",
		Callback: CallbackFunc(func([]string) (bool, error) { panic("oops") }),
	}))

	cont, err := d.Dispatch("/fail", nil)
	assert.True(t, cont, "a failing command never stops the host")
	var cbErr *CallbackError
	require.ErrorAs(t, err, &cbErr)
	assert.Equal(t, "bad", cbErr.Owner)
	assert.ErrorIs(t, err, boom)

	cont, err = d.Dispatch("/panic", nil)
	assert.True(t, cont)
	assert.ErrorIs(t, err, ErrCallbackPanic)
}

func TestDispatchAfterRemovalDoesNotInvoke(t *testing.T) {
	r := NewRegistry(newFakeClock())
	d := NewDispatcher(r)

	cb := newRecorder()
	require.NoError(t, r.RegisterCommand(CommandSpec{Name: "/gone", MaxArgs: Unbounded, Callback: cb}))
	r.RemoveCommand("/gone")

	_, err := d.Dispatch("/gone", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Empty(t, cb.calls)
}
