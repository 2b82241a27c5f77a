package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinderCyclesMatches(t *testing.T) {
	b := NewBinder(NewRegistry(newFakeClock()))
	require.NoError(t, b.Register("p", "x", []string{"on", "off"}))

	var got []string
	for i := 0; i < 3; i++ {
		match, ok := b.Complete("x", "o")
		require.True(t, ok)
		got = append(got, match)
	}
	assert.Equal(t, []string{"on", "off", "on"}, got)
}

func TestBinderUnknownKey(t *testing.T) {
	b := NewBinder(NewRegistry(newFakeClock()))
	_, ok := b.Complete("missing", "a")
	assert.False(t, ok)
}

func TestBinderCompleteLine(t *testing.T) {
	b := NewBinder(NewRegistry(newFakeClock()))
	require.NoError(t, b.Register("p", "/beep", []string{"on", "off"}))
	require.NoError(t, b.Register("p", "/weather", []string{"london", "lisbon"}))

	line, ok := b.CompleteLine("/weather l")
	require.True(t, ok)
	assert.Equal(t, "/weather london", line)

	line, ok = b.CompleteLine("/weather l")
	require.True(t, ok)
	assert.Equal(t, "/weather lisbon", line)

	_, ok = b.CompleteLine("/weather x")
	assert.False(t, ok)
	_, ok = b.CompleteLine("/weatherl")
	assert.False(t, ok)
	_, ok = b.CompleteLine("hello")
	assert.False(t, ok)
}

func TestBinderLongestKeyWins(t *testing.T) {
	b := NewBinder(NewRegistry(newFakeClock()))
	require.NoError(t, b.Register("p", "/w", []string{"set"}))
	require.NoError(t, b.Register("p", "/w set", []string{"london"}))

	line, ok := b.CompleteLine("/w set l")
	require.True(t, ok)
	assert.Equal(t, "/w set london", line)
	assert.Equal(t, []string{"/w set", "/w"}, b.Keys())
}

func TestBinderResetRestartsRotation(t *testing.T) {
	b := NewBinder(NewRegistry(newFakeClock()))
	require.NoError(t, b.Register("p", "x", []string{"on", "off"}))

	first, _ := b.Complete("x", "o")
	b.ResetAll()
	again, _ := b.Complete("x", "o")
	assert.Equal(t, first, again)

	b.Complete("x", "o")
	b.Reset("x")
	again, _ = b.Complete("x", "o")
	assert.Equal(t, "on", again)
}

func TestBinderReplaceRestartsRotation(t *testing.T) {
	b := NewBinder(NewRegistry(newFakeClock()))
	require.NoError(t, b.Register("p", "x", []string{"on", "off"}))
	b.Complete("x", "o")

	require.NoError(t, b.Register("p", "x", []string{"open", "on"}))
	match, ok := b.Complete("x", "o")
	require.True(t, ok)
	assert.Equal(t, "open", match)
}
