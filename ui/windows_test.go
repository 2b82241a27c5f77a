package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termchat/ui/theme"
)

func TestNewWindowTableHasConsole(t *testing.T) {
	table := NewWindowTable()

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 1, table.CurrentNumber())
	assert.Equal(t, KindConsole, table.Current().Kind())
	assert.Equal(t, "Console", table.Current().Title())

	_, ok := table.FindWindow("")
	assert.False(t, ok, "the console is not reachable by tag")
}

func TestPluginWindowLifecycle(t *testing.T) {
	table := NewWindowTable()

	w := table.NewPluginWindow("weather")
	found, ok := table.FindWindow("weather")
	require.True(t, ok)
	assert.Same(t, w, found)

	num, ok := table.WindowNumber(w)
	require.True(t, ok)
	assert.Equal(t, 2, num)

	again := table.NewPluginWindow("weather")
	assert.Same(t, w, again)
	assert.Equal(t, 2, table.Len())
}

func TestSwitchWindowClearsActivity(t *testing.T) {
	table := NewWindowTable()
	w := table.NewPluginWindow("weather")

	table.PrintLine(w, theme.Text, "sunny")
	table.MarkActive(2)
	assert.Equal(t, []int{2}, table.ActiveNumbers())
	assert.Equal(t, 1, w.(*Window).Unread())

	redraws := table.Redraws()
	require.True(t, table.SwitchWindow(2))
	assert.True(t, table.IsCurrent(w))
	assert.Empty(t, table.ActiveNumbers())
	assert.Greater(t, table.Redraws(), redraws)

	table.PrintLine(w, theme.Text, "cloudy")
	assert.Equal(t, 0, w.(*Window).Unread(), "lines in the active window are read")
	assert.False(t, table.SwitchWindow(9))
}

func TestMarkActiveIgnoresCurrentWindow(t *testing.T) {
	table := NewWindowTable()
	table.MarkActive(1)
	table.MarkActive(5)
	assert.Empty(t, table.ActiveNumbers())
}

func TestNextPrevWrap(t *testing.T) {
	table := NewWindowTable()
	table.NewPluginWindow("a")
	table.NewPluginWindow("b")

	table.Next()
	assert.Equal(t, 2, table.CurrentNumber())
	table.Next()
	table.Next()
	assert.Equal(t, 1, table.CurrentNumber())
	table.Prev()
	assert.Equal(t, 3, table.CurrentNumber())
}

func TestCloseRenumbers(t *testing.T) {
	table := NewWindowTable()
	a := table.NewPluginWindow("a")
	b := table.NewPluginWindow("b")
	require.True(t, table.SwitchWindow(3))

	closed, err := table.Close(2)
	require.NoError(t, err)
	assert.Same(t, a, closed)

	num, ok := table.WindowNumber(b)
	require.True(t, ok)
	assert.Equal(t, 2, num)
	assert.True(t, table.IsCurrent(b), "the active window survives renumbering")

	_, ok = table.WindowNumber(a)
	assert.False(t, ok)
	_, ok = table.FindWindow("a")
	assert.False(t, ok)
}

func TestCloseActiveWindowReturnsToConsole(t *testing.T) {
	table := NewWindowTable()
	table.NewPluginWindow("a")
	require.True(t, table.SwitchWindow(2))

	_, err := table.Close(2)
	require.NoError(t, err)
	assert.Equal(t, 1, table.CurrentNumber())
}

func TestCloseErrors(t *testing.T) {
	table := NewWindowTable()

	_, err := table.Close(1)
	assert.ErrorIs(t, err, ErrCloseConsole)
	_, err = table.Close(4)
	assert.ErrorIs(t, err, ErrNoSuchWindow)
}

func TestChatWindows(t *testing.T) {
	table := NewWindowTable()

	w, err := table.NewChatWindow("bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", w.Title())
	assert.Equal(t, "", w.Tag())

	_, err = table.NewChatWindow("bob@example.com")
	assert.ErrorIs(t, err, ErrDuplicateChat)

	found, ok := table.FindChat("bob@example.com")
	require.True(t, ok)
	assert.Same(t, w, found)
}

func TestConsolePrint(t *testing.T) {
	table := NewWindowTable()
	redraws := table.Redraws()

	table.ConsolePrint(theme.Error, "oops")
	line, ok := table.Console().LastLine()
	require.True(t, ok)
	assert.Equal(t, "oops", line.Text)
	assert.Equal(t, theme.Error, line.Attr)
	assert.Equal(t, redraws+1, table.Redraws())
}

func TestScrollbackIsBounded(t *testing.T) {
	table := NewWindowTable()
	for i := 0; i < maxScrollback+10; i++ {
		table.ConsolePrint(theme.Text, "line")
	}
	assert.Len(t, table.Console().Lines(), maxScrollback)
}

func TestSummary(t *testing.T) {
	table := NewWindowTable()
	w := table.NewPluginWindow("weather")
	table.PrintLine(w, theme.Text, "sunny")
	_, err := table.NewChatWindow("bob@example.com")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"1: Console",
		"2: weather (plugin), 1 unread",
		"3: bob@example.com (chat)",
	}, table.Summary())
}
