package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyPress creates a key press message for testing.
func KeyPress(key string) tea.KeyMsg {
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune(key),
	}
}

// KeyEnter creates an enter key message.
func KeyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// KeyTab creates a tab key message.
func KeyTab() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyTab}
}

// KeyShiftTab creates a shift+tab key message.
func KeyShiftTab() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyShiftTab}
}

// KeyBackspace creates a backspace key message.
func KeyBackspace() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyBackspace}
}

// KeyType creates a message for a named control key such as tea.KeyCtrlE.
func KeyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// WindowSize creates a window size message for testing responsive layouts.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  width,
		Height: height,
	}
}

// Type converts text into one key message per rune.
func Type(text string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, tea.KeyMsg{
			Type:  tea.KeyRunes,
			Runes: []rune{r},
		})
	}
	return msgs
}

// Send applies messages to a model in order, discarding commands.
func Send(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

// Exec runs a command synchronously and returns every message it produces,
// flattening batches. Nil commands and nil messages are skipped.
func Exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, Exec(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}
