package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// field is a single-line text input.
type field struct {
	value  []rune
	masked bool
}

func (f *field) String() string {
	return string(f.value)
}

func (f *field) Set(s string) {
	f.value = []rune(s)
}

func (f *field) Reset() {
	f.value = nil
}

// display renders the value, masked fields as asterisks.
func (f *field) display() string {
	if f.masked {
		return strings.Repeat("*", len(f.value))
	}
	return string(f.value)
}

// handleKey applies an editing key and reports whether it was one.
func (f *field) handleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		f.value = append(f.value, msg.Runes...)
		return true
	case tea.KeySpace:
		f.value = append(f.value, ' ')
		return true
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			f.value = f.value[:len(f.value)-1]
		}
		return true
	case tea.KeyCtrlU:
		f.value = nil
		return true
	}
	return false
}
