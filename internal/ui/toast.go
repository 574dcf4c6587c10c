package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

// Toast is a temporary notification shown in place of the footer.
type Toast struct {
	message string
	kind    toastKind
	visible bool
	id      int
}

// Show displays message and returns the command that hides it again. A newer
// toast is not hidden by the timer of an older one.
func (t *Toast) Show(message string, kind toastKind) tea.Cmd {
	t.id++
	t.message = message
	t.kind = kind
	t.visible = true

	id := t.id
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastHideMsg{id: id}
	})
}

// Hide hides the toast if id still refers to the one being shown.
func (t *Toast) Hide(id int) {
	if id != t.id {
		return
	}
	t.visible = false
	t.message = ""
}

// Visible returns whether the toast is visible.
func (t Toast) Visible() bool {
	return t.visible
}

// Message returns the text currently shown.
func (t Toast) Message() string {
	return t.message
}

// View renders the toast centered on one line.
func (t Toast) View(theme Theme, width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	fg := theme.Text
	switch t.kind {
	case toastSuccess:
		fg = theme.Success
	case toastError:
		fg = theme.Danger
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(theme.SurfaceAlt)).
		Foreground(lipgloss.Color(fg)).
		Padding(0, 2).
		Bold(true)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(truncate(t.message, maxInt(width-4, 1))))
}
