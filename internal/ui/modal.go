package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmDelete asks before a record is removed.
type confirmDelete struct {
	id    string
	title string
}

var _ Modal = confirmDelete{}

// Update confirms on y or Enter and cancels on n or Esc.
func (c confirmDelete) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		confirmed := confirmDeleteMsg{id: c.id, title: c.title}
		return c, func() tea.Msg { return confirmed }, true
	case key.Matches(keyMsg, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmDelete) message() string {
	return `Are you sure you want to delete the book "` + c.title + `"? This action cannot be undone.`
}

// View renders the dialog centered on screen.
func (c confirmDelete) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Confirm Delete"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(c.message()))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y/Enter: Delete  •  n/Esc: Cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2).
		Width(50)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
