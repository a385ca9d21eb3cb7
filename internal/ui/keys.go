package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Confirm    key.Binding
	Refresh    key.Binding

	// Routes
	Dashboard   key.Binding
	Manage      key.Binding
	ToggleRoute key.Binding

	// Filters
	Search       key.Binding
	NextGenre    key.Binding
	PrevGenre    key.Binding
	NextStatus   key.Binding
	ClearFilters key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Manage actions
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Forms
	NextField  key.Binding
	PrevField  key.Binding
	PrevOption key.Binding
	NextOption key.Binding
	Yes        key.Binding
	No         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refetch books"),
		),

		// Routes
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Dashboard"),
		),
		Manage: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Manage books"),
		),
		ToggleRoute: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Switch route"),
		),

		// Filters
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search title or author"),
		),
		NextGenre: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Next genre"),
		),
		PrevGenre: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "Previous genre"),
		),
		NextStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle status"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear filters"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "left"),
			key.WithHelp("[", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "right"),
			key.WithHelp("]", "Next page"),
		),

		// Manage actions
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add book"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit book"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "Delete book"),
		),

		// Forms
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		PrevOption: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous option"),
		),
		NextOption: key.NewBinding(
			key.WithKeys("right", " "),
			key.WithHelp("right", "Next option"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "Delete"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Manage, k.ToggleRoute},
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Search, k.NextGenre, k.PrevGenre, k.NextStatus, k.ClearFilters},
		{k.Add, k.Edit, k.Delete, k.Refresh},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
