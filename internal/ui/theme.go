package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/book"
)

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string // body
	Surface    string // header and command bar
	FocusBg    string // focused form row

	SelectionBg   string // selected card title
	SelectionText string

	BorderMuted string // help overlay
	BorderFocus string // add/edit form

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// Chip colors keyed by status and genre label.
	StatusColors map[string]string
	GenreColors  map[string]string
}

// Styles builds the lipgloss styles for t.
func (t Theme) Styles() Styles {
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Header: fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:   fg(t.Warning).Bold(true),

		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)).Bold(true),
		Focused:  fg(t.Accent).Background(lipgloss.Color(t.FocusBg)).Bold(true),

		statusColors: t.StatusColors,
		genreColors:  t.GenreColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// Styles holds the rendered styles of a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style

	// Selected and Focused carry their own background.
	Selected lipgloss.Style
	Focused  lipgloss.Style

	statusColors map[string]string
	genreColors  map[string]string
	background   string
	muted        string
}

// StatusStyle returns the chip style for a book status.
func (s Styles) StatusStyle(status book.Status) lipgloss.Style {
	return s.chip(s.statusColors[string(status)])
}

// GenreStyle returns the chip style for a genre.
func (s Styles) GenreStyle(genre book.Genre) lipgloss.Style {
	return s.chip(s.genreColors[string(genre)])
}

func (s Styles) chip(color string) lipgloss.Style {
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy whose text styles paint bgColor behind them.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	for _, style := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText,
		&out.Header, &out.Logo,
	} {
		*style = style.Background(bg)
	}
	return out
}

// Theme definitions

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	out := make([]string, len(themeOrder))
	copy(out, themeOrder)
	return out
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		BorderMuted: "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red

		StatusColors: map[string]string{
			string(book.StatusAvailable): "#81b29a", // green
			string(book.StatusIssued):    "#dbc074", // yellow
		},
		GenreColors: map[string]string{
			string(book.GenreFiction):        "#719cd6", // blue
			string(book.GenreNonFiction):     "#63cdcf", // cyan
			string(book.GenreMystery):        "#9d79d6", // magenta
			string(book.GenreScienceFiction): "#f4a261", // orange
			string(book.GenreRomance):        "#d67ad2", // pink
			string(book.GenreBiography):      "#71839b", // fg3
		},
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		FocusBg:    "#363646", // sumiInk5

		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite

		BorderMuted: "#54546D", // sumiInk6
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed

		StatusColors: map[string]string{
			string(book.StatusAvailable): "#98BB6C", // springGreen
			string(book.StatusIssued):    "#E6C384", // carpYellow
		},
		GenreColors: map[string]string{
			string(book.GenreFiction):        "#7E9CD8", // crystalBlue
			string(book.GenreNonFiction):     "#7FB4CA", // springBlue
			string(book.GenreMystery):        "#957FB8", // oniViolet
			string(book.GenreScienceFiction): "#FFA066", // surimiOrange
			string(book.GenreRomance):        "#D27E99", // sakuraPink
			string(book.GenreBiography):      "#727169", // fujiGray
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		FocusBg:    "#283548", // between slate-800 and slate-700

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		BorderMuted: "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500

		StatusColors: map[string]string{
			string(book.StatusAvailable): "#22c55e", // green-500
			string(book.StatusIssued):    "#f59e0b", // amber-500
		},
		GenreColors: map[string]string{
			string(book.GenreFiction):        "#0ea5e9", // sky-500
			string(book.GenreNonFiction):     "#14b8a6", // teal-500
			string(book.GenreMystery):        "#8b5cf6", // violet-500
			string(book.GenreScienceFiction): "#f97316", // orange-500
			string(book.GenreRomance):        "#ec4899", // pink-500
			string(book.GenreBiography):      "#64748b", // slate-500
		},
	}
}
