package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/book"
)

// formField identifies a field of the add/edit form in tab order.
type formField int

const (
	fieldTitle formField = iota
	fieldAuthor
	fieldGenre
	fieldYear
	fieldStatus
	fieldImage
	fieldCount
)

// formKeys maps each field to its validation key.
var formKeys = [fieldCount]string{
	fieldTitle:  "title",
	fieldAuthor: "author",
	fieldGenre:  "genre",
	fieldYear:   "publishedYear",
	fieldStatus: "status",
	fieldImage:  "imageUrl",
}

var formLabels = [fieldCount]string{
	fieldTitle:  "Title",
	fieldAuthor: "Author",
	fieldGenre:  "Genre",
	fieldYear:   "Published Year",
	fieldStatus: "Status",
	fieldImage:  "Image URL",
}

// bookForm is the add/edit modal.
type bookForm struct {
	id     string // empty when adding
	inputs [fieldCount]textinput.Model
	genre  book.Genre
	status book.Status
	focus  formField
	errors book.FieldErrors
	now    func() time.Time
}

var _ Modal = bookForm{}

// newBookForm opens the form pre-filled with d. An empty id adds a book.
func newBookForm(id string, d book.Draft, now func() time.Time) bookForm {
	f := bookForm{
		id:     id,
		genre:  d.Genre,
		status: d.Status,
		errors: book.FieldErrors{},
		now:    now,
	}

	f.inputs[fieldTitle] = newFormInput("e.g. Dune", 200)
	f.inputs[fieldAuthor] = newFormInput("e.g. Frank Herbert", 200)
	f.inputs[fieldYear] = newFormInput("e.g. 1965", 4)
	f.inputs[fieldImage] = newFormInput("https://... (optional)", 500)

	f.inputs[fieldTitle].SetValue(d.Title)
	f.inputs[fieldAuthor].SetValue(d.Author)
	if d.PublishedYear != 0 {
		f.inputs[fieldYear].SetValue(strconv.Itoa(d.PublishedYear))
	}
	f.inputs[fieldImage].SetValue(d.ImageURL)

	f.setFocus(fieldTitle)
	return f
}

func newFormInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.Width = 30
	return ti
}

// editing reports whether the form updates an existing record.
func (f bookForm) editing() bool {
	return f.id != ""
}

func (f bookForm) title() string {
	return ternary(f.editing(), "Edit Book", "Add New Book")
}

func (f bookForm) submitLabel() string {
	return ternary(f.editing(), "Update", "Add")
}

// isText reports whether field is edited through a text input.
func isText(field formField) bool {
	return field != fieldGenre && field != fieldStatus
}

func (f *bookForm) setFocus(field formField) {
	for i := range f.inputs {
		if isText(formField(i)) {
			f.inputs[i].Blur()
		}
	}
	f.focus = field
	if isText(field) {
		f.inputs[field].Focus()
	}
}

// draft builds the submitted record from the form values.
func (f bookForm) draft() book.Draft {
	year, _ := strconv.Atoi(strings.TrimSpace(f.inputs[fieldYear].Value()))
	return book.Draft{
		Title:         f.inputs[fieldTitle].Value(),
		Author:        f.inputs[fieldAuthor].Value(),
		Genre:         f.genre,
		PublishedYear: year,
		Status:        f.status,
		ImageURL:      f.inputs[fieldImage].Value(),
	}.Normalize()
}

// validate checks the form and reports the field errors to show.
func (f bookForm) validate() book.FieldErrors {
	errs := book.Validate(f.draft(), f.now())
	raw := strings.TrimSpace(f.inputs[fieldYear].Value())
	if _, err := strconv.Atoi(raw); raw != "" && err != nil {
		errs["publishedYear"] = "Invalid year"
	}
	return errs
}

// Update handles form input. Enter submits a valid form and closes it.
func (f bookForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateInput(msg)
	}

	switch {
	case key.Matches(keyMsg, keys.Escape):
		return f, nil, true

	case key.Matches(keyMsg, keys.Confirm):
		f.errors = f.validate()
		if len(f.errors) > 0 {
			f.setFocus(f.firstInvalid())
			return f, nil, false
		}
		submit := submitFormMsg{id: f.id, draft: f.draft()}
		return f, func() tea.Msg { return submit }, true

	case key.Matches(keyMsg, keys.NextField):
		f.setFocus((f.focus + 1) % fieldCount)
		return f, nil, false

	case key.Matches(keyMsg, keys.PrevField):
		f.setFocus((f.focus - 1 + fieldCount) % fieldCount)
		return f, nil, false
	}

	if !isText(f.focus) {
		step := 0
		switch {
		case key.Matches(keyMsg, keys.NextOption):
			step = 1
		case key.Matches(keyMsg, keys.PrevOption):
			step = -1
		}
		if step != 0 {
			f.cycleOption(step)
		}
		return f, nil, false
	}

	return f.updateInput(msg)
}

func (f bookForm) updateInput(msg tea.Msg) (Modal, tea.Cmd, bool) {
	if !isText(f.focus) {
		return f, nil, false
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	delete(f.errors, formKeys[f.focus])
	return f, cmd, false
}

// cycleOption moves the focused selector through its options.
func (f *bookForm) cycleOption(step int) {
	switch f.focus {
	case fieldGenre:
		genres := book.Genres()
		i := indexOf(genres, f.genre)
		if f.genre == "" {
			i = ternaryInt(step > 0, -1, 0)
		}
		f.genre = genres[nextIndex(len(genres), i, step)]
		delete(f.errors, "genre")
	case fieldStatus:
		statuses := book.Statuses()
		f.status = statuses[nextIndex(len(statuses), indexOf(statuses, f.status), step)]
		delete(f.errors, "status")
	}
}

// firstInvalid returns the first field, in tab order, with an error.
func (f bookForm) firstInvalid() formField {
	for field := fieldTitle; field < fieldCount; field++ {
		if _, bad := f.errors[formKeys[field]]; bad {
			return field
		}
	}
	return f.focus
}

// View renders the form centered on screen.
func (f bookForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(f.title()))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 44)))
	b.WriteString("\n\n")

	for field := fieldTitle; field < fieldCount; field++ {
		label := padRight(formLabels[field]+":", 16)
		if field == f.focus {
			b.WriteString(styles.Focused.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(f.fieldView(field, styles))
		b.WriteString("\n")
		if msg, bad := f.errors[formKeys[field]]; bad {
			b.WriteString(strings.Repeat(" ", 16))
			b.WriteString(styles.DangerText.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	button := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Background)).
		Background(lipgloss.Color(theme.Accent)).
		Bold(true).
		Padding(0, 2).
		Render(f.submitLabel())
	b.WriteString(button)
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render("Enter: " + f.submitLabel() + "  •  Esc: Cancel  •  Tab: Next field"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 2).
		Width(64)

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

func (f bookForm) fieldView(field formField, styles Styles) string {
	focused := field == f.focus
	switch field {
	case fieldGenre:
		if f.genre == "" {
			return selectorView("Select a genre", focused, styles.FaintText, styles)
		}
		return selectorView(string(f.genre), focused, styles.GenreStyle(f.genre), styles)
	case fieldStatus:
		return selectorView(string(f.status), focused, styles.StatusStyle(f.status), styles)
	default:
		return f.inputs[field].View()
	}
}

func selectorView(value string, focused bool, style lipgloss.Style, styles Styles) string {
	if !focused {
		return style.Render(value)
	}
	return styles.AccentText.Render("‹ ") + style.Render(value) + styles.AccentText.Render(" ›")
}
