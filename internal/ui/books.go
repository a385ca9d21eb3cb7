package ui

import (
	"fmt"
	"strings"

	"github.com/five82/folio/internal/book"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/state"
)

// cardHeight is the number of lines one book card occupies, spacer included.
const cardHeight = 4

// renderFilterBar renders the search input and the genre and status filters.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	c := m.snapshot.Criteria

	searchLabel := styles.MutedText
	if m.searching {
		searchLabel = styles.AccentText.Bold(true)
	}
	search := m.search.View()
	if !m.searching && c.SearchText == "" {
		search = bg.Render(m.search.Placeholder, styles.FaintText)
	} else if !m.searching {
		search = bg.Render(truncate(c.SearchText, m.search.Width), styles.Text)
	}

	genre := ternary(c.Genre == "", "All Genres", string(c.Genre))
	status := ternary(c.Status == "", "All Status", string(c.Status))

	parts := []string{
		bg.Render("Search:", searchLabel) + bg.Space() + search,
		bg.Render("Genre:", styles.MutedText) + bg.Space() + bg.Render(genre, ternaryStyle(c.Genre != "", styles.AccentText, styles.Text)),
		bg.Render("Status:", styles.MutedText) + bg.Space() + bg.Render(status, ternaryStyle(c.Status != "", styles.AccentText, styles.Text)),
	}
	return bg.FillLine(bg.Join(parts, "   "), m.width)
}

// renderBooks renders the card list, or the loading, error or empty state,
// as exactly height lines.
func (m Model) renderBooks(height int) []string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	var lines []string
	switch {
	case !m.snapshot.Fetched() && m.snapshot.LastError != nil:
		lines = []string{
			"",
			bg.Render("Error loading books: "+m.snapshot.LastError.Error(), styles.DangerText),
			bg.Render("Press r to try again.", styles.MutedText),
		}
	case !m.snapshot.Fetched():
		lines = []string{
			"",
			styles.AccentText.Render(m.spinner.View()) + bg.Space() + bg.Render("Loading books...", styles.MutedText),
		}
	case m.view.Empty():
		lines = []string{"", bg.Render("No books found", styles.MutedText)}
		if m.route == prefs.RouteManage {
			lines = append(lines, bg.Render("Press a to add a book.", styles.FaintText))
		}
	default:
		lines = m.renderCards(height, styles, bg)
	}

	out := make([]string, 0, height)
	for i := 0; i < height; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out = append(out, bg.FillLine(bg.Space()+line, m.width))
	}
	return out
}

// renderCards renders the window of cards that keeps the selection visible.
func (m Model) renderCards(height int, styles Styles, bg BgStyle) []string {
	items := m.view.PageItems
	visible := max(height/cardHeight, 1)
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := min(start+visible, len(items))

	lines := make([]string, 0, (end-start)*cardHeight)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderCard(items[i], i == m.selected, styles, bg)...)
	}
	return lines
}

// renderCard renders one book as title, byline and cover lines plus a spacer.
func (m Model) renderCard(b book.Book, selected bool, styles Styles, bg BgStyle) []string {
	width := max(m.width-6, 20)

	marker := bg.Space()
	title := bg.Render(truncate(b.Title, width-30), styles.Text.Bold(true))
	if selected {
		marker = bg.Render("▌", styles.AccentText)
		title = styles.Selected.Render(" " + truncate(b.Title, width-32) + " ")
	}
	chips := styles.GenreStyle(b.Genre).Render(string(b.Genre)) + bg.Space() +
		styles.StatusStyle(b.Status).Render(string(b.Status))

	byline := bg.Render("By "+truncate(b.Author, width/2), styles.MutedText) +
		bg.Render("  •  ", styles.FaintText) +
		bg.Render(fmt.Sprintf("Published: %d", b.PublishedYear), styles.MutedText)

	cover := bg.Render(truncateMiddle(b.CoverURL(), width), styles.FaintText)

	return []string{
		marker + bg.Space() + title + bg.Spaces(2) + chips,
		marker + bg.Space() + byline,
		marker + bg.Space() + cover,
		"",
	}
}

// renderPager renders the page dots, or a blank line when there is one page.
func (m Model) renderPager() string {
	bg := NewBgStyle(m.theme.Background)
	if m.view.TotalPages <= 1 {
		return bg.FillLine("", m.width)
	}
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	pager := m.pager
	pager.ActiveDot = styles.AccentText.Render("●")
	pager.InactiveDot = styles.FaintText.Render("○")
	label := bg.Render(fmt.Sprintf("Page %d of %d", m.view.Page, m.view.TotalPages), styles.MutedText)
	return bg.FillLine(bg.Space()+pager.View()+bg.Spaces(2)+label, m.width)
}

// renderToast renders the current mutation notice, if any.
func (m Model) renderToast() string {
	bg := NewBgStyle(m.theme.Background)
	n := m.snapshot.Notice
	if n == nil {
		return bg.FillLine("", m.width)
	}
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	style := styles.SuccessText
	icon := "✓"
	if n.Level == state.NoticeError {
		style = styles.DangerText
		icon = "✗"
	}
	text := icon + " " + n.Message
	if n.Subject != "" && n.Level == state.NoticeSuccess {
		text += " (" + truncate(n.Subject, 40) + ")"
	}
	return bg.FillLine(bg.Space()+bg.Render(strings.TrimSpace(text), style), m.width)
}
