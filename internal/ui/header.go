package ui

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/folio/internal/bookapi"
	"github.com/five82/folio/internal/prefs"
)

// routeTitle returns the heading shown for a route.
func routeTitle(route string) string {
	if route == prefs.RouteManage {
		return "Manage Books"
	}
	return "Book Dashboard"
}

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 100

	parts := []string{
		bg.Render("folio", styles.Logo),
		bg.Render(routeTitle(m.route), styles.Text.Bold(true)),
	}

	if m.snapshot.Fetched() {
		count := fmt.Sprintf("%d", m.view.Matched)
		if m.snapshot.Criteria.Filtered() {
			count = fmt.Sprintf("%d/%d", m.view.Matched, m.view.Total)
		}
		parts = append(parts,
			bg.Render("Books:", styles.MutedText)+bg.Space()+bg.Render(count, styles.Text))
		if m.view.TotalPages > 0 {
			parts = append(parts,
				bg.Render("Page:", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d/%d", m.view.Page, m.view.TotalPages), styles.Text))
		}
	}

	if m.snapshot.Loading {
		parts = append(parts,
			styles.AccentText.Render(m.spinner.View())+bg.Space()+
				bg.Render("Loading", styles.WarningText))
	} else if m.snapshot.Stale {
		parts = append(parts, bg.Render("STALE", styles.WarningText.Bold(true)))
	}

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	// A failed refetch over an existing list; the blocking case is drawn in the body.
	if m.snapshot.LastError != nil && m.snapshot.Fetched() {
		maxErr := ternaryInt(compact, 40, 80)
		parts = append(parts,
			bg.Render(classifyConnectionError(m.snapshot.LastError), styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.snapshot.LastError.Error(), maxErr), styles.DangerText))
	}

	if !compact && m.apiBase != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.apiBase, 40), styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// formatTimestamp formats the last fetch time with relative indicator.
func (m Model) formatTimestamp() string {
	fetched := m.snapshot.FetchedAt
	if fetched.IsZero() {
		return ""
	}

	since := m.now().Sub(fetched)
	ts := fetched.Format("15:04:05")

	switch {
	case since < time.Minute:
		ts += " (now)"
	case since < time.Hour:
		ts += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	case since < 24*time.Hour:
		ts += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}
	return ts
}

// classifyConnectionError returns a short description of a list failure.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	switch status := bookapi.StatusOf(err); {
	case status == http.StatusTooManyRequests:
		return "THROTTLED"
	case status == http.StatusNotFound:
		return "NOT FOUND"
	case status >= 500:
		return "SERVER ERROR"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "rate limit"):
		return "THROTTLED"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.searching:
		commands = []cmd{
			{"Enter", "Done"},
			{"Esc", "Done"},
		}
	case m.route == prefs.RouteManage:
		commands = []cmd{
			{"a", "Add"},
			{"Enter", "Edit"},
			{"d", "Delete"},
			{"/", "Search"},
			{"g", "Genre"},
			{"s", "Status"},
			{"c", "Clear"},
			{"[/]", "Page"},
			{"1", "Dashboard"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"g", "Genre"},
			{"s", "Status"},
			{"c", "Clear"},
			{"[/]", "Page"},
			{"r", "Refetch"},
			{"2", "Manage"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

func ternaryInt(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
