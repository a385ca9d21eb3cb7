package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/folio/internal/book"
	"github.com/five82/folio/internal/bookapi"
	"github.com/five82/folio/internal/catalog"
	"github.com/five82/folio/internal/prefs"
	"github.com/five82/folio/internal/state"
)

// noticeTTL is how long a mutation toast stays on screen.
const noticeTTL = 4 * time.Second

// Options configures the UI.
type Options struct {
	Context    context.Context
	Collection *catalog.Collection
	Logger     zerolog.Logger
	Prefs      prefs.Prefs
	PrefsPath  string
	APIBase    string
	Now        func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	coll      *catalog.Collection
	changes   <-chan struct{}
	log       zerolog.Logger
	prefs     prefs.Prefs
	prefsPath string
	apiBase   string
	now       func() time.Time
	keys      keyMap

	// UI state
	theme    Theme
	route    string
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal

	// Data state
	snapshot    state.Snapshot
	view        catalog.View
	selected    int
	noticeShown uint64

	// Widgets
	searching bool
	search    textinput.Model
	pager     paginator.Model
	spinner   spinner.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	route, ok := prefs.ParseRoute(opts.Prefs.Route)
	if !ok {
		route = prefs.RouteDashboard
	}

	search := textinput.New()
	search.Placeholder = "Search by title or author..."
	search.Prompt = ""
	search.CharLimit = 100
	search.Width = 32

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = catalog.PageSize

	m := Model{
		ctx:       ctx,
		coll:      opts.Collection,
		log:       opts.Logger,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		apiBase:   opts.APIBase,
		now:       now,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.Prefs.Theme),
		route:     route,
		search:    search,
		pager:     pager,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if m.coll != nil {
		m.changes = m.coll.Subscribe()
		m.sync()
		m.search.SetValue(m.snapshot.Criteria.SearchText)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadCmd(m.ctx, m.coll),
		m.spinner.Tick,
		waitForChange(m.changes),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case changedMsg:
		return m, tea.Batch(m.sync(), waitForChange(m.changes))

	case closedMsg:
		return m, tea.Quit

	case loadedMsg:
		if msg.err != nil && !errors.Is(msg.err, catalog.ErrClosed) {
			m.log.Debug().Err(msg.err).Msg("book list load failed")
		}
		return m, nil

	case submitFormMsg:
		return m, m.submitCmd(msg)

	case confirmDeleteMsg:
		return m, deleteCmd(m.ctx, m.coll, msg.id)

	case mutationDoneMsg:
		var verr *book.ValidationError
		switch {
		case msg.err == nil:
			m.log.Debug().Str("op", string(msg.op)).Msg("mutation finished")
		case errors.As(msg.err, &verr):
			m.log.Warn().Err(msg.err).Str("op", string(msg.op)).Msg("draft rejected")
		default:
			m.log.Warn().Err(msg.err).Str("op", string(msg.op)).Msg("mutation failed")
		}
		return m, nil

	case noticeExpiredMsg:
		m.coll.DismissNotice(msg.id)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Remaining messages (cursor blink) belong to whichever input is active.
	var cmd tea.Cmd
	switch {
	case m.modal != nil:
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.persist()
		return m, nil

	case key.Matches(msg, m.keys.Dashboard):
		return m, m.switchRoute(prefs.RouteDashboard)

	case key.Matches(msg, m.keys.Manage):
		return m, m.switchRoute(prefs.RouteManage)

	case key.Matches(msg, m.keys.ToggleRoute):
		return m, m.switchRoute(ternary(m.route == prefs.RouteManage, prefs.RouteDashboard, prefs.RouteManage))

	case key.Matches(msg, m.keys.Refresh):
		m.coll.Invalidate()
		return m, loadCmd(m.ctx, m.coll)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.NextGenre):
		m.coll.SetGenre(cycleGenre(m.snapshot.Criteria.Genre, 1))
		return m, m.criteriaChanged()

	case key.Matches(msg, m.keys.PrevGenre):
		m.coll.SetGenre(cycleGenre(m.snapshot.Criteria.Genre, -1))
		return m, m.criteriaChanged()

	case key.Matches(msg, m.keys.NextStatus):
		m.coll.SetStatus(cycleStatus(m.snapshot.Criteria.Status))
		return m, m.criteriaChanged()

	case key.Matches(msg, m.keys.ClearFilters):
		m.coll.ClearFilters()
		m.search.SetValue("")
		return m, m.criteriaChanged()

	case key.Matches(msg, m.keys.PrevPage):
		if m.view.Page > 1 {
			m.coll.SetPage(m.view.Page - 1)
			return m, m.criteriaChanged()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.view.Page < m.view.TotalPages {
			m.coll.SetPage(m.view.Page + 1)
			return m, m.criteriaChanged()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.view.PageItems)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.snapshot.Criteria.SearchText != "" {
			m.coll.SetSearchText("")
			m.search.SetValue("")
			return m, m.criteriaChanged()
		}
		return m, nil
	}

	if m.route == prefs.RouteManage {
		return m.handleManageKey(msg)
	}
	return m, nil
}

// handleManageKey processes the record actions available on the Manage route.
func (m Model) handleManageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		m.modal = newBookForm("", book.NewDraft(m.now()), m.now)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		b, ok := m.selectedBook()
		if !ok {
			return m, nil
		}
		m.modal = newBookForm(b.ID, b.Draft(), m.now)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		b, ok := m.selectedBook()
		if !ok {
			return m, nil
		}
		m.modal = confirmDelete{id: b.ID, title: b.Title}
		return m, nil
	}
	return m, nil
}

// handleSearchKey edits the search text while the search input has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.coll.SetSearchText(value)
		return m, tea.Batch(cmd, m.criteriaChanged())
	}
	return m, cmd
}

// switchRoute stores the current route's location and restores the target's.
func (m *Model) switchRoute(route string) tea.Cmd {
	if route == m.route {
		return nil
	}
	m.prefs.SetLocation(m.route, m.coll.Location())
	m.route = route
	m.coll.Restore(m.prefs.Location(route))
	m.search.SetValue(m.coll.Criteria().SearchText)
	m.selected = 0
	m.persist()
	return m.sync()
}

// criteriaChanged records the new location for the current route.
func (m *Model) criteriaChanged() tea.Cmd {
	m.selected = 0
	m.prefs.SetLocation(m.route, m.coll.Location())
	return m.sync()
}

// persist writes theme, route and the current location to the prefs file.
func (m *Model) persist() {
	m.prefs.Theme = m.theme.Name
	m.prefs.Route = m.route
	if m.coll != nil {
		m.prefs.SetLocation(m.route, m.coll.Location())
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs failed")
	}
}

// sync pulls the latest snapshot and re-derives the visible page. It returns
// a command that expires a newly shown notice.
func (m *Model) sync() tea.Cmd {
	m.snapshot = m.coll.Snapshot()
	m.view = catalog.Derive(m.snapshot.Books, m.snapshot.Criteria)

	// A delete can leave the current page past the end.
	if m.view.Empty() && m.view.TotalPages > 0 && m.view.Page > m.view.TotalPages {
		m.coll.SetPage(m.view.TotalPages)
		m.snapshot = m.coll.Snapshot()
		m.view = catalog.Derive(m.snapshot.Books, m.snapshot.Criteria)
	}

	if m.selected >= len(m.view.PageItems) {
		m.selected = max(len(m.view.PageItems)-1, 0)
	}
	m.pager.TotalPages = max(m.view.TotalPages, 1)
	m.pager.Page = max(m.view.Page-1, 0)

	n := m.snapshot.Notice
	if n == nil || n.ID == m.noticeShown {
		return nil
	}
	m.noticeShown = n.ID
	id := n.ID
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

func (m Model) selectedBook() (book.Book, bool) {
	if m.selected < 0 || m.selected >= len(m.view.PageItems) {
		return book.Book{}, false
	}
	return m.view.PageItems[m.selected], true
}

// cycleGenre steps through "all genres" followed by each genre.
func cycleGenre(current book.Genre, step int) book.Genre {
	options := append([]book.Genre{""}, book.Genres()...)
	return options[nextIndex(len(options), indexOf(options, current), step)]
}

// cycleStatus steps through "all status" followed by each status.
func cycleStatus(current book.Status) book.Status {
	options := append([]book.Status{""}, book.Statuses()...)
	return options[nextIndex(len(options), indexOf(options, current), 1)]
}

func indexOf[T comparable](options []T, v T) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return 0
}

func nextIndex(n, i, step int) int {
	return ((i+step)%n + n) % n
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")

	// header, command bar, filter bar, pager and toast lines
	bodyHeight := max(m.height-5, cardHeight)
	b.WriteString(strings.Join(m.renderBooks(bodyHeight), "\n"))
	b.WriteString("\n")
	b.WriteString(m.renderPager())
	b.WriteString("\n")
	b.WriteString(m.renderToast())

	return b.String()
}

// Messages

type changedMsg struct{}

type closedMsg struct{}

type loadedMsg struct{ err error }

type submitFormMsg struct {
	id    string // empty when adding
	draft book.Draft
}

type confirmDeleteMsg struct {
	id    string
	title string
}

type mutationDoneMsg struct {
	op  bookapi.Op
	err error
}

type noticeExpiredMsg struct{ id uint64 }

// Commands

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return closedMsg{}
		}
		return changedMsg{}
	}
}

func loadCmd(ctx context.Context, coll *catalog.Collection) tea.Cmd {
	if coll == nil {
		return nil
	}
	return func() tea.Msg {
		return loadedMsg{err: coll.Load(ctx)}
	}
}

func (m Model) submitCmd(msg submitFormMsg) tea.Cmd {
	ctx, coll := m.ctx, m.coll
	if msg.id == "" {
		return func() tea.Msg {
			_, err := coll.Create(ctx, msg.draft)
			return mutationDoneMsg{op: bookapi.OpCreate, err: err}
		}
	}
	return func() tea.Msg {
		return mutationDoneMsg{op: bookapi.OpUpdate, err: coll.Update(ctx, msg.id, msg.draft)}
	}
}

func deleteCmd(ctx context.Context, coll *catalog.Collection, id string) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{op: bookapi.OpDelete, err: coll.Delete(ctx, id)}
	}
}

// Run starts the Bubble Tea program and saves preferences on exit.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.persist()
	}
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
