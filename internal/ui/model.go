package ui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/destiny/internal/config"
	"github.com/oakwood-commons/destiny/internal/formatter"
	"github.com/oakwood-commons/destiny/internal/ui/table"
	"github.com/oakwood-commons/destiny/pkg/browse"
	"github.com/oakwood-commons/destiny/pkg/catalog"
)

// Page is one of the top-level screens.
type Page int

const (
	PageHome Page = iota
	PageCollection
	PageAbout
	PageContact
)

// Pages lists the pages in menu order.
var Pages = []Page{PageHome, PageCollection, PageAbout, PageContact}

var pageNames = [...]string{"home", "collection", "about", "contact"}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return fmt.Sprintf("page(%d)", int(p))
	}
	return pageNames[p]
}

// Title is the menu label for p.
func (p Page) Title() string {
	s := p.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParsePage resolves a page name. Empty means PageHome.
func ParsePage(s string) (Page, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PageHome, nil
	}
	for i, name := range pageNames {
		if name == s {
			return Page(i), nil
		}
	}
	return PageHome, fmt.Errorf("unknown page %q (available: %s)", s, strings.Join(pageNames[:], ", "))
}

// LoadFunc fetches the dataset. It runs off the update loop.
type LoadFunc func(ctx context.Context) ([]catalog.Record, error)

// datasetLoadedMsg carries the result of a LoadFunc back to Update.
type datasetLoadedMsg struct {
	records []catalog.Record
	err     error
}

// Options configures New.
type Options struct {
	App     config.AppConfig
	Theme   Theme
	KeyMode KeyMode
	NoColor bool
	Page    Page
	Query   string

	// Loader fetches the dataset asynchronously from Init. When nil, Records
	// is used as the collection.
	Loader  LoadFunc
	Records []catalog.Record
	Context context.Context

	Logger logr.Logger
	Width  int
	Height int
}

// Model is the bubbletea model for the catalog browser.
type Model struct {
	engine *browse.Engine
	app    config.AppConfig

	theme   Theme
	styles  styles
	keyMode KeyMode
	noColor bool

	page       Page
	menuOpen   bool
	menuCursor int
	showHelp   bool

	search    textinput.Model
	searching bool

	spinner spinner.Model
	loading bool
	loader  LoadFunc
	ctx     context.Context

	listView bool
	list     *table.Model[catalog.Record]

	status    string
	statusErr bool

	// pendingKeys are startup keys held back until the dataset arrives.
	pendingKeys []string

	width  int
	height int

	log logr.Logger
}

// New builds a Model. The collection is empty until the loader reports
// back, unless Records is supplied without a Loader.
func New(opts Options) *Model {
	lgr := opts.Logger
	if lgr.GetSink() == nil {
		lgr = logr.Discard()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	theme := opts.Theme
	if theme.Accent == nil {
		theme = FallbackTheme()
	}
	mode := opts.KeyMode
	if mode == "" {
		mode = DefaultKeyMode
	}

	engineOpts := []browse.Option{browse.WithQuery(opts.Query), browse.WithLogger(lgr)}
	if opts.Loader == nil {
		engineOpts = append(engineOpts, browse.WithRecords(opts.Records))
	}

	ti := textinput.New()
	ti.Placeholder = "Search shape, carat, color, clarity..."
	ti.Prompt = "/ "
	ti.CharLimit = 80
	ti.SetValue(opts.Query)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		engine:  browse.New(engineOpts...),
		app:     opts.App,
		theme:   theme,
		styles:  newStyles(theme, opts.NoColor),
		keyMode: mode,
		noColor: opts.NoColor,
		page:    opts.Page,
		search:  ti,
		spinner: sp,
		loading: opts.Loader != nil,
		loader:  opts.Loader,
		ctx:     ctx,
		list:    newRecordList(theme, opts.NoColor),
		log:     lgr,
	}
	m.setSize(opts.Width, opts.Height)
	m.syncList()
	return m
}

func newRecordList(theme Theme, noColor bool) *table.Model[catalog.Record] {
	widths := []int{10, 6, 6, 8, 10, 10, 10, 8, 6, 12}
	cols := make([]table.Column, len(formatter.RecordColumns))
	for i, title := range formatter.RecordColumns {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	list := table.NewModel(cols, func(r catalog.Record) table.Row {
		return table.Row(formatter.RecordRow(r))
	})
	list.SetColors(theme.HeaderFG, theme.HeaderBG, theme.SelectedFG, theme.SelectedBG)
	list.SetNoColor(noColor)
	return list
}

// Init starts the dataset load.
func (m *Model) Init() tea.Cmd {
	if !m.loading {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m *Model) loadCmd() tea.Cmd {
	load, ctx := m.loader, m.ctx
	return func() tea.Msg {
		records, err := load(ctx)
		return datasetLoadedMsg{records: records, err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	case datasetLoadedMsg:
		m.applyDataset(msg)
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	if m.searching {
		return m, m.updateSearch(msg)
	}
	return m, nil
}

// applyDataset hands the loaded collection to the engine. A failed load
// leaves the browser usable with an empty collection.
func (m *Model) applyDataset(msg datasetLoadedMsg) {
	m.loading = false
	if msg.err != nil {
		m.log.Error(msg.err, "failed to load dataset")
		m.engine.SetCollection([]catalog.Record{})
		m.setStatus("Could not load diamonds: "+msg.err.Error(), true)
	} else {
		records := msg.records
		if records == nil {
			records = []catalog.Record{}
		}
		m.engine.SetCollection(records)
		m.log.V(1).Info("dataset applied", "records", len(records))
	}
	m.syncList()

	if keys := m.pendingKeys; len(keys) > 0 {
		m.pendingKeys = nil
		ApplyStartupKeys(m, keys)
	}
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	action := Resolve(m.keyMode, msg.String())
	if m.menuOpen {
		return m.handleMenuAction(action)
	}

	switch action {
	case ActionQuit:
		return m, tea.Quit
	case ActionHelp:
		m.showHelp = !m.showHelp
	case ActionClose:
		m.showHelp = false
		m.clearStatus()
	case ActionToggleMenu:
		m.menuOpen = true
		m.menuCursor = int(m.page)
	case ActionNextPage:
		m.setPage(Page((int(m.page) + 1) % len(Pages)))
	case ActionPrevPage:
		m.setPage(Page((int(m.page) - 1 + len(Pages)) % len(Pages)))
	case ActionPage1, ActionPage2, ActionPage3, ActionPage4:
		m.setPage(pageForAction(action))
	case ActionSearch:
		m.setPage(PageCollection)
		return m, m.focusSearch()
	case ActionEnter:
		if m.page == PageHome {
			m.setPage(PageCollection)
		}
	default:
		if m.page == PageCollection {
			m.handleCollectionAction(action)
		}
	}
	return m, nil
}

func pageForAction(a Action) Page {
	switch a {
	case ActionPage2:
		return PageCollection
	case ActionPage3:
		return PageAbout
	case ActionPage4:
		return PageContact
	default:
		return PageHome
	}
}

func (m *Model) handleCollectionAction(action Action) {
	switch action {
	case ActionPrev, ActionUp:
		m.engine.Prev()
		m.syncList()
	case ActionNext, ActionDown:
		m.engine.Next()
		m.syncList()
	case ActionToggleView:
		m.listView = !m.listView
	case ActionOpenVideo:
		m.openMedia(catalog.Record.Video, "No video link for this diamond.", "Opening video")
	case ActionOpenImage:
		m.openMedia(catalog.Record.Image, "No image", "Opening image")
	case ActionCopyVideo:
		rec, ok := m.engine.Current()
		if !ok {
			return
		}
		link, ok := rec.Video()
		if !ok {
			m.setStatus("No video link for this diamond.", true)
			return
		}
		if err := CopyToClipboard(link); err != nil {
			m.log.Error(err, "copy to clipboard failed")
			m.setStatus("Copy failed: "+err.Error(), true)
			return
		}
		m.setStatus("Copied video link", false)
	}
}

func (m *Model) openMedia(get func(catalog.Record) (string, bool), missing, opening string) {
	rec, ok := m.engine.Current()
	if !ok {
		return
	}
	link, ok := get(rec)
	if !ok {
		m.setStatus(missing, true)
		return
	}
	if err := OpenURL(link); err != nil {
		m.log.Error(err, "open link failed", "link", link)
		m.setStatus("Could not open link: "+err.Error(), true)
		return
	}
	m.setStatus(opening, false)
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.blurSearch()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}

	return m, m.updateSearch(msg)
}

// updateSearch forwards msg (keys, pastes) to the search input and pushes
// any change of its value to the engine.
func (m *Model) updateSearch(msg tea.Msg) tea.Cmd {
	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != prev {
		m.engine.SetQuery(v)
		m.syncList()
	}
	return cmd
}

func (m *Model) focusSearch() tea.Cmd {
	m.searching = true
	m.clearStatus()
	return m.search.Focus()
}

func (m *Model) blurSearch() {
	m.searching = false
	m.search.Blur()
}

func (m *Model) setPage(p Page) {
	if m.searching && p != PageCollection {
		m.blurSearch()
	}
	m.page = p
	m.menuOpen = false
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m *Model) setSize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width = width
	m.height = height
	m.search.SetWidth(min(width-4, 60))
	// Header, tabs, search line, status and footer take the rest.
	m.list.SetSize(width, max(height-8, 3))
}

// syncList mirrors the filtered view into the list pane with the selected
// row at the engine position.
func (m *Model) syncList() {
	m.list.SetRows(m.engine.Filtered())
	if m.engine.FilteredCount() > 0 {
		m.list.SetCursor(m.engine.Position())
	}
}

// Engine exposes the browsing state.
func (m *Model) Engine() *browse.Engine { return m.engine }

// Page returns the active page.
func (m *Model) Page() Page { return m.page }

// MenuOpen reports whether the drawer is shown.
func (m *Model) MenuOpen() bool { return m.menuOpen }

// Searching reports whether the search input has focus.
func (m *Model) Searching() bool { return m.searching }

// Loading reports whether the dataset load is still pending.
func (m *Model) Loading() bool { return m.loading }

// ListView reports whether the collection is shown as a list.
func (m *Model) ListView() bool { return m.listView }

// Status returns the status line text.
func (m *Model) Status() string { return m.status }

// View renders the model on the alternate screen.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}
