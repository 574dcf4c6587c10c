package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vfpar/registro/internal/insight"
	"github.com/vfpar/registro/internal/prefs"
	"github.com/vfpar/registro/internal/registry"
	"github.com/vfpar/registro/internal/share"
	"github.com/vfpar/registro/internal/state"
)

// Sharer hands a record summary to the host's share surfaces.
type Sharer interface {
	Share(ctx context.Context, title, text string) (share.Outcome, error)
}

// Options configures the UI.
type Options struct {
	Context context.Context
	Store   *state.Store
	Loader  *state.Loader

	// Insight is nil when no API key is configured.
	Insight insight.Generator
	Share   Sharer
	OpenURL func(url string) error

	Renderer  registry.Renderer
	Logger    *slog.Logger
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	loader    *state.Loader
	insights  insight.Generator
	sharer    Sharer
	openURL   func(string) error
	renderer  registry.Renderer
	logger    *slog.Logger
	prefs     prefs.Prefs
	prefsPath string

	// UI state
	theme  Theme
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot
	visible  []registry.Company

	// List state
	cursor  int
	offset  int
	spinner spinner.Model

	// Search
	search    textinput.Model
	searching bool

	// Overlays
	modal         Modal
	showHelp      bool
	insightSeq    int
	insightCancel context.CancelFunc
	toast         Toast
}

// New creates the root model. It reads the store once so a model built over a
// store that is already loaded renders immediately.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Default()
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Buscar por nome, setor ou localização"
	ti.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		ctx:       ctx,
		store:     store,
		loader:    opts.Loader,
		insights:  opts.Insight,
		sharer:    opts.Share,
		openURL:   opts.OpenURL,
		renderer:  opts.Renderer,
		logger:    logger,
		prefs:     p,
		prefsPath: opts.PrefsPath,
		theme:     GetTheme(p.Theme),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		search:    ti,
	}
	m.applyTheme()
	m.syncSnapshot()
	return m
}

// Init implements tea.Model. It starts the first load.
func (m Model) Init() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	req := m.loader.Begin()
	return tea.Batch(m.spinner.Tick, fetchCmd(m.ctx, m.loader, req))
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
		m.help.Width = msg.Width
		m.search.Width = maxInt(msg.Width-24, 10)
		m.resizeModal()
		m.clampCursor()
		return m, nil

	case loadResultMsg:
		if m.loader != nil {
			m.loader.Apply(msg.result)
		}
		m.syncSnapshot()
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.snapshot.Status == state.StatusLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.modal != nil {
			var cmd tea.Cmd
			m.modal, cmd, _ = m.modal.Update(msg, m.keys)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case shareResultMsg:
		return m.handleShareResult(msg)

	case insightResultMsg:
		return m.handleInsightResult(msg)

	case openResultMsg:
		if msg.err != nil {
			m.logger.Warn("open website failed", "url", msg.url, "error", msg.err)
			return m, m.toast.Show("Não foi possível abrir o site: "+msg.err.Error(), toastError)
		}
		return m, nil

	case toastHideMsg:
		m.toast.Hide(msg.id)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input. Overlays take precedence over search,
// and search over the list.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		return m.handleModalKey(msg)
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
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.snapshot.SearchTerm)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.ClearSearch):
		m.clearSearch()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.Insight):
		return m.openInsight()

	case key.Matches(msg, m.keys.Open):
		return m.openSelected()
	}

	m.handleListKey(msg)
	return m, nil
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.modal.(detailModal); ok {
		switch {
		case key.Matches(msg, m.keys.Share):
			return m.shareSelected()
		case key.Matches(msg, m.keys.Website):
			// The detail view holds the display placeholder; open the raw site.
			selected, _ := m.store.Selected()
			return m.openWebsite(selected.Website)
		}
	}
	if im, ok := m.modal.(insightModal); ok && im.phase == insightFailed && key.Matches(msg, m.keys.Insight) {
		return m.openInsight()
	}

	modal, cmd, closed := m.modal.Update(msg, m.keys)
	if !closed {
		m.modal = modal
		return m, cmd
	}
	m.closeModal()
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != m.snapshot.SearchTerm {
		m.store.SetSearch(value)
		m.cursor, m.offset = 0, 0
		m.syncSnapshot()
	}
	return m, cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) {
	count := len(m.visible)
	if count == 0 {
		return
	}
	page := m.pageSize()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += page
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= page
	}
	m.clampCursor()
}

// syncSnapshot re-reads the store and derives the visible list.
func (m *Model) syncSnapshot() {
	m.snapshot = m.store.Snapshot()
	m.visible = m.snapshot.Visible()
	m.clampCursor()
}

func (m *Model) clampCursor() {
	count := len(m.visible)
	if count == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = maxInt(0, minInt(m.cursor, count-1))

	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = maxInt(0, minInt(m.offset, count-1))
}

// pageSize is the number of cards that fit in the list area.
func (m Model) pageSize() int {
	if m.height <= 0 {
		return 1
	}
	return maxInt((m.height-chromeHeight)/CardHeight, 1)
}

func (m *Model) clearSearch() {
	m.store.ClearSearch()
	m.search.SetValue("")
	m.cursor, m.offset = 0, 0
	m.syncSnapshot()
}

// reload starts a new load. Results of earlier loads still in flight are
// dropped when they arrive.
func (m *Model) reload() tea.Cmd {
	if m.loader == nil {
		return nil
	}
	req := m.loader.Begin()
	m.syncSnapshot()
	return tea.Batch(m.spinner.Tick, fetchCmd(m.ctx, m.loader, req))
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	if len(m.visible) == 0 {
		return m, nil
	}
	if !m.store.Select(m.visible[m.cursor]) {
		return m, nil
	}
	m.syncSnapshot()
	m.openDetail()
	return m, nil
}

// openDetail shows the overlay for the store's current selection.
func (m *Model) openDetail() {
	selected := m.snapshot.Selected
	if selected == nil {
		return
	}
	m.modal = newDetailModal(m.renderer.Render(*selected))
	m.resizeModal()
}

func (m *Model) closeModal() {
	switch m.modal.(type) {
	case detailModal:
		m.store.Dismiss()
		m.syncSnapshot()
	case insightModal:
		m.insightSeq++
		if m.insightCancel != nil {
			m.insightCancel()
			m.insightCancel = nil
		}
	}
	m.modal = nil
}

func (m *Model) resizeModal() {
	if m.modal == nil {
		return
	}
	if r, ok := m.modal.(interface {
		Resize(theme Theme, width, height int) Modal
	}); ok {
		m.modal = r.Resize(m.theme, m.width, m.height)
	}
}

func (m Model) shareSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.store.Selected()
	if !ok {
		return m, nil
	}
	if m.sharer == nil {
		return m, m.toast.Show(share.Notice(share.OutcomeNone, share.ErrUnavailable), toastError)
	}
	return m, shareCmd(m.ctx, m.sharer, selected)
}

func (m Model) handleShareResult(msg shareResultMsg) (tea.Model, tea.Cmd) {
	kind := toastSuccess
	if msg.err != nil {
		kind = toastError
		m.logger.Warn("share failed", "company", msg.name, "error", msg.err)
	} else {
		m.logger.Info("record shared", "company", msg.name, "outcome", msg.outcome.String())
	}
	return m, m.toast.Show(share.Notice(msg.outcome, msg.err), kind)
}

func (m Model) openWebsite(site string) (tea.Model, tea.Cmd) {
	url := websiteURL(site)
	if url == "" {
		return m, m.toast.Show("Site não informado", toastInfo)
	}
	if m.openURL == nil {
		return m, m.toast.Show("Abra manualmente: "+url, toastInfo)
	}
	return m, openCmd(m.openURL, url)
}

func (m Model) insightsEnabled() bool {
	return m.insights != nil
}

// openInsight asks the generator about the whole loaded collection, whatever
// the search term. Each request gets a new sequence number; answers for older
// ones are ignored.
func (m Model) openInsight() (tea.Model, tea.Cmd) {
	if !m.insightsEnabled() {
		return m, m.toast.Show("Insights indisponíveis: defina GEMINI_API_KEY", toastInfo)
	}
	if len(m.snapshot.Companies) == 0 {
		return m, m.toast.Show("Nenhuma empresa para analisar", toastInfo)
	}
	if m.insightCancel != nil {
		m.insightCancel()
	}

	m.insightSeq++
	ctx, cancel := context.WithCancel(m.ctx)
	m.insightCancel = cancel

	companies := make([]registry.Company, len(m.snapshot.Companies))
	copy(companies, m.snapshot.Companies)
	im := newInsightModal(len(companies))
	m.modal = im
	m.resizeModal()
	m.logger.Info("insight requested", "seq", m.insightSeq, "count", len(companies))
	return m, tea.Batch(im.spinner.Tick, insightCmd(ctx, m.insights, m.insightSeq, companies))
}

func (m Model) handleInsightResult(msg insightResultMsg) (tea.Model, tea.Cmd) {
	im, ok := m.modal.(insightModal)
	if !ok || msg.seq != m.insightSeq {
		m.logger.Debug("dropping stale insight result", "seq", msg.seq, "current", m.insightSeq)
		return m, nil
	}
	if m.insightCancel != nil {
		m.insightCancel()
		m.insightCancel = nil
	}
	if msg.err != nil {
		m.logger.Warn("insight failed", "seq", msg.seq, "error", msg.err)
	}
	m.modal = im.resolve(msg.insight, msg.err)
	m.resizeModal()
	return m, nil
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.applyTheme()
	m.resizeModal()
	m.prefs.Theme = m.theme.Name
	if m.prefsPath != "" {
		if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
			m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
		}
	}
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.AccentText
	m.help.Styles.FullDesc = styles.MutedText
	m.help.Styles.FullSeparator = styles.FaintText
	m.spinner.Style = styles.AccentText
	m.search.PromptStyle = styles.AccentText
	m.search.TextStyle = styles.Text
	m.search.PlaceholderStyle = styles.FaintText
}

// renderMain renders the header, search bar, content and footer.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")

	contentHeight := maxInt(m.height-chromeHeight, 1)
	content := lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(m.renderContent())
	b.WriteString(content)
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderFooter() string {
	if m.toast.Visible() {
		return m.toast.View(m.theme, m.width)
	}
	styles := m.theme.Styles()
	return styles.Footer.Width(m.width).Render(m.help.View(m.keys))
}

// statusLine describes the load status for the header.
func (m Model) statusLine() string {
	switch m.snapshot.Status {
	case state.StatusLoading:
		return "Carregando"
	case state.StatusFailed:
		if n := m.snapshot.ConsecutiveFailures; n > 1 {
			return fmt.Sprintf("Falha (%dx)", n)
		}
		return "Falha"
	default:
		return "Atualizado " + m.snapshot.LoadedAt.Format("15:04")
	}
}
