package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/lineup/internal/lineup"
	"github.com/nao1215/lineup/internal/model"
	"github.com/nao1215/lineup/internal/render"
)

const (
	// minPanelWidth is the narrowest a panel is drawn.
	minPanelWidth = 32

	// chromeHeight is the number of lines used outside the panels.
	chromeHeight = 4
)

// Options holds the collaborators of the browser.
type Options struct {
	// Context bounds every fetch started by the browser.
	Context context.Context

	// Dispatcher mutates the lineup. Its history backs [ and ].
	Dispatcher *lineup.Dispatcher

	// Prober loads the pages of panels created from fragments.
	Prober lineup.Prober

	// Registry renders page stories.
	Registry *render.Registry

	// Clipboard copies the fragment. Nil disables copying.
	Clipboard func(string) error
}

// Model is the bubbletea model of the browser.
type Model struct {
	ctx        context.Context
	dispatcher *lineup.Dispatcher
	lineup     *lineup.Lineup
	prober     lineup.Prober
	registry   *render.Registry
	clipboard  func(string) error

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int

	focus   int
	link    int
	scroll  int
	loading bool
	loads   uint64
	busy    bool
	status  string
	err     error
}

// New creates a browser over the dispatcher's lineup, which should already
// be populated.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	registry := opts.Registry
	if registry == nil {
		registry = render.DefaultRegistry()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		ctx:        ctx,
		dispatcher: opts.Dispatcher,
		lineup:     opts.Dispatcher.Lineup(),
		prober:     opts.Prober,
		registry:   registry,
		clipboard:  opts.Clipboard,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    s,
		width:      80,
		height:     24,
		loading:    true,
	}
}

// Init starts loading the lineup's pages.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	seq := m.loads
	if m.prober == nil {
		return func() tea.Msg { return loadedMsg{seq: seq} }
	}
	ctx, l, prober := m.ctx, m.lineup, m.prober
	return func() tea.Msg {
		return loadedMsg{seq: seq, err: l.Load(ctx, prober)}
	}
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		// A load superseded by a reload or history move is ignored.
		if msg.seq != m.loads {
			return m, nil
		}
		m.loading = false
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		return m, nil

	case resolvedMsg:
		m.busy = false
		return m.handleResolved(msg)

	case openedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "opened " + msg.url
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "copied " + msg.fragment
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		m.setFocus(m.focus - 1)

	case key.Matches(msg, m.keys.Right):
		m.setFocus(m.focus + 1)

	case key.Matches(msg, m.keys.Up):
		if m.scroll > 0 {
			m.scroll--
		}

	case key.Matches(msg, m.keys.Down):
		m.scroll++

	case key.Matches(msg, m.keys.NextLink):
		if n := len(m.focusedLinks()); n > 0 {
			m.link = (m.link + 1) % n
		}

	case key.Matches(msg, m.keys.PrevLink):
		if n := len(m.focusedLinks()); n > 0 {
			m.link = (m.link - 1 + n) % n
		}

	case key.Matches(msg, m.keys.Follow):
		return m.activate(false)

	case key.Matches(msg, m.keys.Branch):
		return m.activate(true)

	case key.Matches(msg, m.keys.Open):
		link, ok := m.selectedLink()
		if !ok || link.Kind != render.LinkExternal {
			m.status = "no external link selected"
			return m, nil
		}
		return m, m.openCmd(link.URL)

	case key.Matches(msg, m.keys.Copy):
		if m.clipboard == nil {
			m.status = "clipboard unavailable"
			return m, nil
		}
		fragment, copyFn := m.lineup.Fragment(), m.clipboard
		return m, func() tea.Msg {
			return copiedMsg{fragment: fragment, err: copyFn(fragment)}
		}

	case key.Matches(msg, m.keys.Back):
		if _, ok := m.dispatcher.Back(); !ok {
			m.status = "no earlier lineup"
			return m, nil
		}
		return m.reloaded()

	case key.Matches(msg, m.keys.Forward):
		if _, ok := m.dispatcher.Forward(); !ok {
			m.status = "no later lineup"
			return m, nil
		}
		return m.reloaded()

	case key.Matches(msg, m.keys.Reload):
		m.dispatcher.Navigate(m.lineup.Fragment())
		return m.reloaded()
	}
	return m, nil
}

// activate dispatches the selected link of the focused panel.
func (m Model) activate(branch bool) (tea.Model, tea.Cmd) {
	link, ok := m.selectedLink()
	if !ok {
		panels := m.lineup.Panels()
		if m.focus < len(panels) {
			result, err := m.dispatcher.Dispatch(m.ctx, lineup.PanelActivated{PanelID: panels[m.focus].ID})
			if err == nil {
				if _, i, found := m.lineup.Find(result.Focus); found {
					m.setFocus(i)
				}
			}
		}
		m.status = "no link selected"
		return m, nil
	}
	if link.Kind == render.LinkExternal {
		return m, m.openCmd(link.URL)
	}
	if m.busy {
		m.status = "still resolving"
		return m, nil
	}

	m.busy = true
	m.status = fmt.Sprintf("resolving %q", link.Title)
	ctx, d := m.ctx, m.dispatcher
	ev := lineup.LinkActivated{Title: link.Title, PanelID: link.PanelID, Branch: branch}
	return m, func() tea.Msg {
		result, err := d.Dispatch(ctx, ev)
		return resolvedMsg{title: ev.Title, result: result, err: err}
	}
}

func (m Model) handleResolved(msg resolvedMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, lineup.ErrStale):
		m.status = fmt.Sprintf("lineup changed while resolving %q", msg.title)
		return m, nil
	case msg.err != nil:
		m.err = msg.err
		return m, nil
	}

	if _, i, ok := m.lineup.Find(msg.result.Focus); ok {
		m.setFocus(i)
	}
	if msg.result.Panel != nil && msg.result.Panel.IsGhost() {
		m.status = fmt.Sprintf("%q not found", msg.title)
	} else {
		m.status = msg.result.Fragment
	}
	return m, nil
}

func (m Model) openCmd(url string) tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	return func() tea.Msg {
		_, err := d.Dispatch(ctx, lineup.ExternalLinkActivated{URL: url})
		return openedMsg{url: url, err: err}
	}
}

// reloaded resets the view after the lineup was repopulated.
func (m Model) reloaded() (tea.Model, tea.Cmd) {
	m.focus, m.link, m.scroll = 0, 0, 0
	m.loading = true
	m.loads++
	m.status = m.lineup.Fragment()
	return m, tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m *Model) setFocus(i int) {
	n := m.lineup.Len()
	if n == 0 {
		m.focus = 0
		return
	}
	i = max(0, min(i, n-1))
	if i != m.focus {
		m.link, m.scroll = 0, 0
	}
	m.focus = i
}

// focusedLinks returns the links of the focused panel in reading order.
func (m Model) focusedLinks() []render.Link {
	panels := m.lineup.Panels()
	if m.focus >= len(panels) {
		return nil
	}
	var links []render.Link
	for _, f := range m.registry.Render(panels[m.focus]) {
		links = append(links, f.Links...)
	}
	return links
}

func (m Model) selectedLink() (render.Link, bool) {
	links := m.focusedLinks()
	if len(links) == 0 {
		return render.Link{}, false
	}
	return links[min(m.link, len(links)-1)], true
}

// View renders the visible panels, the status bar and the help line.
func (m Model) View() string {
	panels := m.lineup.Panels()
	if len(panels) == 0 {
		return "empty lineup\n"
	}

	visible := max(1, min(len(panels), m.width/minPanelWidth))
	start := max(0, min(m.focus-visible+1, len(panels)-visible))
	if m.focus < start {
		start = m.focus
	}
	panelWidth := max(minPanelWidth, m.width/visible) - 2
	panelHeight := max(3, m.height-chromeHeight-lipgloss.Height(m.help.View(m.keys)))

	columns := make([]string, 0, visible)
	for i := start; i < start+visible && i < len(panels); i++ {
		columns = append(columns, m.viewPanel(panels[i], i == m.focus, panelWidth, panelHeight))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")
	b.WriteString(m.viewStatus(start, visible, len(panels)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewPanel(p *model.Panel, focused bool, width, height int) string {
	style := stylePanel
	switch {
	case p.IsGhost():
		style = stylePanelGhost
	case focused:
		style = stylePanelFocused
	}
	inner := width - style.GetHorizontalFrameSize()

	lines := []string{
		styleTitle.Render(truncate(p.Title(), inner)),
		styleSource.Render(truncate(p.Source.String(), inner)),
		"",
	}

	if !p.Loaded() {
		if m.loading {
			lines = append(lines, m.spinner.View()+" loading")
		} else {
			lines = append(lines, styleError.Render("page not available"))
		}
	}

	selected := -1
	if focused {
		selected = m.link
	}
	linkIndex := 0
	for _, f := range m.registry.Render(p) {
		var text string
		if f.Placeholder {
			text = stylePlaceholder.Render(f.Text)
		} else {
			text = highlightLinks(f.Text, f.Links, linkIndex, selected)
		}
		linkIndex += len(f.Links)
		lines = append(lines, lipgloss.NewStyle().Width(inner).Render(text), "")
	}

	if focused && m.scroll > 0 {
		offset := min(m.scroll, max(0, len(lines)-1))
		lines = lines[offset:]
	}
	content := strings.Join(lines, "\n")
	if lipgloss.Height(content) > height {
		content = strings.Join(strings.Split(content, "\n")[:height], "\n")
	}
	return style.Width(width - 2).Height(height).Render(content)
}

func (m Model) viewStatus(start, visible, total int) string {
	left := fmt.Sprintf("%d-%d/%d  %s", start+1, min(start+visible, total), total, m.lineup.Fragment())
	right := m.status
	if m.busy {
		right = m.spinner.View() + " " + right
	}
	if m.err != nil {
		right = styleError.Render(m.err.Error())
	}
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// highlightLinks styles the links of text, marking the link whose lineup
// index equals selected. first is the index of the first link of text.
func highlightLinks(text string, links []render.Link, first, selected int) string {
	var (
		b   strings.Builder
		pos int
	)
	for i, link := range links {
		at := strings.Index(text[pos:], link.Text)
		if at < 0 {
			continue
		}
		b.WriteString(text[pos : pos+at])
		style := styleLink
		if first+i == selected {
			style = styleLinkSelected
		}
		b.WriteString(style.Render(link.Text))
		pos += at + len(link.Text)
	}
	b.WriteString(text[pos:])
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// Focus returns the index of the focused panel.
func (m Model) Focus() int {
	return m.focus
}

// Status returns the current status line message.
func (m Model) Status() string {
	return m.status
}

// Err returns the last error shown to the user.
func (m Model) Err() error {
	return m.err
}
