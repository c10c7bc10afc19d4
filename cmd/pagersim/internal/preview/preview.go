// Package preview is an interactive terminal view of a simulated pager.
package preview

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	pagertest "github.com/go-drift/infinitepager/pkg/testing"
)

// KeyMap holds the preview's key bindings.
type KeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Extras   key.Binding
	Teardown key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "swipe back")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "swipe forward")),
		Extras:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle extra pages")),
		Teardown: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "teardown and restore")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// snapMsg asks the model to run the snap queued by the last swipe.
type snapMsg struct{}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	slotStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	shadowStyle  = slotStyle.BorderForeground(lipgloss.Color("240")).Foreground(lipgloss.Color("244"))
	liveStyle    = slotStyle.BorderForeground(lipgloss.Color("42"))
	currentStyle = slotStyle.BorderForeground(lipgloss.Color("39")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model of the preview.
type Model struct {
	Keys KeyMap

	tester     *pagertest.PagerTester
	pages      []string
	extra      []string
	showExtras bool
	status     string
}

// New creates a preview over pages. extra pages are shown and hidden with
// the Extras key.
func New(tester *pagertest.PagerTester, pages, extra []string) Model {
	return Model{
		Keys:   DefaultKeyMap(),
		tester: tester,
		pages:  slices.Clone(pages),
		extra:  slices.Clone(extra),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapMsg:
		m.tester.Pump()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Prev):
			m.tester.Swipe(-1)
			return m, snap
		case key.Matches(msg, m.Keys.Next):
			m.tester.Swipe(1)
			return m, snap
		case key.Matches(msg, m.Keys.Extras):
			m.showExtras = !m.showExtras
			if m.showExtras {
				m.tester.SetTitles(slices.Concat(m.pages, m.extra)...)
			} else {
				m.tester.SetTitles(m.pages...)
			}
			m.status = fmt.Sprintf("extras shown: %v", m.showExtras)
		case key.Matches(msg, m.Keys.Teardown):
			if err := m.tester.Teardown(); err != nil {
				m.status = err.Error()
			} else {
				m.status = "restored from saved state"
			}
		}
	}
	return m, nil
}

func snap() tea.Msg {
	return snapMsg{}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("infinite pager"))
	b.WriteString("\n\n")

	cells := make([]string, 0, len(m.tester.Window()))
	for _, s := range m.tester.Window() {
		label := fmt.Sprintf("%s\n%d", s.Title, s.Absolute)
		style := slotStyle
		switch {
		case s.Current:
			style = currentStyle
		case s.Shadow:
			style = shadowStyle
		case s.Live:
			style = liveStyle
		}
		cells = append(cells, style.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n")

	page := m.tester.CurrentPage()
	title := "-"
	if page != nil {
		title = page.Title
	}
	a := m.tester.Adapter
	fmt.Fprintf(&b, "page %d/%d %q  margin=%d edge=%v strategy=%v\n",
		m.tester.Current()+1, a.RelativeCount(), title, a.Margin(), a.Edge(), a.Strategy())

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	for _, err := range m.tester.Errors() {
		b.WriteString(errorStyle.Render(err.Error()))
		b.WriteString("\n")
	}

	var help []string
	for _, k := range []key.Binding{m.Keys.Prev, m.Keys.Next, m.Keys.Extras, m.Keys.Teardown, m.Keys.Quit} {
		help = append(help, k.Help().Key+" "+k.Help().Desc)
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	b.WriteString("\n")
	return b.String()
}

// Run starts the preview on the terminal.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
