// Package picker implements the interactive exercise picker behind
// `fitcue pick`. Typing re-ranks the active tab's provider after a short
// debounce; Enter returns the highlighted exercise name.
package picker

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DefaultDebounce is the delay after the last keystroke before a fetch.
const DefaultDebounce = 100 * time.Millisecond

type pickerState int

const (
	stateIdle pickerState = iota
	stateLoading
	stateLoaded
	stateEmpty
	stateError
	stateCancelled
)

// fetchDoneMsg is sent when an async Provider.Fetch completes.
type fetchDoneMsg struct {
	requestID uint64
	items     []Item
	err       error
}

// debounceMsg fires after the debounce timer expires.
type debounceMsg struct {
	id uint64
}

// initMsg triggers the first fetch through Update so the state change is
// captured by the runtime.
type initMsg struct{}

// Model is the Bubble Tea model for the picker.
type Model struct {
	state     pickerState
	tabs      []TabDef
	activeTab int
	items     []Item
	selection int // -1 when empty
	query     string
	err       error
	debounce  time.Duration

	requestID   uint64
	cancelFetch context.CancelFunc
	debounceID  uint64

	width  int
	height int

	result string
}

// NewModel creates a picker over tabs. An initial query pre-fills the
// input line. debounce <= 0 uses DefaultDebounce.
func NewModel(tabs []TabDef, query string, debounce time.Duration) Model {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return Model{
		state:     stateIdle,
		tabs:      tabs,
		selection: -1,
		query:     query,
		debounce:  debounce,
	}
}

// Result returns the selected exercise name, or "" if cancelled.
func (m Model) Result() string {
	return m.result
}

// Cancelled reports whether the user quit without choosing.
func (m Model) Cancelled() bool {
	return m.state == stateCancelled
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return initMsg{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchDoneMsg:
		return m.handleFetchDone(msg)

	case debounceMsg:
		if msg.id != m.debounceID {
			return m, nil
		}
		return m, m.startFetch()

	case initMsg:
		return m, m.startFetch()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.state = stateCancelled
		m.cancelInflight()
		return m, tea.Quit

	case tea.KeyEnter:
		if m.selection >= 0 && m.selection < len(m.items) {
			m.result = m.items[m.selection].Value
		} else if q := strings.TrimSpace(m.query); q != "" {
			// Nothing matched: accept the typed name as a new exercise.
			m.result = q
		}
		m.cancelInflight()
		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlP:
		if m.state != stateLoading && m.selection > 0 {
			m.selection--
		}
		return m, nil

	case tea.KeyDown, tea.KeyCtrlN:
		if m.state != stateLoading && m.selection < len(m.items)-1 {
			m.selection++
		}
		return m, nil

	case tea.KeyTab:
		if len(m.tabs) > 1 {
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			m.selection = -1
			return m, m.startFetch()
		}
		return m, nil

	case tea.KeyBackspace:
		if m.query != "" {
			runes := []rune(m.query)
			m.query = string(runes[:len(runes)-1])
			return m, m.startDebounce()
		}
		return m, nil

	case tea.KeySpace:
		m.query += " "
		return m, m.startDebounce()

	case tea.KeyRunes:
		m.query += string(msg.Runes)
		return m, m.startDebounce()
	}

	return m, nil
}

func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.requestID != m.requestID {
		return m, nil
	}

	if msg.err != nil {
		m.state = stateError
		m.err = msg.err
		m.items = nil
		m.selection = -1
		return m, nil
	}

	m.items = msg.items
	if len(m.items) == 0 {
		m.state = stateEmpty
		m.selection = -1
	} else {
		m.state = stateLoaded
		m.clampSelection()
	}
	return m, nil
}

func (m *Model) startDebounce() tea.Cmd {
	m.debounceID++
	id := m.debounceID
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
}

// startFetch cancels any in-flight fetch, bumps requestID, and returns a
// command that calls the active tab's provider.
func (m *Model) startFetch() tea.Cmd {
	m.cancelInflight()
	m.requestID++
	m.state = stateLoading

	tab, ok := m.currentTab()
	if !ok || tab.Provider == nil {
		reqID := m.requestID
		return func() tea.Msg {
			return fetchDoneMsg{requestID: reqID, err: fmt.Errorf("no provider configured")}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel

	req := Request{
		RequestID: m.requestID,
		Query:     m.query,
		TabID:     tab.ID,
		Limit:     m.listHeight(),
	}
	p := tab.Provider
	return func() tea.Msg {
		resp, err := p.Fetch(ctx, req)
		if err != nil {
			return fetchDoneMsg{requestID: req.RequestID, err: err}
		}
		return fetchDoneMsg{requestID: req.RequestID, items: resp.Items}
	}
}

func (m *Model) cancelInflight() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

func (m *Model) clampSelection() {
	if len(m.items) == 0 {
		m.selection = -1
		return
	}
	if m.selection < 0 {
		m.selection = 0
	}
	if m.selection >= len(m.items) {
		m.selection = len(m.items) - 1
	}
}

func (m Model) currentTab() (TabDef, bool) {
	if m.activeTab >= 0 && m.activeTab < len(m.tabs) {
		return m.tabs[m.activeTab], true
	}
	return TabDef{}, false
}

// listHeight is the number of visible rows: terminal height minus the tab
// bar and the query line.
func (m Model) listHeight() int {
	const chrome = 2
	h := m.height - chrome
	if h < 1 {
		h = 20
	}
	return h
}

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	queryStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewTabBar())
	b.WriteRune('\n')
	b.WriteString(m.viewContent())
	b.WriteRune('\n')
	b.WriteString(queryStyle.Render("> ") + m.query)
	return b.String()
}

func (m Model) viewTabBar() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		label := " " + tab.Label + " "
		if i == m.activeTab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewContent() string {
	switch m.state {
	case stateIdle, stateLoading:
		return dimStyle.Render("Loading...")
	case stateEmpty:
		if strings.TrimSpace(m.query) != "" {
			return dimStyle.Render("No matches, Enter logs \"" + Sanitize(strings.TrimSpace(m.query)) + "\"")
		}
		return dimStyle.Render("No suggestions yet")
	case stateError:
		msg := "Error"
		if m.err != nil {
			msg = fmt.Sprintf("Error: %s", m.err)
		}
		return errorStyle.Render(msg)
	case stateCancelled:
		return dimStyle.Render("Cancelled")
	case stateLoaded:
		return m.viewList()
	default:
		return ""
	}
}

// viewList renders one row per item: marker, name, then the dimmed detail
// if it fits the terminal width.
func (m Model) viewList() string {
	maxItems := m.listHeight()
	rows := make([]string, 0, min(len(m.items), maxItems))
	for i, item := range m.items {
		if i >= maxItems {
			break
		}

		name := Sanitize(item.Value)
		detail := ""
		if m.width > 4 {
			avail := m.width - 2
			name = MiddleTruncate(name, avail)
			if item.Detail != "" {
				room := avail - runewidth.StringWidth(name) - 2
				if room >= 8 {
					detail = "  " + Truncate(Sanitize(item.Detail), room)
				}
			}
		}

		marker, style := "  ", normalStyle
		if i == m.selection {
			marker, style = "> ", selectedStyle
		}
		rows = append(rows, style.Render(marker+name)+dimStyle.Render(detail))
	}
	return strings.Join(rows, "\n")
}
