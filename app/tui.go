package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sys/unix"

	"find-text/search"
)

// Styles shared by the interactive browser.
var (
	appStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7"))

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")).
			Bold(true)

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a")).
			Bold(true)

	contextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0af68")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a9b1d6"))
)

type resultMsg search.SearchResult

type searchStartedMsg struct {
	ch <-chan search.SearchResult
}

type searchDoneMsg struct{}

type searchFailedMsg struct{ err error }

type memTickMsg string

type model struct {
	cfg  search.SearchConfig
	quit *search.CancelToken

	results <-chan search.SearchResult
	found   []search.SearchResult

	loading bool
	err     error
	started time.Time
	elapsed time.Duration

	page     int
	pageSize int

	width  int
	height int

	memUsage string
}

func newModel(cfg search.SearchConfig) model {
	return model{
		cfg:      cfg,
		quit:     &search.CancelToken{},
		loading:  true,
		started:  time.Now(),
		pageSize: 5,
	}
}

// RunTUI opens the interactive result browser for one search.
func RunTUI(cfg search.SearchConfig) error {
	_, err := tea.NewProgram(newModel(cfg), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.startSearch(), memUsageTick())
}

// startSearch kicks off the engine; the channel is then pumped one result
// per message so the list fills in live.
func (m model) startSearch() tea.Cmd {
	cfg, quit := m.cfg, m.quit
	return func() tea.Msg {
		ch, err := search.Search(cfg, quit)
		if err != nil {
			return searchFailedMsg{err: err}
		}
		return searchStartedMsg{ch: ch}
	}
}

func (m model) waitForResult() tea.Cmd {
	return func() tea.Msg {
		r, ok := <-m.results
		if !ok {
			return searchDoneMsg{}
		}
		return resultMsg(r)
	}
}

// memUsageTick refreshes the RAM gauge in the footer.
func memUsageTick() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		var si unix.Sysinfo_t
		if err := unix.Sysinfo(&si); err != nil {
			return memTickMsg("")
		}
		usedMB := (si.Totalram - si.Freeram) * uint64(si.Unit) / (1024 * 1024)
		return memTickMsg(fmt.Sprintf(" • RAM: %d MB", usedMB))
	})
}

func (m model) totalPages() int {
	if len(m.found) == 0 {
		return 1
	}
	return (len(m.found) + m.pageSize - 1) / m.pageSize
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case searchStartedMsg:
		m.results = msg.ch
		return m, m.waitForResult()

	case resultMsg:
		m.found = append(m.found, search.SearchResult(msg))
		return m, m.waitForResult()

	case searchDoneMsg:
		m.loading = false
		m.elapsed = time.Since(m.started)
		return m, nil

	case searchFailedMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case memTickMsg:
		m.memUsage = string(msg)
		return m, memUsageTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit.Set()
			return m, tea.Quit
		case "n", "right", "enter", "pgdown":
			if m.page < m.totalPages()-1 {
				m.page++
			}
			return m, nil
		case "p", "left", "pgup":
			if m.page > 0 {
				m.page--
			}
			return m, nil
		case "g", "home":
			m.page = 0
			return m, nil
		case "G", "end":
			m.page = m.totalPages() - 1
			return m, nil
		}
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("find-text — %q in %s", m.cfg.Query, m.cfg.SearchPath())))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.loading:
		b.WriteString(warningStyle.Render(fmt.Sprintf("⏳ Searching… %d matches so far", len(m.found))))
		b.WriteString("\n\n")
		b.WriteString(m.renderPage())
	case len(m.found) == 0:
		b.WriteString(warningStyle.Render("No matches found"))
		b.WriteString("\n")
	default:
		b.WriteString(matchStyle.Render(fmt.Sprintf("✅ %d matches in %.2fs", len(m.found), m.elapsed.Seconds())))
		b.WriteString("\n\n")
		b.WriteString(m.renderPage())
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf(
		"page %d/%d • n/p page • g/G first/last • q quit%s",
		m.page+1, m.totalPages(), m.memUsage,
	)))

	return appStyle.Render(b.String())
}

// renderPage renders the current page of results with their context windows.
func (m model) renderPage() string {
	start := m.page * m.pageSize
	if start >= len(m.found) {
		return contextStyle.Render("(no results on this page yet)")
	}
	end := start + m.pageSize
	if end > len(m.found) {
		end = len(m.found)
	}

	var b strings.Builder
	for _, r := range m.found[start:end] {
		b.WriteString(fileStyle.Render(fmt.Sprintf("%s:%d", r.Path, r.LineNumber)))
		b.WriteString("\n")
		for _, ctx := range r.ContextBefore {
			b.WriteString(contextStyle.Render(fmt.Sprintf("%4d | %s", ctx.Number, ctx.Text)))
			b.WriteString("\n")
		}
		b.WriteString(matchStyle.Render(fmt.Sprintf("  >%d | %s", r.LineNumber, r.Line)))
		b.WriteString("\n")
		for _, ctx := range r.ContextAfter {
			b.WriteString(contextStyle.Render(fmt.Sprintf("%4d | %s", ctx.Number, ctx.Text)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
