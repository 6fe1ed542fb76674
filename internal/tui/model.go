// Package tui is the terminal rendition of the dashboard and detail screens.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stahnma/gh-explorer/internal/detail"
	"github.com/stahnma/gh-explorer/internal/explorer"
)

type screen int

const (
	dashboardScreen screen = iota
	detailScreen
)

// Lines taken by everything above the lists.
const (
	dashboardChrome = 5
	detailChrome    = 7
)

type searchDoneMsg struct {
	err error
}

type detailLoadedMsg struct {
	state detail.State
	err   error
}

// Model is the bubbletea model for the whole program.
type Model struct {
	ctx       context.Context
	dashboard *explorer.Dashboard
	loader    *detail.Loader
	logger    *slog.Logger

	screen    screen
	input     textinput.Model
	repos     list.Model
	issues    list.Model
	spinner   spinner.Model
	listFocus bool
	searching bool
	inputErr  string
	detail    detail.State
	width     int
	height    int
}

// New creates the model on the dashboard screen with the input focused.
func New(ctx context.Context, d *explorer.Dashboard, loader *detail.Loader, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "owner/repository"
	ti.Prompt = "> "
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		ctx:       ctx,
		dashboard: d,
		loader:    loader,
		logger:    logger,
		input:     ti,
		repos:     newList(entryItems(d), "Repositories"),
		issues:    newList(nil, "Open issues"),
		spinner:   s,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		m.repos.SetSize(msg.Width-h, max(msg.Height-v-dashboardChrome, 0))
		m.issues.SetSize(msg.Width-h, max(msg.Height-v-detailChrome, 0))
		m.input.Width = max(msg.Width-h-len(m.input.Prompt)-1, 0)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchDoneMsg:
		return m.searchDone(msg), nil

	case detailLoadedMsg:
		return m.detailLoaded(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == detailScreen {
			return m.updateDetail(msg)
		}
		return m.updateDashboard(msg)
	}

	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "shift+tab":
		m.listFocus = !m.listFocus
		if m.listFocus {
			m.input.Blur()
			return m, nil
		}
		return m, m.input.Focus()
	case "enter":
		if m.listFocus {
			item, ok := m.repos.SelectedItem().(entryItem)
			if !ok {
				return m, nil
			}
			return m.openDetail(item.entry.Repository.FullName)
		}
		if m.searching {
			return m, nil
		}
		m.searching = true
		return m, m.search(m.input.Value())
	}

	var cmd tea.Cmd
	if m.listFocus {
		m.repos, cmd = m.repos.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.loader.Cancel()
		m.screen = dashboardScreen
		m.detail = detail.State{}
		m.issues.SetItems(nil)
		return m, nil
	}
	var cmd tea.Cmd
	m.issues, cmd = m.issues.Update(msg)
	return m, cmd
}

func (m Model) search(identifier string) tea.Cmd {
	ctx, d := m.ctx, m.dashboard
	return func() tea.Msg {
		return searchDoneMsg{err: d.SubmitSearch(ctx, identifier)}
	}
}

func (m Model) searchDone(msg searchDoneMsg) Model {
	m.searching = false
	if msg.err == nil {
		m.inputErr = ""
		m.input.Reset()
		m.repos.SetItems(entryItems(m.dashboard))
		m.repos.Select(len(m.repos.Items()) - 1)
		return m
	}
	var ie *explorer.InputError
	if errors.As(msg.err, &ie) {
		m.inputErr = ie.Error()
		return m
	}
	m.logger.Error("search failed", "error", msg.err)
	m.inputErr = "could not save the repository list"
	return m
}

// openDetail switches to the detail screen and starts its load. The reset
// happens here, before the fetch is handed to bubbletea.
func (m Model) openDetail(identifier string) (tea.Model, tea.Cmd) {
	m.screen = detailScreen
	fetch := m.loader.Start(m.ctx, identifier)
	m.detail = m.loader.State()
	m.issues.SetItems(nil)
	return m, func() tea.Msg {
		st, err := fetch()
		return detailLoadedMsg{state: st, err: err}
	}
}

func (m Model) detailLoaded(msg detailLoadedMsg) Model {
	if errors.Is(msg.err, detail.ErrStale) || m.screen != detailScreen || msg.state.Seq != m.detail.Seq {
		return m
	}
	m.detail = msg.state
	m.issues.SetItems(issueItems(msg.state.Issues))
	return m
}

func (m Model) View() string {
	if m.screen == detailScreen {
		return docStyle.Render(m.detailView())
	}
	return docStyle.Render(m.dashboardView())
}

func (m Model) dashboardView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Explore GitHub repositories"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	if m.searching {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")
	if m.inputErr != "" {
		b.WriteString(errorStyle.Render(m.inputErr))
	}
	b.WriteString("\n")
	b.WriteString(m.repos.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter: search/open  tab: switch focus  esc: quit"))
	return b.String()
}

func (m Model) detailView() string {
	var b strings.Builder
	switch m.detail.Status {
	case detail.NotLoaded:
		fmt.Fprintf(&b, "%s Loading %s\n", m.spinner.View(), titleStyle.Render(m.detail.Identifier))
	case detail.Failed:
		b.WriteString(errorStyle.Render("could not load repository " + m.detail.Identifier))
		b.WriteString("\n")
	case detail.Loaded:
		r := m.detail.Repository
		b.WriteString(titleStyle.Render(r.FullName))
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(r.Owner.Login))
		b.WriteString("\n")
		b.WriteString(r.DescriptionText())
		b.WriteString("\n\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			statStyle.Render(fmt.Sprintf("%d Stars", r.StargazersCount)),
			statStyle.Render(fmt.Sprintf("%d Forks", r.ForksCount)),
			statStyle.Render(fmt.Sprintf("%d Open issues", r.OpenIssuesCount)),
		))
		b.WriteString("\n\n")
		b.WriteString(m.issues.View())
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("esc: back"))
	return b.String()
}
