// Package tui provides the interactive terminal interface using Bubble Tea.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Glooskovint/TesisAssistantMVP/internal/advisor"
	"github.com/Glooskovint/TesisAssistantMVP/internal/guide"
	"github.com/Glooskovint/TesisAssistantMVP/internal/identity"
	"github.com/Glooskovint/TesisAssistantMVP/internal/logging"
	"github.com/Glooskovint/TesisAssistantMVP/internal/payment"
	"github.com/Glooskovint/TesisAssistantMVP/internal/picker"
	"github.com/Glooskovint/TesisAssistantMVP/internal/schedule"
	"github.com/Glooskovint/TesisAssistantMVP/internal/storage"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginLeft(2)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 2)
)

// Tab is one of the four bottom navigation destinations.
type Tab int

const (
	TabGuides Tab = iota
	TabAdvisors
	TabTurniting
	TabProfile
)

var tabNames = []string{"Guías", "Asesores", "Turniting", "Perfil"}

// App bundles the collaborators the interface drives.
type App struct {
	Scheduler *schedule.Scheduler
	Identity  identity.Provider
	Advisors  *advisor.Catalog
	Guides    *guide.Feed
	Picker    *picker.Picker
	Payments  *payment.Processor
	Store     *storage.Storage
	Log       *logging.Logger
}

// Model is the root TUI model. Each tab keeps its own sub-model; the root
// routes messages to whichever tab is visible.
type Model struct {
	app      *App
	tab      Tab
	guides   guidesModel
	advisors advisorsModel
	turnitin turnitingModel
	profile  profileModel
	width    int
	height   int
	ready    bool
	quitting bool
}

type tickMsg time.Time

// New creates the root model.
func New(app *App) Model {
	return Model{
		app:      app,
		tab:      TabGuides,
		guides:   newGuidesModel(app),
		advisors: newAdvisorsModel(app),
		turnitin: newTurnitingModel(app),
		profile:  newProfileModel(app),
	}
}

// Init starts the repaint tick. Advisor replies and upload progress land on
// timer goroutines outside the Bubble Tea loop, so the view polls their state.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.shutdown()
			return m, tea.Quit
		case "q":
			if !m.captiveInput() {
				m.quitting = true
				m.shutdown()
				return m, tea.Quit
			}
		case "1", "2", "3", "4":
			if !m.captiveInput() {
				m.tab = Tab(int(msg.String()[0] - '1'))
				return m, nil
			}
		case "tab":
			if !m.captiveInput() {
				m.tab = (m.tab + 1) % 4
				return m, nil
			}
		case "shift+tab":
			if !m.captiveInput() {
				m.tab = (m.tab + 3) % 4
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.advisors = m.advisors.resize(msg.Width, msg.Height)
		m.turnitin = m.turnitin.resize(msg.Width, msg.Height)

	case tickMsg:
		m.turnitin = m.turnitin.persistFinished()
	}

	var cmd tea.Cmd
	switch m.tab {
	case TabGuides:
		m.guides, cmd = m.guides.update(msg)
	case TabAdvisors:
		m.advisors, cmd = m.advisors.update(msg)
	case TabTurniting:
		m.turnitin, cmd = m.turnitin.update(msg)
	case TabProfile:
		m.profile, cmd = m.profile.update(msg)
	}

	if _, ok := msg.(tickMsg); ok {
		cmd = tea.Batch(cmd, tickCmd())
	}
	return m, cmd
}

// captiveInput reports whether the visible tab is in a mode that consumes
// plain keystrokes, so global shortcuts must stay out of the way.
func (m Model) captiveInput() bool {
	switch m.tab {
	case TabAdvisors:
		return m.advisors.captiveInput()
	case TabTurniting:
		return m.turnitin.captiveInput()
	case TabProfile:
		return m.profile.captiveInput()
	}
	return false
}

func (m Model) shutdown() {
	m.advisors.shutdown()
	m.turnitin.shutdown()
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "¡Hasta pronto!\n"
	}
	if !m.ready {
		return "\n  Cargando..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🎓 Tesis Assistant") + "\n")
	b.WriteString(m.tabBar() + "\n\n")

	switch m.tab {
	case TabGuides:
		b.WriteString(m.guides.view())
	case TabAdvisors:
		b.WriteString(m.advisors.view())
	case TabTurniting:
		b.WriteString(m.turnitin.view())
	case TabProfile:
		b.WriteString(m.profile.view())
	}

	b.WriteString(helpStyle.Render("  1-4: pestañas │ tab: siguiente │ q: salir"))
	return b.String()
}

func (m Model) tabBar() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the TUI.
func Run(app *App) error {
	p := tea.NewProgram(New(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
