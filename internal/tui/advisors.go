package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Glooskovint/TesisAssistantMVP/internal/conversation"
	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
	"github.com/Glooskovint/TesisAssistantMVP/internal/payment"
	tesisstrings "github.com/Glooskovint/TesisAssistantMVP/internal/strings"
)

type advisorsMode int

const (
	advisorsBrowse advisorsMode = iota
	advisorsSearch
	advisorsChat
	advisorsPay
)

// advisorsModel is the advisor directory with search, chat, and scheduling.
type advisorsModel struct {
	app       *App
	mode      advisorsMode
	search    textinput.Model
	results   []domain.Advisor
	cursor    int
	chat      chatModel
	pay       payModel
	scheduled map[string]bool
	notice    string
	width     int
	height    int
}

func newAdvisorsModel(app *App) advisorsModel {
	ti := textinput.New()
	ti.Placeholder = "Buscar por nombre o especialidad..."
	ti.Width = 40

	return advisorsModel{
		app:       app,
		search:    ti,
		results:   app.Advisors.All(),
		scheduled: make(map[string]bool),
	}
}

func (m advisorsModel) resize(width, height int) advisorsModel {
	m.width = width
	m.height = height
	return m
}

func (m advisorsModel) captiveInput() bool {
	return m.mode != advisorsBrowse
}

func (m advisorsModel) shutdown() {
	if m.mode == advisorsChat {
		m.chat.session.Close()
	}
}

func (m advisorsModel) update(msg tea.Msg) (advisorsModel, tea.Cmd) {
	switch m.mode {
	case advisorsChat:
		chat, cmd, done := m.chat.update(msg)
		m.chat = chat
		if done {
			m.mode = advisorsBrowse
		}
		return m, cmd

	case advisorsPay:
		pay, cmd, done, outcome := m.pay.update(msg)
		m.pay = pay
		if done {
			m.mode = advisorsBrowse
			if outcome == payment.Succeeded {
				if a, ok := m.selected(); ok {
					m.scheduled[a.ID] = true
					m.notice = "Sesión agendada con " + a.Name
				}
			}
		}
		return m, cmd

	case advisorsSearch:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "esc":
				m.mode = advisorsBrowse
				m.search.Blur()
				return m, nil
			case "enter":
				m.mode = advisorsBrowse
				m.search.Blur()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.results = m.app.Advisors.Search(m.search.Value())
		m.cursor = 0
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "/":
		m.mode = advisorsSearch
		m.notice = ""
		m.search.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
	case "m", "enter":
		if a, ok := m.selected(); ok {
			m.notice = ""
			m.chat = newChatModel(m.openChat(a), m.width, m.height)
			m.mode = advisorsChat
		}
	case "a":
		if a, ok := m.selected(); ok {
			if !a.Available {
				m.notice = a.Name + " no está disponible"
				return m, nil
			}
			m.notice = ""
			m.pay = newPayModel(m.app.Payments, a.Price, "Agendar sesión con "+a.Name)
			m.mode = advisorsPay
		}
	}
	return m, nil
}

func (m advisorsModel) selected() (domain.Advisor, bool) {
	if m.cursor >= len(m.results) {
		return domain.Advisor{}, false
	}
	return m.results[m.cursor], true
}

func (m advisorsModel) openChat(a domain.Advisor) *conversation.Session {
	return conversation.New(a.Counterpart(),
		conversation.WithScheduler(m.app.Scheduler),
		conversation.WithRand(rand.New(rand.NewSource(time.Now().UnixNano()))),
	)
}

func (m advisorsModel) view() string {
	switch m.mode {
	case advisorsChat:
		return m.chat.view()
	case advisorsPay:
		return m.pay.view()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Asesores de Tesis") + "\n\n")

	if m.mode == advisorsSearch || m.search.Value() != "" {
		b.WriteString("  " + m.search.View() + "\n\n")
	}

	if len(m.results) == 0 {
		b.WriteString(infoStyle.Render("  No se encontraron asesores") + "\n")
	}

	for i, a := range m.results {
		cursor := "  "
		style := infoStyle
		if i == m.cursor {
			cursor = "▶ "
			style = activeStyle
		}

		availability := activeStyle.Render("disponible")
		if !a.Available {
			availability = errorStyle.Render("no disponible")
		}
		if m.scheduled[a.ID] {
			availability = availability + infoStyle.Render(" · sesión agendada")
		}

		b.WriteString(style.Render(fmt.Sprintf("%s★ %.1f  %s", cursor, a.Rating, a.Name)) + "\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("    %s · %s",
			tesisstrings.Truncate(a.Specialty, 40), a.Location)) + "\n")
		b.WriteString(fmt.Sprintf("    %s · %d reseñas · %s\n\n",
			infoStyle.Render(a.Price), a.Reviews, availability))
	}

	if m.notice != "" {
		b.WriteString(activeStyle.Render("  "+m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("  j/k: navegar │ /: buscar │ m: mensaje │ a: agendar"))
	return b.String()
}
