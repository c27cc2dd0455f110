package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Glooskovint/TesisAssistantMVP/internal/payment"
)

const (
	fieldNumber = iota
	fieldName
	fieldExpiry
	fieldCVV
	fieldCount
)

type paymentResultMsg struct {
	outcome payment.Outcome
	err     error
}

// payModel is the checkout form overlay shared by advisor scheduling and the
// document review flow.
type payModel struct {
	processor   *payment.Processor
	inputs      [fieldCount]textinput.Model
	focus       int
	spinner     spinner.Model
	processing  bool
	cancel      context.CancelFunc
	amountLabel string
	description string
	err         error
}

func newPayModel(processor *payment.Processor, amountLabel, description string) payModel {
	m := payModel{
		processor:   processor,
		amountLabel: amountLabel,
		description: description,
	}

	labels := [fieldCount]string{"Número de tarjeta", "Nombre del titular", "MM/YY", "CVV"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.Width = 30
		m.inputs[i] = ti
	}
	m.inputs[fieldNumber].CharLimit = 19
	m.inputs[fieldExpiry].CharLimit = 5
	m.inputs[fieldExpiry].Width = 7
	m.inputs[fieldCVV].CharLimit = 4
	m.inputs[fieldCVV].Width = 5
	m.inputs[fieldCVV].EchoMode = textinput.EchoPassword
	m.inputs[fieldNumber].Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	m.spinner = s

	return m
}

// update returns done=true with the outcome once the payment resolves or the
// form is dismissed.
func (m payModel) update(msg tea.Msg) (payModel, tea.Cmd, bool, payment.Outcome) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.processing {
			if msg.String() == "esc" && m.cancel != nil {
				m.cancel()
			}
			return m, nil, false, ""
		}

		switch msg.String() {
		case "esc":
			return m, nil, true, payment.Canceled
		case "enter":
			if m.focus < fieldCount-1 {
				return m.focusField(m.focus + 1), nil, false, ""
			}
			return m.submit()
		case "tab", "down":
			return m.focusField((m.focus + 1) % fieldCount), nil, false, ""
		case "shift+tab", "up":
			return m.focusField((m.focus + fieldCount - 1) % fieldCount), nil, false, ""
		}

	case paymentResultMsg:
		m.processing = false
		m.cancel = nil
		if msg.err != nil {
			m.err = msg.err
			return m, nil, false, ""
		}
		return m, nil, true, msg.outcome

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd, false, ""
	}

	if !m.processing {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		switch m.focus {
		case fieldNumber:
			m.setFormatted(fieldNumber, payment.FormatCardNumber(m.inputs[fieldNumber].Value()))
		case fieldExpiry:
			m.setFormatted(fieldExpiry, payment.FormatExpiry(m.inputs[fieldExpiry].Value()))
		}
		return m, cmd, false, ""
	}
	return m, nil, false, ""
}

func (m *payModel) setFormatted(field int, value string) {
	if m.inputs[field].Value() != value {
		m.inputs[field].SetValue(value)
		m.inputs[field].CursorEnd()
	}
}

func (m payModel) focusField(i int) payModel {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[i].Focus()
	return m
}

func (m payModel) submit() (payModel, tea.Cmd, bool, payment.Outcome) {
	card := payment.Card{
		Number: m.inputs[fieldNumber].Value(),
		Name:   m.inputs[fieldName].Value(),
		Expiry: m.inputs[fieldExpiry].Value(),
		CVV:    m.inputs[fieldCVV].Value(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.processing = true
	m.err = nil

	request := func() tea.Msg {
		outcome, err := m.processor.Request(ctx, card, m.amountLabel, m.description)
		return paymentResultMsg{outcome: outcome, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, request), false, ""
}

func (m payModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("💳 Pago") + "\n")
	b.WriteString(infoStyle.Render("  "+m.description+" · "+m.amountLabel) + "\n\n")

	if m.processing {
		b.WriteString("  " + m.spinner.View() + " Procesando pago...\n")
		b.WriteString(helpStyle.Render("  esc: cancelar"))
		return b.String()
	}

	for i := range m.inputs {
		b.WriteString("  " + m.inputs[i].View() + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  "+m.err.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render("  enter: siguiente/pagar │ tab: campo │ esc: cancelar"))
	return b.String()
}
