package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Glooskovint/TesisAssistantMVP/internal/conversation"
	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
	tesisstrings "github.com/Glooskovint/TesisAssistantMVP/internal/strings"
)

// chatModel is the conversation overlay opened from the advisor directory.
type chatModel struct {
	session  *conversation.Session
	viewport viewport.Model
	input    textinput.Model
	width    int
	height   int
}

func newChatModel(session *conversation.Session, width, height int) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Escribe un mensaje..."
	ti.CharLimit = 500
	ti.Width = max(20, width-8)
	ti.Focus()

	vp := viewport.New(max(20, width-6), max(5, height-10))

	m := chatModel{
		session:  session,
		viewport: vp,
		input:    ti,
		width:    width,
		height:   height,
	}
	m.refresh()
	return m
}

// update returns done=true when the user closes the chat.
func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.session.Close()
			return m, nil, true
		case "enter":
			if _, ok := m.session.Send(m.input.Value()); ok {
				m.input.SetValue("")
				m.refresh()
			}
			return m, nil, false
		}
	}

	if _, ok := msg.(tickMsg); ok {
		m.refresh()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...), false
}

func (m *chatModel) refresh() {
	var b strings.Builder
	for _, msg := range m.session.Messages() {
		sender := m.session.Counterpart().Name
		style := infoStyle
		if msg.Sender == domain.SenderUser {
			sender = "Tú"
			style = activeStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s  %s", sender, msg.Timestamp.Format("15:04"))) + "\n")
		b.WriteString(tesisstrings.WordWrap(msg.Text, m.viewport.Width) + "\n\n")
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(b.String())
	if atBottom {
		m.viewport.GotoBottom()
	}
}

func (m chatModel) view() string {
	var b strings.Builder
	cp := m.session.Counterpart()
	b.WriteString(titleStyle.Render("💬 "+cp.Name) + "\n")
	b.WriteString(infoStyle.Render("  "+cp.Specialty) + "\n\n")

	b.WriteString(boxStyle.Width(max(20, m.width-4)).Render(m.viewport.View()) + "\n")

	if m.session.Pending() {
		b.WriteString(infoStyle.Render("  escribiendo...") + "\n")
	}
	b.WriteString("\n  " + m.input.View() + "\n")
	b.WriteString(helpStyle.Render("  enter: enviar │ esc: cerrar"))
	return b.String()
}
