package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Glooskovint/TesisAssistantMVP/internal/config"
	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
	"github.com/Glooskovint/TesisAssistantMVP/internal/payment"
	"github.com/Glooskovint/TesisAssistantMVP/internal/render"
	"github.com/Glooskovint/TesisAssistantMVP/internal/upload"
)

const reviewPrice = "$25 USD"

type turnitingMode int

const (
	turnitingIntro turnitingMode = iota
	turnitingPay
	turnitingPick
	turnitingTrack
)

// docItem implements list.Item for the document picker view.
type docItem struct {
	desc domain.Descriptor
}

func (i docItem) Title() string       { return "📄 " + i.desc.FileName }
func (i docItem) Description() string { return render.FormatSize(i.desc.SizeBytes) }
func (i docItem) FilterValue() string { return i.desc.FileName }

// turnitingModel drives the paid document review flow: pay, pick a document,
// then watch the upload progress.
type turnitingModel struct {
	app       *App
	mode      turnitingMode
	session   *upload.Session
	pay       payModel
	docList   list.Model
	pickErr   error
	cursor    int
	bar       progress.Model
	persisted map[string]bool
	notice    string
	width     int
	height    int
}

func newTurnitingModel(app *App) turnitingModel {
	env := config.Env()
	session := upload.New(
		upload.WithScheduler(app.Scheduler),
		upload.WithTick(env.UploadTick),
		upload.WithStep(env.UploadStep),
		upload.WithPolicy(sizePolicy(env.MaxUploadBytes)),
	)

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return turnitingModel{
		app:       app,
		session:   session,
		bar:       bar,
		persisted: make(map[string]bool),
	}
}

func sizePolicy(maxBytes int64) upload.Policy {
	return func(d domain.Descriptor) error {
		if d.SizeBytes > maxBytes {
			return fmt.Errorf("el archivo supera el límite de %s", render.FormatSize(maxBytes))
		}
		return nil
	}
}

func (m turnitingModel) resize(width, height int) turnitingModel {
	m.width = width
	m.height = height
	if m.mode == turnitingPick {
		m.docList.SetSize(max(30, width-8), max(10, height-10))
	}
	return m
}

func (m turnitingModel) captiveInput() bool {
	if m.mode == turnitingPick {
		return m.docList.FilterState() == list.Filtering
	}
	return m.mode == turnitingPay
}

// enterPick scans the documents directory and opens the picker list.
func (m turnitingModel) enterPick() turnitingModel {
	docs, err := m.app.Picker.List()
	m.pickErr = err

	items := make([]list.Item, len(docs))
	for i, d := range docs {
		items[i] = docItem{desc: d}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("205")).
		BorderForeground(lipgloss.Color("205"))

	l := list.New(items, delegate, max(30, m.width-8), max(10, m.height-10))
	l.Title = "Selecciona un documento"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	m.docList = l
	m.notice = ""
	m.mode = turnitingPick
	return m
}

func (m turnitingModel) shutdown() {
	m.session.Close()
}

// persistFinished saves newly completed reviews to the signed-in user's
// history. Called from the root repaint tick.
func (m turnitingModel) persistFinished() turnitingModel {
	if m.app.Store == nil {
		return m
	}
	user, ok := m.app.Identity.CurrentUser()
	if !ok {
		return m
	}

	for _, sub := range m.session.Submissions() {
		if sub.Status == domain.StatusUploading || m.persisted[sub.ID] {
			continue
		}
		rev := domain.Review{
			ID:        sub.ID,
			UserID:    user.ID,
			FileName:  sub.FileName,
			MimeType:  sub.MimeType,
			SizeBytes: sub.SizeBytes,
			Status:    sub.Status,
			Reason:    sub.Reason,
			CreatedAt: sub.CreatedAt,
		}
		if err := m.app.Store.SaveReview(context.Background(), rev); err != nil {
			m.app.Log.Warn("review_save_failed", map[string]interface{}{"id": sub.ID}, err)
			continue
		}
		m.persisted[sub.ID] = true
	}
	return m
}

func (m turnitingModel) update(msg tea.Msg) (turnitingModel, tea.Cmd) {
	switch m.mode {
	case turnitingPay:
		pay, cmd, done, outcome := m.pay.update(msg)
		m.pay = pay
		if done {
			if outcome == payment.Succeeded {
				m = m.enterPick()
			} else {
				m.mode = m.backFromPay()
			}
		}
		return m, cmd

	case turnitingPick:
		if key, ok := msg.(tea.KeyMsg); ok && m.docList.FilterState() != list.Filtering {
			switch key.String() {
			case "esc":
				m.mode = m.backFromPay()
				return m, nil
			case "enter":
				item, ok := m.docList.SelectedItem().(docItem)
				if !ok {
					return m, nil
				}
				sub, err := m.session.Add(item.desc)
				if err != nil {
					m.notice = err.Error()
					return m, nil
				}
				m.notice = "Subiendo " + sub.FileName
				m.mode = turnitingTrack
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.docList, cmd = m.docList.Update(msg)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case turnitingIntro:
		if key.String() == "p" || key.String() == "enter" {
			m.notice = ""
			m.pay = newPayModel(m.app.Payments, reviewPrice, "Revisión de documento")
			m.mode = turnitingPay
		}

	case turnitingTrack:
		switch key.String() {
		case "p":
			m.notice = ""
			m.pay = newPayModel(m.app.Payments, reviewPrice, "Revisión de documento")
			m.mode = turnitingPay
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.session.Len()-1 {
				m.cursor++
			}
		case "x":
			subs := m.session.Submissions()
			if m.cursor < len(subs) {
				m.session.Remove(subs[m.cursor].ID)
				if m.cursor > 0 {
					m.cursor--
				}
				if m.session.Len() == 0 {
					m.mode = turnitingIntro
				}
			}
		}
	}
	return m, nil
}

func (m turnitingModel) backFromPay() turnitingMode {
	if m.session.Len() > 0 {
		return turnitingTrack
	}
	return turnitingIntro
}

func (m turnitingModel) view() string {
	switch m.mode {
	case turnitingPay:
		return m.pay.view()
	case turnitingPick:
		return m.viewPick()
	case turnitingTrack:
		return m.viewTrack()
	}
	return m.viewIntro()
}

func (m turnitingModel) viewIntro() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📄 Turniting") + "\n\n")
	b.WriteString(infoStyle.Render("  Envía tu documento para revisión profesional.") + "\n")
	b.WriteString(infoStyle.Render("  Formatos: PDF, DOC, DOCX, TXT · hasta "+
		render.FormatSize(config.Env().MaxUploadBytes)) + "\n")
	b.WriteString(infoStyle.Render("  Costo por revisión: "+reviewPrice) + "\n\n")
	if m.notice != "" {
		b.WriteString(errorStyle.Render("  "+m.notice) + "\n\n")
	}
	b.WriteString(helpStyle.Render("  p: pagar y enviar documento"))
	return b.String()
}

func (m turnitingModel) viewPick() string {
	var b strings.Builder
	b.WriteString(infoStyle.Render("  "+m.app.Picker.Dir()) + "\n\n")

	if m.pickErr != nil {
		b.WriteString(errorStyle.Render("  "+m.pickErr.Error()) + "\n")
	}
	b.WriteString(m.docList.View() + "\n")

	if m.notice != "" {
		b.WriteString("\n" + errorStyle.Render("  "+m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("  /: filtrar │ enter: subir │ esc: cancelar"))
	return b.String()
}

func (m turnitingModel) viewTrack() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Mis documentos") + "\n\n")

	for i, sub := range m.session.Submissions() {
		cursor := "  "
		style := infoStyle
		if i == m.cursor {
			cursor = "▶ "
			style = activeStyle
		}

		b.WriteString(style.Render(fmt.Sprintf("%s%s (%s)", cursor, sub.FileName,
			render.FormatSize(sub.SizeBytes))) + "\n")

		switch sub.Status {
		case domain.StatusUploading:
			b.WriteString("    " + m.bar.ViewAs(float64(sub.Progress)/100) + "\n")
			b.WriteString(infoStyle.Render(fmt.Sprintf("    %s %d%%",
				render.StatusText(sub.Status), sub.Progress)) + "\n\n")
		case domain.StatusSucceeded:
			b.WriteString(activeStyle.Render("    ✓ "+render.StatusText(sub.Status)) + "\n\n")
		case domain.StatusFailed:
			line := "    ✗ " + render.StatusText(sub.Status)
			if sub.Reason != "" {
				line += ": " + sub.Reason
			}
			b.WriteString(errorStyle.Render(line) + "\n\n")
		}
	}

	if m.notice != "" {
		b.WriteString(activeStyle.Render("  "+m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("  j/k: navegar │ x: quitar │ p: nuevo documento"))
	return b.String()
}
