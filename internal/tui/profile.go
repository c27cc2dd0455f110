package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
	"github.com/Glooskovint/TesisAssistantMVP/internal/identity"
	"github.com/Glooskovint/TesisAssistantMVP/internal/render"
)

type profileMode int

const (
	profileLogin profileMode = iota
	profileRegister
	profileView
	profileEdit
)

// profileModel handles sign in, registration, and the account screen with the
// user's review history.
type profileModel struct {
	app     *App
	mode    profileMode
	inputs  []textinput.Model
	focus   int
	reviews []domain.Review
	err     error
	notice  string
}

func newProfileModel(app *App) profileModel {
	m := profileModel{app: app}
	if _, ok := app.Identity.CurrentUser(); ok {
		m.mode = profileView
		m.reviews = m.loadReviews()
	} else {
		m = m.enterLogin()
	}
	return m
}

func (m profileModel) captiveInput() bool {
	return m.mode == profileLogin || m.mode == profileRegister || m.mode == profileEdit
}

func (m profileModel) enterLogin() profileModel {
	m.mode = profileLogin
	m.inputs = makeInputs("Correo electrónico", "Contraseña")
	m.inputs[1].EchoMode = textinput.EchoPassword
	m.focus = 0
	m.err = nil
	return m
}

func (m profileModel) enterRegister() profileModel {
	m.mode = profileRegister
	m.inputs = makeInputs("Nombre", "Correo electrónico", "Contraseña")
	m.inputs[2].EchoMode = textinput.EchoPassword
	m.focus = 0
	m.err = nil
	return m
}

func (m profileModel) enterEdit(user domain.User) profileModel {
	m.mode = profileEdit
	m.inputs = makeInputs("Nombre", "Correo electrónico")
	m.inputs[0].SetValue(user.Name)
	m.inputs[1].SetValue(user.Email)
	m.focus = 0
	m.err = nil
	return m
}

func makeInputs(placeholders ...string) []textinput.Model {
	inputs := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[0].Focus()
	return inputs
}

func (m profileModel) loadReviews() []domain.Review {
	user, ok := m.app.Identity.CurrentUser()
	if !ok || m.app.Store == nil {
		return nil
	}
	reviews, err := m.app.Store.ListReviews(context.Background(), user.ID)
	if err != nil {
		m.app.Log.Warn("review_history_failed", nil, err)
		return nil
	}
	return reviews
}

func (m profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	key, isKey := msg.(tea.KeyMsg)

	if m.mode == profileView {
		if !isKey {
			return m, nil
		}
		switch key.String() {
		case "e":
			if user, ok := m.app.Identity.CurrentUser(); ok {
				return m.enterEdit(user), nil
			}
		case "r":
			m.reviews = m.loadReviews()
			m.notice = "Historial actualizado"
		case "s":
			m.app.Identity.Logout()
			m.reviews = nil
			m.notice = ""
			return m.enterLogin(), nil
		}
		return m, nil
	}

	if isKey {
		switch key.String() {
		case "esc":
			if m.mode == profileEdit {
				m.mode = profileView
				return m, nil
			}
			if m.mode == profileRegister {
				return m.enterLogin(), nil
			}
		case "ctrl+r":
			if m.mode == profileLogin {
				return m.enterRegister(), nil
			}
		case "tab", "down":
			return m.focusField((m.focus + 1) % len(m.inputs)), nil
		case "shift+tab", "up":
			return m.focusField((m.focus + len(m.inputs) - 1) % len(m.inputs)), nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				return m.focusField(m.focus + 1), nil
			}
			return m.submit(), nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m profileModel) focusField(i int) profileModel {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[i].Focus()
	return m
}

func (m profileModel) submit() profileModel {
	ctx := context.Background()
	var err error

	switch m.mode {
	case profileLogin:
		_, err = m.app.Identity.Login(ctx, m.inputs[0].Value(), m.inputs[1].Value())
	case profileRegister:
		_, err = m.app.Identity.Register(ctx, m.inputs[0].Value(), m.inputs[1].Value(), m.inputs[2].Value())
	case profileEdit:
		user, ok := m.app.Identity.CurrentUser()
		if !ok {
			return m.enterLogin()
		}
		user.Name = strings.TrimSpace(m.inputs[0].Value())
		user.Email = strings.TrimSpace(m.inputs[1].Value())
		err = m.app.Identity.UpdateUser(ctx, user)
	}

	if err != nil {
		m.err = err
		if errors.Is(err, identity.ErrInvalidCredentials) {
			m.err = errors.New("correo o contraseña incorrectos")
		} else if errors.Is(err, identity.ErrEmailTaken) {
			m.err = errors.New("ese correo ya está registrado")
		}
		return m
	}

	m.mode = profileView
	m.reviews = m.loadReviews()
	m.notice = ""
	return m
}

func (m profileModel) view() string {
	switch m.mode {
	case profileLogin:
		return m.viewForm("Iniciar Sesión", "enter: entrar │ ctrl+r: crear cuenta")
	case profileRegister:
		return m.viewForm("Crear Cuenta", "enter: registrarse │ esc: volver")
	case profileEdit:
		return m.viewForm("Editar Perfil", "enter: guardar │ esc: cancelar")
	}
	return m.viewProfile()
}

func (m profileModel) viewForm(title, help string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	for i := range m.inputs {
		b.WriteString("  " + m.inputs[i].View() + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  "+m.err.Error()) + "\n")
	}
	b.WriteString(helpStyle.Render("  " + help))
	return b.String()
}

func (m profileModel) viewProfile() string {
	user, ok := m.app.Identity.CurrentUser()
	if !ok {
		return infoStyle.Render("  Sesión cerrada")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("👤 "+user.Name) + "\n")
	b.WriteString(infoStyle.Render("  "+user.Email) + "\n\n")

	b.WriteString(activeStyle.Render("  Historial de Revisiones") + "\n")
	if len(m.reviews) == 0 {
		b.WriteString(infoStyle.Render("  Sin revisiones") + "\n")
	}
	for _, rev := range m.reviews {
		b.WriteString(fmt.Sprintf("  %s  %s (%s) · %s\n",
			infoStyle.Render(rev.CreatedAt.Format("2006-01-02")),
			rev.FileName,
			render.FormatSize(rev.SizeBytes),
			render.StatusText(rev.Status)))
	}

	if m.notice != "" {
		b.WriteString("\n" + activeStyle.Render("  "+m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("  e: editar │ r: actualizar historial │ s: cerrar sesión"))
	return b.String()
}
