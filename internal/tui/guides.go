package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Glooskovint/TesisAssistantMVP/internal/guide"
)

// guidesModel is the home feed of video guides.
type guidesModel struct {
	feed   *guide.Feed
	cursor int
}

func newGuidesModel(app *App) guidesModel {
	return guidesModel{feed: app.Guides}
}

func (m guidesModel) update(msg tea.Msg) (guidesModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.feed.Len()-1 {
			m.cursor++
		}
	case "l", " ":
		guides := m.feed.Guides()
		if m.cursor < len(guides) {
			m.feed.ToggleLike(guides[m.cursor].ID)
		}
	}
	return m, nil
}

func (m guidesModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Guías en Video") + "\n\n")

	for i, g := range m.feed.Guides() {
		cursor := "  "
		style := infoStyle
		if i == m.cursor {
			cursor = "▶ "
			style = activeStyle
		}

		heart := "♡"
		if m.feed.Liked(g.ID) {
			heart = "♥"
		}

		b.WriteString(style.Render(fmt.Sprintf("%s%s", cursor, g.Title)) + "\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("    %s · %s %d · %d comentarios",
			g.Author, heart, g.Likes, g.Comments)) + "\n\n")
	}

	b.WriteString(helpStyle.Render("  j/k: navegar │ l: me gusta"))
	return b.String()
}
