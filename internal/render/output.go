// Package render provides terminal output formatting for the CLI listings.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
)

// Renderer handles output formatting.
type Renderer struct {
	pretty bool
}

// New creates a new renderer. With pretty false the output is plain text
// suited to pipes.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Advisors formats the advisor directory.
func (r *Renderer) Advisors(advisors []domain.Advisor) string {
	if len(advisors) == 0 {
		return "No se encontraron asesores"
	}

	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Asesores de Tesis\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for _, a := range advisors {
		r.formatAdvisor(&sb, a)
	}

	return sb.String()
}

func (r *Renderer) formatAdvisor(sb *strings.Builder, a domain.Advisor) {
	availability := color.GreenString("disponible")
	if !a.Available {
		availability = color.RedString("no disponible")
	}

	if r.pretty {
		fmt.Fprintf(sb, "%s %s\n", color.YellowString("★ %.1f", a.Rating), a.Name)
		fmt.Fprintf(sb, "  %s · %s\n", a.Specialty, a.Location)
		fmt.Fprintf(sb, "  %s · %d reseñas · %s\n\n", a.Price, a.Reviews, availability)
	} else {
		avail := "disponible"
		if !a.Available {
			avail = "no disponible"
		}
		fmt.Fprintf(sb, "%s\t%s\t%.1f\t%s\t%s\n", a.Name, a.Specialty, a.Rating, a.Price, avail)
	}
}

// Guides formats the guide feed.
func (r *Renderer) Guides(guides []domain.Guide) string {
	if len(guides) == 0 {
		return "No hay guías disponibles"
	}

	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Guías en Video\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for _, g := range guides {
		if r.pretty {
			fmt.Fprintf(&sb, "%s %s\n", color.HiBlackString("▶"), g.Title)
			fmt.Fprintf(&sb, "  %s · ♥ %d · %d comentarios\n\n", g.Author, g.Likes, g.Comments)
		} else {
			fmt.Fprintf(&sb, "%s\t%s\t%d\t%d\n", g.Title, g.Author, g.Likes, g.Comments)
		}
	}

	return sb.String()
}

// Reviews formats a user's document review history.
func (r *Renderer) Reviews(reviews []domain.Review) string {
	if len(reviews) == 0 {
		return "Sin revisiones"
	}

	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Historial de Revisiones\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for _, rev := range reviews {
		status := StatusText(rev.Status)
		if r.pretty {
			marker := color.GreenString("✓")
			if rev.Status == domain.StatusFailed {
				marker = color.RedString("✗")
			} else if rev.Status == domain.StatusUploading {
				marker = color.YellowString("…")
			}
			fmt.Fprintf(&sb, "%s %s %s (%s)\n", marker,
				color.HiBlackString(rev.CreatedAt.Format("2006-01-02 15:04")),
				rev.FileName, FormatSize(rev.SizeBytes))
			fmt.Fprintf(&sb, "  %s\n", status)
		} else {
			fmt.Fprintf(&sb, "[%s] %s\t%s\t%s\n", rev.CreatedAt.Format("2006-01-02"),
				rev.FileName, FormatSize(rev.SizeBytes), status)
		}
	}

	return sb.String()
}

// StatusText maps an upload status to its display text.
func StatusText(status domain.UploadStatus) string {
	switch status {
	case domain.StatusUploading:
		return "Subiendo..."
	case domain.StatusSucceeded:
		return "Completado"
	case domain.StatusFailed:
		return "Error"
	default:
		return string(status)
	}
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count with at most two decimals, in the largest
// unit that keeps the value at or above one.
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	v := float64(bytes) / math.Pow(1024, float64(i))
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
