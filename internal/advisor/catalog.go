// Package advisor holds the catalog of thesis advisors and its search.
package advisor

import (
	"github.com/sahilm/fuzzy"

	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
)

// Seed returns the built-in advisor roster used when the store is empty.
func Seed() []domain.Advisor {
	return []domain.Advisor{
		{
			ID:          "1",
			Name:        "Dr. María González",
			Specialty:   "Investigación Cuantitativa",
			Rating:      4.9,
			Reviews:     124,
			Location:    "Universidad Central",
			Price:       "$50/hora",
			Available:   true,
			Description: "Especialista en metodología cuantitativa con 15 años de experiencia asesorando tesis de posgrado.",
		},
		{
			ID:          "2",
			Name:        "Prof. Carlos Rodríguez",
			Specialty:   "Metodología de Investigación",
			Rating:      4.8,
			Reviews:     89,
			Location:    "Instituto Tecnológico",
			Price:       "$45/hora",
			Available:   true,
			Description: "Profesor investigador enfocado en diseño metodológico y validación de instrumentos.",
		},
		{
			ID:          "3",
			Name:        "Dra. Ana Martínez",
			Specialty:   "Redacción Académica",
			Rating:      4.7,
			Reviews:     156,
			Location:    "Universidad Nacional",
			Price:       "$55/hora",
			Available:   false,
			Description: "Editora académica y asesora de redacción para tesis y artículos de investigación.",
		},
		{
			ID:          "4",
			Name:        "Dr. Luis Fernández",
			Specialty:   "Estadística Aplicada",
			Rating:      4.9,
			Reviews:     203,
			Location:    "Universidad Privada",
			Price:       "$60/hora",
			Available:   true,
			Description: "Estadístico con amplia experiencia en análisis de datos para ciencias sociales y salud.",
		},
	}
}

// Catalog is an in-memory advisor roster with fuzzy search over name and
// specialty.
type Catalog struct {
	advisors []domain.Advisor
	haystack []string
}

// New builds a Catalog. With no advisors it loads the seed roster.
func New(advisors ...domain.Advisor) *Catalog {
	if len(advisors) == 0 {
		advisors = Seed()
	}
	c := &Catalog{advisors: advisors}
	c.haystack = make([]string, len(advisors))
	for i, a := range advisors {
		c.haystack[i] = a.Name + " " + a.Specialty
	}
	return c
}

// All returns every advisor in roster order.
func (c *Catalog) All() []domain.Advisor {
	out := make([]domain.Advisor, len(c.advisors))
	copy(out, c.advisors)
	return out
}

// Get returns an advisor by id.
func (c *Catalog) Get(id string) (domain.Advisor, bool) {
	for _, a := range c.advisors {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Advisor{}, false
}

// Search returns advisors fuzzy-matched against name and specialty, best
// match first. An empty query returns the full roster.
func (c *Catalog) Search(query string) []domain.Advisor {
	if query == "" {
		return c.All()
	}
	matches := fuzzy.Find(query, c.haystack)
	out := make([]domain.Advisor, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.advisors[m.Index])
	}
	return out
}

// Len returns the roster size.
func (c *Catalog) Len() int { return len(c.advisors) }
