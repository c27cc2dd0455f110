// Package guide serves the short-form video guides on the home feed.
package guide

import (
	"sync"

	"github.com/Glooskovint/TesisAssistantMVP/internal/domain"
)

// Seed returns the built-in guide feed.
func Seed() []domain.Guide {
	return []domain.Guide{
		{
			ID:       "1",
			Title:    "Cómo estructurar tu tesis",
			Author:   "Dr. García",
			Likes:    1250,
			Comments: 89,
			VideoURL: "https://example.com/video1",
		},
		{
			ID:       "2",
			Title:    "Metodología de investigación",
			Author:   "Dra. López",
			Likes:    980,
			Comments: 67,
			VideoURL: "https://example.com/video2",
		},
		{
			ID:       "3",
			Title:    "Citas y referencias APA",
			Author:   "Prof. Martínez",
			Likes:    1500,
			Comments: 120,
			VideoURL: "https://example.com/video3",
		},
	}
}

// Feed holds the guide list and the viewer's like state. Likes only live for
// the session; the counter moves with the toggle.
type Feed struct {
	mu     sync.Mutex
	guides []domain.Guide
	liked  map[string]bool
}

// New builds a Feed. With no guides it loads the seed feed.
func New(guides ...domain.Guide) *Feed {
	if len(guides) == 0 {
		guides = Seed()
	}
	return &Feed{guides: guides, liked: make(map[string]bool)}
}

// Guides returns the feed in order, with like counts reflecting the viewer's
// toggles.
func (f *Feed) Guides() []domain.Guide {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Guide, len(f.guides))
	copy(out, f.guides)
	for i := range out {
		if f.liked[out[i].ID] {
			out[i].Likes++
		}
	}
	return out
}

// Get returns a guide by id, including the viewer's like.
func (f *Feed) Get(id string) (domain.Guide, bool) {
	for _, g := range f.Guides() {
		if g.ID == id {
			return g, true
		}
	}
	return domain.Guide{}, false
}

// ToggleLike flips the viewer's like on a guide and reports the new state.
func (f *Feed) ToggleLike(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.liked[id] = !f.liked[id]
	return f.liked[id]
}

// Liked reports whether the viewer has liked a guide.
func (f *Feed) Liked(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.liked[id]
}

// Len returns the feed size.
func (f *Feed) Len() int { return len(f.guides) }
