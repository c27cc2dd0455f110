package domain

// Advisor is an academic advisor listed in the directory.
type Advisor struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Specialty   string  `json:"specialty"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Available   bool    `json:"available"`
	Location    string  `json:"location"`
	Price       string  `json:"price"`
	AvatarRef   string  `json:"avatarRef,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Counterpart returns the advisor reduced to a conversation identity.
func (a Advisor) Counterpart() Counterpart {
	return Counterpart{Name: a.Name, AvatarRef: a.AvatarRef, Specialty: a.Specialty}
}

// Guide is a short-form video guide shown on the home feed.
type Guide struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Likes       int    `json:"likes"`
	Comments    int    `json:"comments"`
	VideoURL    string `json:"videoUrl"`
	Description string `json:"description,omitempty"`
}
