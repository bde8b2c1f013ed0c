package domain

import "time"

// Cacheable is implemented by every entity the content cache stores.
// CacheKey is the row key: the entity id, or the calendar date for readings.
type Cacheable interface {
	CacheKey() string
}

type News struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     *string   `json:"summary,omitempty"`
	Body        string    `json:"body"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	AudioURL    *string   `json:"audioUrl,omitempty"`
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (n News) CacheKey() string { return n.ID }

type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      *string   `json:"author,omitempty"`
	Body        string    `json:"body"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	AudioURL    *string   `json:"audioUrl,omitempty"`
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (a Article) CacheKey() string { return a.ID }

type Feast struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

func (f Feast) CacheKey() string { return f.ID }

// Reading is the daily reading for one calendar date (YYYY-MM-DD).
type Reading struct {
	Date     string   `json:"date"`
	Title    string   `json:"title"`
	Passages []string `json:"passages"`
	AudioURL *string  `json:"audioUrl,omitempty"`
}

func (r Reading) CacheKey() string { return r.Date }

// ReadingDate formats t as the natural key of a Reading.
func ReadingDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// AsCacheable widens a typed slice for the content cache.
func AsCacheable[T Cacheable](items []T) []Cacheable {
	out := make([]Cacheable, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}
