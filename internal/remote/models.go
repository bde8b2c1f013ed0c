package remote

// ListResponse is the envelope of every collection endpoint.
type ListResponse[T any] struct {
	Data []T `json:"data"`
}

type APINews struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Summary     *string `json:"summary"`
	Body        string  `json:"body"`
	ImageURL    *string `json:"imageUrl"`
	AudioURL    *string `json:"audioUrl"`
	Likes       int     `json:"likes"`
	Dislikes    int     `json:"dislikes"`
	PublishedAt string  `json:"publishedAt"`
}

type APIArticle struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      *string `json:"author"`
	Body        string  `json:"body"`
	ImageURL    *string `json:"imageUrl"`
	AudioURL    *string `json:"audioUrl"`
	Likes       int     `json:"likes"`
	Dislikes    int     `json:"dislikes"`
	PublishedAt string  `json:"publishedAt"`
}

type APIFeast struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

type APIReading struct {
	Date     string   `json:"date"`
	Title    string   `json:"title"`
	Passages []string `json:"passages"`
	AudioURL *string  `json:"audioUrl"`
}

type commentRequest struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

type reactionRequest struct {
	Value string `json:"value"`
}
