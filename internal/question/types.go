package question

// AnyCategory is the quiz category filter sentinel meaning "match any category".
const AnyCategory = 0

// DefaultPageSize is the number of questions per listing page.
const DefaultPageSize = 10

// Category is a read-only question grouping, seeded at store initialization.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// Question is a stored trivia prompt/answer pair.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// CreateParams carries the fields of a new question.
type CreateParams struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// CategoriesResponse maps category ids to their display labels.
type CategoriesResponse struct {
	Categories map[int]string `json:"categories"`
}

// QuestionsResponse is one page of the full question listing.
type QuestionsResponse struct {
	Questions       []Question     `json:"questions"`
	TotalQuestions  int            `json:"total_questions"`
	Categories      map[int]string `json:"categories"`
	CurrentCategory int            `json:"current_category"`
}

// ListResponse is an unpaginated question list (search and per-category listing).
type ListResponse struct {
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory int        `json:"current_category"`
}

func catalogMap(categories []Category) map[int]string {
	m := make(map[int]string, len(categories))
	for _, c := range categories {
		m[c.ID] = c.Type
	}
	return m
}
