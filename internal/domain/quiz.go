package domain

// Question is a single quiz question as exchanged with the API. The server
// omits right_answer on the user-facing quiz fetch.
type Question struct {
	ID              int    `json:"id"`
	Title           string `json:"question_title"`
	Option1         string `json:"option1"`
	Option2         string `json:"option2"`
	Option3         string `json:"option3"`
	Option4         string `json:"option4"`
	RightAnswer     string `json:"right_answer,omitempty"`
	DifficultyLevel string `json:"difficultylevel"`
	Category        string `json:"category"`
}

// Options returns the non-empty answer options in display order.
func (q Question) Options() []string {
	options := make([]string, 0, 4)
	for _, opt := range []string{q.Option1, q.Option2, q.Option3, q.Option4} {
		if opt != "" {
			options = append(options, opt)
		}
	}
	return options
}

// Quiz groups questions under a title.
type Quiz struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Answer is one submitted response; unanswered questions are submitted with
// an empty response.
type Answer struct {
	ID       int    `json:"id"`
	Response string `json:"response"`
}
