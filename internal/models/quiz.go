package models

// QuizSize is the number of questions requested for a review quiz.
const QuizSize = 6

// Question is one multiple-choice question. Answer equals one of Options
// exactly, including its "1. " label.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Quiz is the review quiz generated from the full narration.
type Quiz struct {
	Questions []Question `json:"questions"`
}

// Empty reports whether the quiz has no questions.
func (q Quiz) Empty() bool {
	return len(q.Questions) == 0
}
