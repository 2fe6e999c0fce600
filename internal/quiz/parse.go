package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

var reOptionLabel = regexp.MustCompile(`^\d+[.)]\s*`)

// decodeQuestions accepts a bare array or an object wrapping the array
// under "quizzes" or "questions". Markdown code fences are tolerated.
func decodeQuestions(s string) ([]models.Question, error) {
	data := []byte(stripFence(s))

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var items []models.Question
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode quiz array: %w", err)
		}
		return items, nil
	}

	var wrapped struct {
		Quizzes   []models.Question `json:"quizzes"`
		Questions []models.Question `json:"questions"`
		Quiz      []models.Question `json:"quiz"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode quiz object: %w", err)
	}
	switch {
	case len(wrapped.Quizzes) > 0:
		return wrapped.Quizzes, nil
	case len(wrapped.Questions) > 0:
		return wrapped.Questions, nil
	case len(wrapped.Quiz) > 0:
		return wrapped.Quiz, nil
	}

	var single models.Question
	if err := json.Unmarshal(data, &single); err == nil && single.Question != "" {
		return []models.Question{single}, nil
	}
	return nil, errors.New("no quiz items in response")
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// normalize numbers unlabeled options and checks that the question has four
// distinct options and an answer equal to one of them.
func normalize(q models.Question) (models.Question, bool) {
	q.Question = strings.TrimSpace(q.Question)
	if q.Question == "" || len(q.Options) != optionsPerQuestion {
		return q, false
	}

	answer := strings.TrimSpace(q.Answer)
	options := make([]string, len(q.Options))
	seen := make(map[string]bool, len(q.Options))
	matched := ""

	for i, opt := range q.Options {
		opt = strings.TrimSpace(opt)
		body := reOptionLabel.ReplaceAllString(opt, "")
		if body == "" || seen[body] {
			return q, false
		}
		seen[body] = true

		label := strconv.Itoa(i+1) + ". " + body
		options[i] = label

		switch answer {
		case opt, body, label, strconv.Itoa(i + 1):
			matched = label
		}
	}
	if matched == "" {
		return q, false
	}

	return models.Question{Question: q.Question, Options: options, Answer: matched}, true
}
