package quiz

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lecture-flow/internal/llm"
	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

const quizSystem = `You are a teaching assistant who helps students review a lecture. Based on the full lecture script provided,
create a quiz that checks the key content. Every question must be multiple choice with four options and cover a core concept of the lecture.
Respond with valid JSON only.`

const quizTemplate = `--- [Full lecture] ---
%s
---

[Rules]
1. Based on the whole lecture above, create exactly %d multiple-choice questions.
2. Each question must have exactly 4 options.
3. [Important] Each option must start with its number, like '1. option text', '2. option text'.
4. Each question contains only the keys "question", "options" and "answer".
5. [Important] The answer must exactly match one option text including its number (e.g. "1. option text").
6. Return a JSON object of the form {"quizzes": [...]}.

[JSON output]`

// maxAttempts bounds the requests made for one quiz. A response with fewer
// than QuizSize valid questions is retried once.
const maxAttempts = 2

// Generate never fails: any generation or parse problem yields an empty
// quiz. The fullest response across attempts is kept.
func (g *implGenerator) Generate(ctx context.Context, narration string) models.Quiz {
	if narration == "" {
		return models.Quiz{}
	}

	var best models.Quiz
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			break
		}
		quiz := g.attempt(ctx, narration)
		if len(quiz.Questions) > len(best.Questions) {
			best = quiz
		}
		if len(best.Questions) == models.QuizSize {
			break
		}
		if attempt < maxAttempts {
			g.logger.Info(ctx, "Quiz has %d/%d questions, regenerating", len(quiz.Questions), models.QuizSize)
		}
	}

	if len(best.Questions) < models.QuizSize {
		g.logger.Warn(ctx, "Quiz is short: %d/%d questions", len(best.Questions), models.QuizSize)
	} else {
		g.logger.Info(ctx, "Quiz generated: %d questions", len(best.Questions))
	}
	return best
}

func (g *implGenerator) attempt(ctx context.Context, narration string) models.Quiz {
	out, err := g.gen.Generate(ctx, llm.Prompt{
		System: quizSystem,
		User:   fmt.Sprintf(quizTemplate, narration, models.QuizSize),
		JSON:   true,
	})
	if err != nil {
		g.logger.Warn(ctx, "Quiz generation failed: %v", err)
		return models.Quiz{}
	}

	raw, err := decodeQuestions(out)
	if err != nil {
		g.logger.Warn(ctx, "Quiz response could not be parsed: %v", err)
		return models.Quiz{}
	}

	quiz := models.Quiz{}
	for i, q := range raw {
		valid, ok := normalize(q)
		if !ok {
			g.logger.Debug(ctx, "Dropping invalid quiz item %d", i+1)
			continue
		}
		quiz.Questions = append(quiz.Questions, valid)
		if len(quiz.Questions) == models.QuizSize {
			break
		}
	}
	return quiz
}
