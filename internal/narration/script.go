package narration

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/llm"
	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/textutil"
)

const (
	previousTailRunes = 50
	scriptStart       = "[Script start]"
	scriptEnd         = "[Script end]"
)

const scriptSystem = "You are a professional lecturer. This script will be used in one continuous lecture video built from many slides. " +
	"Keep the outline and flow of the whole lecture in mind so every slide script connects seamlessly to the next."

const scriptTemplate = `# Lecture outline
%s

# Current slide
- Index: %d
- Title: %s

# Previous slide script
%s

# Key content of the current slide
%s

# Script requirements
1. Tone: %s
2. Length: about %d seconds of speech at 1.0x playback.
3. [Important] Flow: %s
4. [Continuity] Never use expressions that break the continuity of the lecture or pin it to a time or date, such as "today", "in this lecture", "hello", "finally" or "thank you", except in the closing of the final slide.
5. [Engagement] Speak to the audience directly and point at the important parts of the slide, its charts or its images.
6. [Evidence] When citing data from the slide or external information, ground it with phrases like "as the chart on screen shows" or "as you can see in this table".
7. Write in %s.

%s
`

// Compose asks the model for the narration of one slide, continuing from the
// previous segment.
func (s *implScript) Compose(ctx context.Context, req models.ScriptRequest) (string, error) {
	out, err := s.gen.Generate(ctx, llm.Prompt{
		System:      scriptSystem,
		User:        scriptPrompt(req),
		Temperature: scriptTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("compose slide %d: %w", req.Index+1, err)
	}

	script := textutil.StripMarkers(out, scriptStart, scriptEnd)
	if script == "" {
		return "", ErrEmptyScript
	}
	s.logger.Debug(ctx, "Slide %d script: %d chars", req.Index+1, len(script))
	return script, nil
}

func scriptPrompt(req models.ScriptRequest) string {
	title := req.Title
	if title == "" {
		title = "current slide"
	}
	previous := req.Previous
	if previous == "" {
		previous = models.SentinelNone
	}
	return fmt.Sprintf(scriptTemplate,
		outlineText(req.Outline),
		req.Index,
		title,
		previous,
		req.Description,
		req.Tone,
		targetSeconds(req.TargetSeconds),
		flowInstruction(req),
		language(req.Language),
		scriptStart,
	)
}

// flowInstruction tells the model how the segment joins the lecture around
// it.
func flowInstruction(req models.ScriptRequest) string {
	switch req.Position {
	case models.PositionFirst:
		intro := "This is the first slide of the lecture. Open with an introduction to the whole lecture without greeting the audience directly, " +
			"as if one long lecture is starting. Do not summarize earlier content."
		if len(req.Outline) <= 1 {
			return intro + " It is also the only slide, so finish by summarizing the lecture and closing with a farewell to the audience."
		}
		return intro + fmt.Sprintf(" End with a natural lead-in to the next topic, '[%s]'.", req.NextTitle)

	case models.PositionLast:
		return "This is the last slide of the lecture. Summarize the whole lecture and be sure to close with a farewell to the audience. " +
			"Do not preview further content."

	default:
		tail := req.Previous
		if tail != models.SentinelNone {
			tail = textutil.Tail(tail, previousTailRunes)
		}
		return fmt.Sprintf("This is a middle slide of the lecture. Start right away so the explanation continues seamlessly from the last words of the previous script (e.g. '...%s'). "+
			"At the end, use the next topic '[%s]' for a natural transition that builds anticipation. "+
			"Do not add a separate bridging remark or summarize earlier content; keep the flow of one long lecture.", tail, req.NextTitle)
	}
}

func outlineText(outline []string) string {
	lines := make([]string, len(outline))
	for i, t := range outline {
		lines[i] = fmt.Sprintf("%d. %s", i+1, t)
	}
	return strings.Join(lines, "\n")
}

func targetSeconds(n int) int {
	if n <= 0 {
		return 60
	}
	return n
}
