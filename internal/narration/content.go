package narration

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/llm"
	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/textutil"
)

const (
	maxTableRows   = 6
	maxSlideImages = 3
)

const contentSystem = "You are an expert assistant who combines every piece of information on a slide into a summary of its key content."

const contentTemplate = `Below is the information from one slide together with supplementary material.
Title: %s
---
[Text]: %s
[Table]:
%s
[Shape text]: %s
[Style guide]: %s
---
[Supplementary material]
- Key summaries:
%s
- References:
%s
---
Rules:
1) Combine all of the information into a concise slide description of 4 to 6 sentences.
2) Work the meaning of tables, images and shapes naturally into the description.
3) Use only the essentials of the supplementary material and mark sources with bracketed numbers (e.g. [1][2]).
4) Write in %s.`

// Describe asks the model for a 4-6 sentence description of the slide.
func (c *implContent) Describe(ctx context.Context, req models.ContentRequest) (string, error) {
	slide := req.Slide
	prompt := fmt.Sprintf(contentTemplate,
		textutil.Clean(slide.Title),
		textutil.Clean(slide.Text),
		tableText(slide.Tables),
		strings.Join(slide.ShapeTexts, ", "),
		textutil.Clean(req.Style),
		summaryBlock(req.Enrichment.Summaries),
		referenceBlock(req.Enrichment.References),
		language(req.Language),
	)

	out, err := c.gen.Generate(ctx, llm.Prompt{
		System:      contentSystem,
		User:        prompt,
		Images:      existingImages(slide.Images, maxSlideImages),
		Temperature: contentTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("describe slide %d: %w", slide.Index+1, err)
	}

	c.logger.Debug(ctx, "Slide %d description: %d chars", slide.Index+1, len(out))
	return textutil.Normalize(out), nil
}

// tableText renders the first rows of the first table as a pipe table.
func tableText(tables [][][]string) string {
	if len(tables) == 0 || len(tables[0]) == 0 {
		return ""
	}
	rows := tables[0]
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = "| " + strings.Join(row, " | ") + " |"
	}
	return strings.Join(lines, "\n")
}

func summaryBlock(summaries []models.Summary) string {
	lines := make([]string, 0, len(summaries))
	for _, s := range summaries {
		lines = append(lines, fmt.Sprintf("- %s (%s)", s.Text, s.Source))
	}
	return strings.Join(lines, "\n")
}

func referenceBlock(refs []models.Reference) string {
	lines := make([]string, 0, len(refs))
	for i, r := range refs {
		lines = append(lines, fmt.Sprintf("[%d] %s - %s", i+1, r.Title, r.URL))
	}
	return strings.Join(lines, "\n")
}

func existingImages(paths []string, limit int) []string {
	var out []string
	for _, p := range paths {
		if len(out) == limit {
			break
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func language(lang string) string {
	if lang == "" {
		return "English"
	}
	return lang
}
