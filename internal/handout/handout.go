package handout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Write saves base+".md" and base+".docx". A docx failure is logged and
// leaves Files.Docx empty.
func (w *implWriter) Write(ctx context.Context, base string, l Lecture) (Files, error) {
	var files Files
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return files, fmt.Errorf("create handout dir: %w", err)
	}

	md := w.markdown(l)
	mdPath := base + ".md"
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return files, fmt.Errorf("write markdown: %w", err)
	}
	files.Markdown = mdPath

	docxPath := base + ".docx"
	if err := markdownToDocx(l.Title, md, docxPath); err != nil {
		w.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
	} else {
		files.Docx = docxPath
	}

	w.logger.Info(ctx, "Handout written: %s", mdPath)
	return files, nil
}

func (w *implWriter) markdown(l Lecture) string {
	var b strings.Builder
	fmt.Fprintf(&b, "_%s_\n\n", w.now().Format("2006-01-02 15:04"))

	if len(l.Failed) > 0 {
		nums := make([]string, len(l.Failed))
		for i, n := range l.Failed {
			nums[i] = fmt.Sprint(n)
		}
		fmt.Fprintf(&b, "**Note:** slides %s have no video clip.\n\n", strings.Join(nums, ", "))
	}

	b.WriteString("## Lecture notes\n\n")
	for i, seg := range l.Narration {
		title := ""
		if i < len(l.SlideTitles) {
			title = l.SlideTitles[i]
		}
		if title != "" {
			fmt.Fprintf(&b, "### Slide %d: %s\n\n", i+1, title)
		} else {
			fmt.Fprintf(&b, "### Slide %d\n\n", i+1)
		}
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(seg))
	}

	if l.Quiz.Empty() {
		return b.String()
	}

	b.WriteString("## Review quiz\n\n")
	for i, q := range l.Quiz.Questions {
		fmt.Fprintf(&b, "### Question %d\n\n**%s**\n\n", i+1, q.Question)
		for _, opt := range q.Options {
			fmt.Fprintf(&b, "- %s\n", opt)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Answer key\n\n")
	for i, q := range l.Quiz.Questions {
		fmt.Fprintf(&b, "- Question %d: %s\n", i+1, q.Answer)
	}
	return b.String()
}
