package extractor

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/textutil"
	"github.com/nguyentantai21042004/lecture-flow/internal/workspace"
)

// Extract reads every slide of deckPath: title, normalized text, drawn
// shape text, tables and embedded pictures. Snapshots are rendered last.
func (e *implExtractor) Extract(ctx context.Context, deckPath string, ws workspace.Workspace) (models.Deck, error) {
	deck := models.Deck{Source: deckPath}

	zr, err := zip.OpenReader(deckPath)
	if err != nil {
		return deck, fmt.Errorf("open presentation: %w", err)
	}
	defer zr.Close()

	pkg := newPackage(&zr.Reader)
	parts, err := pkg.slideParts()
	if err != nil {
		return deck, fmt.Errorf("read slide list: %w", err)
	}
	if len(parts) == 0 {
		return deck, ErrNoSlides
	}

	if err := os.MkdirAll(ws.MediaDir(), 0755); err != nil {
		return deck, fmt.Errorf("create media dir: %w", err)
	}

	e.logger.Info(ctx, "Extracting %d slides from %s", len(parts), deckPath)
	for i, part := range parts {
		if err := ctx.Err(); err != nil {
			return deck, err
		}
		// Hidden slides are not presented and the PDF export leaves them out.
		slide, hidden, err := readSlide(pkg, part, len(deck.Slides), ws)
		if err != nil {
			return deck, fmt.Errorf("slide %d: %w", i+1, err)
		}
		if hidden {
			e.logger.Info(ctx, "Skipping hidden slide %d", i+1)
			continue
		}
		deck.Slides = append(deck.Slides, slide)
	}
	if len(deck.Slides) == 0 {
		return deck, ErrNoSlides
	}

	if e.snapshots != nil {
		snaps, err := e.snapshots.Render(ctx, deckPath, ws)
		if err != nil {
			return deck, fmt.Errorf("render snapshots: %w", err)
		}
		if len(snaps) != len(deck.Slides) {
			return deck, fmt.Errorf("%w: %d pages for %d slides", ErrSnapshotCount, len(snaps), len(deck.Slides))
		}
		for i := range deck.Slides {
			deck.Slides[i].Snapshot = snaps[i]
		}
	}

	return deck, nil
}

// slideBuilder accumulates one slide while walking its shape tree.
type slideBuilder struct {
	pkg   *pptxPackage
	rels  map[string]string
	ws    workspace.Workspace
	slide models.Slide
	text  []string
}

// readSlide parses one slide part. A hidden slide is reported without
// writing any of its pictures.
func readSlide(pkg *pptxPackage, part string, index int, ws workspace.Workspace) (models.Slide, bool, error) {
	var doc xmlSlide
	if err := pkg.decode(part, &doc); err != nil {
		return models.Slide{}, false, err
	}
	if doc.hidden() {
		return models.Slide{}, true, nil
	}
	rels, err := pkg.rels(part)
	if err != nil {
		return models.Slide{}, false, err
	}

	b := &slideBuilder{pkg: pkg, rels: rels, ws: ws, slide: models.Slide{Index: index}}
	if err := b.walk(doc.Tree.Shapes, false); err != nil {
		return models.Slide{}, false, err
	}
	b.slide.Text = textutil.Clean(strings.Join(b.text, "\n"))
	return b.slide, false, nil
}

// walk visits shapes depth-first. inGroup marks shapes nested in a group.
func (b *slideBuilder) walk(nodes []xmlNode, inGroup bool) error {
	for _, n := range nodes {
		switch {
		case n.Sp != nil:
			b.addShape(n.Sp)
		case n.Group != nil:
			if err := b.walk(n.Group.Shapes, true); err != nil {
				return err
			}
		case n.Pic != nil:
			if err := b.addPicture(n.Pic); err != nil {
				return err
			}
		case n.Frame != nil && n.Frame.Table != nil:
			b.addTable(n.Frame)
		}
	}
	return nil
}

func (b *slideBuilder) addShape(sp *xmlSp) {
	if sp.TxBody == nil {
		return
	}
	text := sp.TxBody.text()
	if sp.isTitle() && b.slide.Title == "" {
		b.slide.Title = textutil.Clean(text)
	}
	b.text = append(b.text, text)
	if sp.isAutoShape() {
		if t := strings.TrimSpace(text); t != "" {
			b.slide.ShapeTexts = append(b.slide.ShapeTexts, t)
		}
	}
}

func (b *slideBuilder) addTable(f *xmlFrame) {
	var table [][]string
	for _, row := range f.Table.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = textutil.Clean(c.TxBody.text())
		}
		table = append(table, cells)
	}
	b.slide.Tables = append(b.slide.Tables, table)
}

func (b *slideBuilder) addPicture(pic *xmlPic) error {
	target, ok := b.rels[pic.Blip.Embed]
	if !ok {
		return nil
	}
	data, err := b.pkg.read(target)
	if err != nil {
		return err
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(target)), ".")
	if ext == "" {
		ext = "bin"
	}
	out := b.ws.ImagePath(b.slide.Index, len(b.slide.Images), ext)
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write picture: %w", err)
	}
	b.slide.Images = append(b.slide.Images, out)
	return nil
}
