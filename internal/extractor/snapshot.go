package extractor

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/nguyentantai21042004/lecture-flow/internal/workspace"
)

// Render converts the deck to PDF with soffice, then rasterizes every page
// at the configured DPI into the workspace slides directory.
func (r *sofficeRenderer) Render(ctx context.Context, deckPath string, ws workspace.Workspace) ([]string, error) {
	if err := os.MkdirAll(ws.SlidesDir(), 0755); err != nil {
		return nil, fmt.Errorf("create slides dir: %w", err)
	}

	pdfPath, err := r.convertToPDF(ctx, deckPath, ws.SlidesDir())
	if err != nil {
		return nil, err
	}
	defer os.Remove(pdfPath)

	return r.rasterize(ctx, pdfPath, ws)
}

func (r *sofficeRenderer) convertToPDF(ctx context.Context, deckPath, outDir string) (string, error) {
	absDeck, err := filepath.Abs(deckPath)
	if err != nil {
		return "", fmt.Errorf("resolve deck path: %w", err)
	}

	// A private profile lets concurrent conversions run side by side.
	profile, err := os.MkdirTemp("", "lo-profile-*")
	if err != nil {
		return "", fmt.Errorf("create soffice profile: %w", err)
	}
	defer os.RemoveAll(profile)

	args := []string{
		"--headless",
		"-env:UserInstallation=file://" + filepath.ToSlash(profile),
		"--convert-to", "pdf:impress_pdf_Export",
		"--outdir", outDir,
		absDeck,
	}
	r.logger.Info(ctx, "Converting %s to PDF", filepath.Base(deckPath))
	if _, err := r.executor.Execute(ctx, r.binary, args...); err != nil {
		return "", fmt.Errorf("soffice convert: %w", err)
	}

	pdfPath := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(absDeck), filepath.Ext(absDeck))+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("converted PDF not found: %w", err)
	}
	return pdfPath, nil
}

func (r *sofficeRenderer) rasterize(ctx context.Context, pdfPath string, ws workspace.Workspace) ([]string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	paths := make([]string, 0, pageCount)
	for page := 0; page < pageCount; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(page, float64(r.dpi))
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", page+1, err)
		}

		out := ws.SnapshotPath(page)
		f, err := os.Create(out)
		if err != nil {
			return nil, fmt.Errorf("create snapshot %d: %w", page+1, err)
		}
		err = png.Encode(f, img)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("encode snapshot %d: %w", page+1, err)
		}
		paths = append(paths, out)
	}

	r.logger.Debug(ctx, "Rendered %d snapshots at %d dpi", len(paths), r.dpi)
	return paths, nil
}
