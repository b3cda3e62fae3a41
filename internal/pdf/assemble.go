// Package pdf assembles an ordered list of slide images into one paginated
// document, each page sized to its image.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// renderDPI converts pixel dimensions into page points. 100 matches the
// capture resolution assumption for lecture screenshots.
const renderDPI = 100.0

// Assemble writes one PDF page per image to outPath, preserving order.
// The document is built into a temp file and renamed into place, so a failed
// run never leaves a partial file that looks complete.
func Assemble(imagePaths []string, outPath string) error {
	if len(imagePaths) == 0 {
		return fmt.Errorf("no images to assemble")
	}

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	for _, path := range imagePaths {
		if err := addPage(doc, path); err != nil {
			return fmt.Errorf("failed to add %s: %w", path, err)
		}
	}

	dir := filepath.Dir(outPath)
	tmp, err := os.CreateTemp(dir, ".slidedistill-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp output: %w", err)
	}
	tmpName := tmp.Name()
	tmp.Close()

	if err := doc.OutputFileAndClose(tmpName); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmpName, outPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize output: %w", err)
	}
	return nil
}

// addPage registers one image and places it on a page of its own dimensions.
func addPage(doc *gofpdf.Fpdf, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image header: %w", err)
	}

	w := float64(cfg.Width) * 72.0 / renderDPI
	h := float64(cfg.Height) * 72.0 / renderDPI

	// Orientation "P" keeps Wd/Ht exactly as given.
	doc.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})

	opts := gofpdf.ImageOptions{ImageType: format}
	doc.RegisterImageOptionsReader(path, opts, bytes.NewReader(data))
	doc.ImageOptions(path, 0, 0, w, h, false, opts, 0, "")

	if doc.Err() {
		return doc.Error()
	}
	return nil
}
