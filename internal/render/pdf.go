package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const creator = "text-to-pdf"

// Document summarises a rendered PDF.
type Document struct {
	Paragraphs int
	Pages      int
}

// Renderer turns lines of text into a PDF with one paragraph per line.
// It holds no per-document state and can be reused.
type Renderer struct {
	opts Options
}

func New(opts Options) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{opts: opts}, nil
}

// Render writes the finished PDF to w. The document always has at least one
// page, so zero lines produce a valid empty document. Long lines wrap at the
// right margin. Title is stored in the document metadata when non-empty.
func (r *Renderer) Render(w io.Writer, title string, lines []string) (Document, error) {
	if w == nil {
		return Document{}, errors.New("render: writer must not be nil")
	}

	pdf := fpdf.New(r.opts.Orientation, "mm", r.opts.PageSize, "")
	pdf.SetMargins(r.opts.Margin, r.opts.Margin, r.opts.Margin)
	pdf.SetAutoPageBreak(true, r.opts.Margin)
	pdf.SetCreator(creator, true)
	if title != "" {
		// fpdf panics converting invalid UTF-8 metadata.
		pdf.SetTitle(strings.ToValidUTF8(title, "\uFFFD"), true)
	}
	pdf.AddPage()
	pdf.SetFont(r.opts.FontFamily, "", r.opts.FontSize)

	// Core fonts are cp1252 encoded.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range lines {
		pdf.MultiCell(0, r.opts.LineHeight, tr(strings.ToValidUTF8(line, "�")), "", "L", false)
	}
	if pdf.Err() {
		return Document{}, fmt.Errorf("render: layout: %w", pdf.Error())
	}

	doc := Document{Paragraphs: len(lines), Pages: pdf.PageCount()}
	if err := pdf.Output(w); err != nil {
		return Document{}, fmt.Errorf("render: finalize document: %w", err)
	}
	return doc, nil
}
