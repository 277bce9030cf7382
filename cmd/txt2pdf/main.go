package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexflint/go-arg"

	"text-to-pdf/internal/render"
	"text-to-pdf/internal/usecase"
)

type args struct {
	Input       string  `arg:"positional,required" help:"text file to convert"`
	Output      string  `arg:"positional" help:"PDF file to write (default: INPUT with .txt replaced by .pdf)"`
	FontFamily  string  `arg:"--font-family" help:"courier, helvetica, arial or times"`
	FontSize    float64 `arg:"--font-size" help:"font size in points"`
	LineHeight  float64 `arg:"--line-height" help:"line height in mm"`
	PageSize    string  `arg:"--page-size" help:"A3, A4, A5, Letter or Legal"`
	Orientation string  `arg:"--orientation" help:"P or L"`
	Margin      float64 `arg:"--margin" help:"page margin in mm"`
}

func (args) Description() string {
	return "\nconvert a text file to a PDF with one paragraph per line\n"
}

func (a args) options() render.Options {
	return render.Options{
		FontFamily:  a.FontFamily,
		FontSize:    a.FontSize,
		LineHeight:  a.LineHeight,
		PageSize:    a.PageSize,
		Orientation: a.Orientation,
		Margin:      a.Margin,
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	d := render.DefaultOptions()
	a := args{
		FontFamily:  d.FontFamily,
		FontSize:    d.FontSize,
		LineHeight:  d.LineHeight,
		PageSize:    d.PageSize,
		Orientation: d.Orientation,
		Margin:      d.Margin,
	}
	arg.MustParse(&a)

	out := outputPath(a.Input, a.Output)
	doc, err := convert(a.Input, out, a.options())
	if err != nil {
		logger.Error("conversion failed", "input", a.Input, "err", err)
		os.Exit(1)
	}
	logger.Info("conversion completed", "output", out, "paragraphs", doc.Paragraphs, "pages", doc.Pages)
}

// outputPath derives the PDF path the same way the function derives object
// keys, appending ".pdf" when that would overwrite the input.
func outputPath(input, output string) string {
	if output != "" {
		return output
	}
	out := usecase.DestinationKey(input)
	if out == input {
		out += ".pdf"
	}
	return out
}

func convert(input, output string, opts render.Options) (render.Document, error) {
	renderer, err := render.New(opts)
	if err != nil {
		return render.Document{}, err
	}
	content, err := os.ReadFile(input)
	if err != nil {
		return render.Document{}, err
	}

	f, err := os.Create(output)
	if err != nil {
		return render.Document{}, err
	}
	w := bufio.NewWriter(f)
	doc, err := renderer.Render(w, input, usecase.SplitLines(string(content)))
	if err == nil {
		err = w.Flush()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(output)
		return render.Document{}, fmt.Errorf("write %s: %w", output, err)
	}
	return doc, nil
}
