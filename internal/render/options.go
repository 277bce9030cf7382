package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Setting names accepted by Options.Apply.
const (
	SettingFontFamily  = "font_family"
	SettingFontSize    = "font_size"
	SettingLineHeight  = "line_height"
	SettingPageSize    = "page_size"
	SettingOrientation = "orientation"
	SettingMargin      = "margin"
)

var (
	coreFamilies = map[string]bool{"courier": true, "helvetica": true, "arial": true, "times": true}
	pageSizes    = map[string]bool{"a3": true, "a4": true, "a5": true, "letter": true, "legal": true}
	orientations = map[string]bool{"p": true, "portrait": true, "l": true, "landscape": true}
)

// Options controls page layout and typography. Lengths are in millimetres,
// FontSize is in points.
type Options struct {
	FontFamily  string
	FontSize    float64
	LineHeight  float64
	PageSize    string
	Orientation string
	Margin      float64
}

func DefaultOptions() Options {
	return Options{
		FontFamily:  "Arial",
		FontSize:    12,
		LineHeight:  10,
		PageSize:    "A4",
		Orientation: "P",
		Margin:      10,
	}
}

func (o Options) Validate() error {
	if !coreFamilies[strings.ToLower(o.FontFamily)] {
		return fmt.Errorf("render: unsupported font family %q", o.FontFamily)
	}
	if o.FontSize <= 0 {
		return errors.New("render: font size must be positive")
	}
	if o.LineHeight <= 0 {
		return errors.New("render: line height must be positive")
	}
	if !pageSizes[strings.ToLower(o.PageSize)] {
		return fmt.Errorf("render: unsupported page size %q", o.PageSize)
	}
	if !orientations[strings.ToLower(o.Orientation)] {
		return fmt.Errorf("render: unsupported orientation %q", o.Orientation)
	}
	if o.Margin < 0 {
		return errors.New("render: margin must not be negative")
	}
	return nil
}

// Apply returns a copy of o with the given named settings applied. Names that
// are not settings are ignored so a shared parameter path can carry other keys.
func (o Options) Apply(settings map[string]string) (Options, error) {
	for name, raw := range settings {
		value := strings.TrimSpace(raw)
		var err error
		switch name {
		case SettingFontFamily:
			o.FontFamily = value
		case SettingFontSize:
			o.FontSize, err = strconv.ParseFloat(value, 64)
		case SettingLineHeight:
			o.LineHeight, err = strconv.ParseFloat(value, 64)
		case SettingPageSize:
			o.PageSize = value
		case SettingOrientation:
			o.Orientation = value
		case SettingMargin:
			o.Margin, err = strconv.ParseFloat(value, 64)
		}
		if err != nil {
			return Options{}, fmt.Errorf("render: setting %s: %w", name, err)
		}
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}
