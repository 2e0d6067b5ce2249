package render

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for paper formats other than A4, Letter and Legal.
	ErrUnsupportedFormat = errors.New("unsupported page format")
	// ErrInvalidLength is returned when a margin is not a CSS length.
	ErrInvalidLength = errors.New("invalid length")
)

// Renderer turns a complete HTML document into PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string, opts PageOptions) ([]byte, error)
}

// Margins are CSS lengths such as "0.75in" or "20mm".
type Margins struct {
	Top    string
	Right  string
	Bottom string
	Left   string
}

// PageOptions controls paper size and margins of the printed document.
type PageOptions struct {
	Format  string
	Margins Margins
}

// ResumePageOptions returns A4 with 0.75in margins.
func ResumePageOptions() PageOptions {
	return PageOptions{Format: "A4", Margins: uniform("0.75in")}
}

// CoverLetterPageOptions returns A4 with 1in margins.
func CoverLetterPageOptions() PageOptions {
	return PageOptions{Format: "A4", Margins: uniform("1in")}
}

func uniform(l string) Margins {
	return Margins{Top: l, Right: l, Bottom: l, Left: l}
}

// paper sizes in inches, width x height.
var paperSizes = map[string][2]float64{
	"a4":     {8.27, 11.69},
	"letter": {8.5, 11},
	"legal":  {8.5, 14},
}

// PaperSize returns width and height in inches. An empty format means A4.
func PaperSize(format string) (float64, float64, error) {
	key := strings.ToLower(strings.TrimSpace(format))
	if key == "" {
		key = "a4"
	}
	size, ok := paperSizes[key]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return size[0], size[1], nil
}

var unitsPerInch = map[string]float64{
	"in": 1,
	"cm": 2.54,
	"mm": 25.4,
	"pt": 72,
	"px": 96,
}

// Inches converts a CSS length to inches. Unitless values are pixels; an empty string is zero.
func Inches(length string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(length))
	if s == "" {
		return 0, nil
	}
	unit := "px"
	for u := range unitsPerInch {
		if strings.HasSuffix(s, u) {
			unit = u
			s = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, length)
	}
	return v / unitsPerInch[unit], nil
}

// inches resolves all four margins, in top, right, bottom, left order.
func (m Margins) inches() ([4]float64, error) {
	var out [4]float64
	for i, l := range []string{m.Top, m.Right, m.Bottom, m.Left} {
		v, err := Inches(l)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
