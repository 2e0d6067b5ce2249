package render

import (
	"errors"
	"math"
	"testing"
)

func TestInches(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"1in", 1},
		{"0.75in", 0.75},
		{"25.4mm", 1},
		{"2.54cm", 1},
		{"72pt", 1},
		{"96px", 1},
		{"48", 0.5},
		{" 1 IN ", 1},
	}
	for _, tc := range cases {
		got, err := Inches(tc.in)
		if err != nil {
			t.Fatalf("Inches(%q) error: %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Inches(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestInchesRejectsGarbage(t *testing.T) {
	for _, in := range []string{"wide", "-1in", "1furlong"} {
		if _, err := Inches(in); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("Inches(%q) expected ErrInvalidLength, got %v", in, err)
		}
	}
}

func TestPaperSize(t *testing.T) {
	w, h, err := PaperSize("")
	if err != nil || w != 8.27 || h != 11.69 {
		t.Fatalf("default paper = %v x %v (%v), want A4", w, h, err)
	}
	w, h, err = PaperSize("Letter")
	if err != nil || w != 8.5 || h != 11 {
		t.Fatalf("letter = %v x %v (%v)", w, h, err)
	}
	if _, _, err := PaperSize("A3"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPrintOptionsPerDocument(t *testing.T) {
	resume, err := printOptions(ResumePageOptions())
	if err != nil {
		t.Fatalf("resume options: %v", err)
	}
	if *resume.MarginTop != 0.75 || *resume.MarginLeft != 0.75 || *resume.PaperWidth != 8.27 {
		t.Fatalf("unexpected resume print options: %+v", resume)
	}
	if !resume.PrintBackground || !resume.PreferCSSPageSize || resume.DisplayHeaderFooter {
		t.Fatalf("unexpected print flags: %+v", resume)
	}

	letter, err := printOptions(CoverLetterPageOptions())
	if err != nil {
		t.Fatalf("cover letter options: %v", err)
	}
	if *letter.MarginBottom != 1 || *letter.MarginRight != 1 {
		t.Fatalf("unexpected cover letter margins: %+v", letter)
	}
}

func TestPrintOptionsRejectsBadMargin(t *testing.T) {
	opts := ResumePageOptions()
	opts.Margins.Left = "lots"
	if _, err := printOptions(opts); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}
