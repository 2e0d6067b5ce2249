package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// ErrInvalidDocument is returned by CheckDocument for markup that would print an empty page.
var ErrInvalidDocument = errors.New("invalid html document")

// CheckDocument verifies doc has explicit html and body elements and at least one div.
// html.Parse synthesizes missing elements, so presence is checked on the raw tokens.
func CheckDocument(doc string) error {
	if strings.TrimSpace(doc) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidDocument)
	}
	seen := map[string]bool{}
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
			}
			break
		}
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			name, _ := z.TagName()
			seen[string(name)] = true
		}
	}
	for _, tag := range []string{"html", "body", "div"} {
		if !seen[tag] {
			return fmt.Errorf("%w: missing <%s>", ErrInvalidDocument, tag)
		}
	}
	return nil
}

// PDFInfo summarizes a rendered PDF.
type PDFInfo struct {
	Pages int
	Text  string
}

// Inspect reads page count and plain text from PDF bytes.
func Inspect(data []byte) (PDFInfo, error) {
	if len(data) == 0 {
		return PDFInfo{}, errors.New("empty pdf data")
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return PDFInfo{}, fmt.Errorf("open pdf: %w", err)
	}
	info := PDFInfo{Pages: reader.NumPage()}
	plain, err := reader.GetPlainText()
	if err != nil {
		return info, fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return info, fmt.Errorf("extract pdf text: %w", err)
	}
	info.Text = buf.String()
	return info, nil
}
