package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultTimeout bounds a single render, browser launch included.
const DefaultTimeout = 30 * time.Second

// ChromeRenderer prints HTML to PDF with a headless Chrome started per call.
type ChromeRenderer struct {
	// Bin is the browser executable. Empty means the first Chrome found on PATH,
	// or a managed download when none is installed.
	Bin     string
	Timeout time.Duration
}

var _ Renderer = (*ChromeRenderer)(nil)

// NewChromeRenderer returns a renderer using bin and timeout, falling back to defaults for zero values.
func NewChromeRenderer(bin string, timeout time.Duration) *ChromeRenderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ChromeRenderer{Bin: bin, Timeout: timeout}
}

// Render validates doc, loads it into a blank page and prints it with the given page options.
func (r *ChromeRenderer) Render(ctx context.Context, doc string, opts PageOptions) ([]byte, error) {
	if err := CheckDocument(doc); err != nil {
		return nil, err
	}
	printOpts, err := printOptions(opts)
	if err != nil {
		return nil, err
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true).
		Set("disable-setuid-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-zygote")
	if bin := r.browserBin(); bin != "" {
		l = l.Bin(bin)
	}
	defer func() {
		l.Kill()
		l.Cleanup()
	}()

	controlURL, err := l.Launch()
	if err != nil {
		return nil, wrapTimeout(ctx, "launch browser", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, wrapTimeout(ctx, "connect browser", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, wrapTimeout(ctx, "open page", err)
	}
	if err := page.SetDocumentContent(doc); err != nil {
		return nil, wrapTimeout(ctx, "set content", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, wrapTimeout(ctx, "wait load", err)
	}

	stream, err := page.PDF(printOpts)
	if err != nil {
		return nil, wrapTimeout(ctx, "print pdf", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, wrapTimeout(ctx, "read pdf", err)
	}
	return data, nil
}

func (r *ChromeRenderer) browserBin() string {
	if r.Bin != "" {
		return r.Bin
	}
	if path, ok := launcher.LookPath(); ok {
		return path
	}
	return ""
}

func printOptions(opts PageOptions) (*proto.PagePrintToPDF, error) {
	width, height, err := PaperSize(opts.Format)
	if err != nil {
		return nil, err
	}
	m, err := opts.Margins.inches()
	if err != nil {
		return nil, err
	}
	return &proto.PagePrintToPDF{
		PaperWidth:          &width,
		PaperHeight:         &height,
		MarginTop:           &m[0],
		MarginRight:         &m[1],
		MarginBottom:        &m[2],
		MarginLeft:          &m[3],
		PrintBackground:     true,
		PreferCSSPageSize:   true,
		DisplayHeaderFooter: false,
	}, nil
}

func wrapTimeout(ctx context.Context, stage string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("render pdf: %s: timed out: %w", stage, context.DeadlineExceeded)
	}
	return fmt.Errorf("render pdf: %s: %w", stage, err)
}
