package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"resumegen/resume/bundle"
	"resumegen/resume/fill"
	"resumegen/resume/latex"
	"resumegen/resume/model"
	"resumegen/resume/render"
	"resumegen/resume/template"
)

const (
	kindResume      = "resume"
	kindCoverLetter = "cover-letter"
	dateLayout      = "2006-01-02"
)

type rootOptions struct {
	out string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "texctl",
		Short:        "Fill, translate and render resume and cover letter templates",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")

	root.AddCommand(
		newFillCmd(opts),
		newTranslateCmd(opts),
		newRenderCmd(opts),
		newBuildCmd(),
	)
	return root
}

func newFillCmd(root *rootOptions) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "fill <content.json|->",
		Short:        "Fill a template with a content record and print the LaTeX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			markup, err := fillTemplate(kind, raw)
			if err != nil {
				return err
			}
			return writeOutput(cmd, root.out, []byte(markup))
		},
	}
	cmd.Flags().StringVar(&kind, "kind", kindResume, "document kind: resume or cover-letter")
	return cmd
}

func newTranslateCmd(root *rootOptions) *cobra.Command {
	var (
		title    string
		date     string
		fragment bool
	)
	cmd := &cobra.Command{
		Use:   "translate <file.tex|->",
		Short: "Translate filled LaTeX into printable HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			today, err := parseDate(date)
			if err != nil {
				return err
			}
			t := latex.Translator{Today: today, Title: title}
			out := t.Translate(string(raw))
			if fragment {
				out = t.Fragment(string(raw))
			}
			return writeOutput(cmd, root.out, []byte(out))
		},
	}
	cmd.Flags().StringVar(&title, "title", latex.DefaultTitle, "HTML document title")
	cmd.Flags().StringVar(&date, "date", "", "date for \\today as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "print the body fragment without the HTML shell")
	return cmd
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		kind    string
		chrome  string
		timeout time.Duration
		verify  bool
	)
	cmd := &cobra.Command{
		Use:   "render <file.html|->",
		Short: "Render an HTML document to PDF with headless Chrome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			pageOpts, err := pageOptionsFor(kind)
			if err != nil {
				return err
			}
			renderer := render.NewChromeRenderer(chrome, timeout)
			pdf, err := renderer.Render(cmd.Context(), string(raw), pageOpts)
			if err != nil {
				return err
			}
			if verify {
				if err := reportPDF(cmd.ErrOrStderr(), pdf); err != nil {
					return err
				}
			}
			return writeOutput(cmd, root.out, pdf)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", kindResume, "page layout: resume or cover-letter")
	cmd.Flags().StringVar(&chrome, "chrome", os.Getenv("CHROME_BIN"), "Chrome or Chromium binary")
	cmd.Flags().DurationVar(&timeout, "timeout", render.DefaultTimeout, "render timeout")
	cmd.Flags().BoolVar(&verify, "verify", false, "print page count and text summary of the rendered PDF to stderr")
	return cmd
}

func newBuildCmd() *cobra.Command {
	var (
		kind   string
		outDir string
		chrome string
	)
	cmd := &cobra.Command{
		Use:   "build <content.json|->",
		Short:        "Fill, translate, render and bundle a content record into a zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			now := time.Now()
			archive, err := build(cmd.Context(), kind, raw, now, render.NewChromeRenderer(chrome, 0))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			path := filepath.Join(outDir, archive.FileName)
			if err := os.WriteFile(path, archive.Data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: wrote %s (%d bytes)\n", path, archive.Size())
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", kindResume, "document kind: resume or cover-letter")
	cmd.Flags().StringVar(&outDir, "out-dir", "./out", "directory for the archive")
	cmd.Flags().StringVar(&chrome, "chrome", os.Getenv("CHROME_BIN"), "Chrome or Chromium binary")
	return cmd
}

func build(ctx context.Context, kind string, raw []byte, now time.Time, renderer render.Renderer) (bundle.Archive, error) {
	markup, err := fillTemplate(kind, raw)
	if err != nil {
		return bundle.Archive{}, err
	}
	pageOpts, err := pageOptionsFor(kind)
	if err != nil {
		return bundle.Archive{}, err
	}
	title := latex.DefaultTitle
	prefix := "resume"
	if kind == kindCoverLetter {
		title, prefix = "Cover Letter", "cover_letter"
	}
	doc := latex.Translator{Today: now, Title: title}.Translate(markup)
	pdf, err := renderer.Render(ctx, doc, pageOpts)
	if err != nil {
		return bundle.Archive{}, err
	}
	return bundle.Bundle(pdf, markup, prefix+"_"+strconv.FormatInt(now.UnixMilli(), 10), now)
}

func fillTemplate(kind string, raw []byte) (string, error) {
	switch kind {
	case kindResume:
		var content model.ResumeContent
		if err := json.Unmarshal(raw, &content); err != nil {
			return "", fmt.Errorf("decode resume content: %w", err)
		}
		return fill.FillResumeTemplate(template.LoadResumeTemplate(), content.Normalize()), nil
	case kindCoverLetter:
		var content model.CoverLetterContent
		if err := json.Unmarshal(raw, &content); err != nil {
			return "", fmt.Errorf("decode cover letter content: %w", err)
		}
		hints := model.PersonalInfo{Name: content.Name, Email: content.Email, Phone: content.Phone, Location: content.Location}
		return fill.FillCoverLetterTemplate(template.LoadCoverLetterTemplate(), model.NewCoverLetterContent(hints, content.Body)), nil
	default:
		return "", fmt.Errorf("unknown kind %q (want %s or %s)", kind, kindResume, kindCoverLetter)
	}
}

func pageOptionsFor(kind string) (render.PageOptions, error) {
	switch kind {
	case kindResume:
		return render.ResumePageOptions(), nil
	case kindCoverLetter:
		return render.CoverLetterPageOptions(), nil
	default:
		return render.PageOptions{}, fmt.Errorf("unknown kind %q (want %s or %s)", kind, kindResume, kindCoverLetter)
	}
}

func parseDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", raw, err)
	}
	return t, nil
}

func reportPDF(w io.Writer, pdf []byte) error {
	info, err := render.Inspect(pdf)
	if err != nil {
		return fmt.Errorf("verify pdf: %w", err)
	}
	preview := strings.Join(strings.Fields(info.Text), " ")
	if len(preview) > 120 {
		preview = preview[:120] + "..."
	}
	fmt.Fprintf(w, "pages=%d bytes=%d text=%q\n", info.Pages, len(pdf), preview)
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
