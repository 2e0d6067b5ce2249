package generation

import "errors"

var (
	// ErrInvalidInput indicates a request without job offer text.
	ErrInvalidInput = errors.New("job offer text is required")

	// ErrContentGeneration wraps failures of the content generator.
	ErrContentGeneration = errors.New("content generation failed")

	// ErrRendering wraps failures of the page renderer.
	ErrRendering = errors.New("page rendering failed")

	// ErrBundling wraps failures while packing the archive.
	ErrBundling = errors.New("archive bundling failed")
)
