package middleware

// Context keys shared between middleware and handlers.
const (
	requestIDKey = "requestId"
	// GenerationIDKey holds the ID of the archive produced by the request.
	GenerationIDKey = "generationId"
	// DocumentKindKey holds the kind of document a generation request produced.
	DocumentKindKey = "documentKind"
)
