package generateddocs

import "context"

// Repo defines persistence operations for generation history.
type Repo interface {
	Create(ctx context.Context, doc GeneratedDocument) error
	GetByID(ctx context.Context, id string) (GeneratedDocument, error)
	// List returns records newest first. An empty kind matches every kind.
	List(ctx context.Context, kind Kind, limit, offset int) ([]GeneratedDocument, error)
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
