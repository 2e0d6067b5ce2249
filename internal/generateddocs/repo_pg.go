package generateddocs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, kind, base_name, file_name, storage_key, mime_type, size_bytes, job_offer_hash, created_at`

// Create inserts a history record.
func (r *PGRepo) Create(ctx context.Context, doc GeneratedDocument) error {
	const query = `
INSERT INTO generated_documents (
    id, kind, base_name, file_name, storage_key, mime_type, size_bytes, job_offer_hash, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		string(doc.Kind),
		doc.BaseName,
		doc.FileName,
		doc.StorageKey,
		doc.MimeType,
		doc.SizeBytes,
		doc.JobOfferHash,
		doc.CreatedAt,
	)
	return err
}

// GetByID returns a history record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (GeneratedDocument, error) {
	query := `
SELECT ` + selectColumns + `
FROM generated_documents
WHERE id = $1
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedDocument{}, ErrNotFound
		}
		return GeneratedDocument{}, err
	}
	return doc, nil
}

// List returns history records ordered newest first.
func (r *PGRepo) List(ctx context.Context, kind Kind, limit, offset int) ([]GeneratedDocument, error) {
	limit, offset = clampPage(limit, offset)
	query := `
SELECT ` + selectColumns + `
FROM generated_documents
WHERE ($1 = '' OR kind = $1)
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, string(kind), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GeneratedDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (GeneratedDocument, error) {
	var (
		doc  GeneratedDocument
		kind string
	)
	err := row.Scan(
		&doc.ID,
		&kind,
		&doc.BaseName,
		&doc.FileName,
		&doc.StorageKey,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.JobOfferHash,
		&doc.CreatedAt,
	)
	doc.Kind = Kind(kind)
	return doc, err
}

var _ Repo = (*PGRepo)(nil)
