package generateddocs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumegen/internal/shared/storage/object"
	"resumegen/internal/shared/util"
	"resumegen/resume/bundle"
)

// RecordInput describes an archive to keep.
type RecordInput struct {
	// ID is optional; a UUID is generated when empty.
	ID       string
	Kind     Kind
	BaseName string
	Archive  bundle.Archive
	JobOffer string
}

// Service stores generated archives and their history rows.
type Service struct {
	Repo  Repo
	Store object.Store
	Now   func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, store object.Store) *Service {
	return &Service{Repo: repo, Store: store, Now: time.Now}
}

// Record uploads the archive and inserts its history row. The object is removed
// again when the row cannot be written.
func (s *Service) Record(ctx context.Context, in RecordInput) (GeneratedDocument, error) {
	if !in.Kind.Valid() || strings.TrimSpace(in.Archive.FileName) == "" || len(in.Archive.Data) == 0 {
		return GeneratedDocument{}, ErrInvalidInput
	}
	if s.Repo == nil || s.Store == nil {
		return GeneratedDocument{}, errors.New("missing dependencies")
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	key, err := object.Key(string(in.Kind), id, in.Archive.FileName)
	if err != nil {
		return GeneratedDocument{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	size, err := s.Store.Put(ctx, key, bundle.ContentType, bytes.NewReader(in.Archive.Data))
	if err != nil {
		return GeneratedDocument{}, fmt.Errorf("store archive: %w", err)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	doc := GeneratedDocument{
		ID:           id,
		Kind:         in.Kind,
		BaseName:     in.BaseName,
		FileName:     in.Archive.FileName,
		StorageKey:   key,
		MimeType:     bundle.ContentType,
		SizeBytes:    size,
		JobOfferHash: util.Fingerprint(in.JobOffer),
		CreatedAt:    now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		_ = s.Store.Delete(ctx, key)
		return GeneratedDocument{}, fmt.Errorf("record history: %w", err)
	}
	return doc, nil
}

// Get returns a history record by ID.
func (s *Service) Get(ctx context.Context, id string) (GeneratedDocument, error) {
	if strings.TrimSpace(id) == "" {
		return GeneratedDocument{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns history records newest first. An empty kind lists every kind.
func (s *Service) List(ctx context.Context, kind Kind, limit, offset int) ([]GeneratedDocument, error) {
	if kind != "" && !kind.Valid() {
		return nil, ErrInvalidInput
	}
	return s.Repo.List(ctx, kind, limit, offset)
}

// Open returns the record and a reader over its stored archive. Callers close the reader.
func (s *Service) Open(ctx context.Context, id string) (GeneratedDocument, io.ReadCloser, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return GeneratedDocument{}, nil, err
	}
	rc, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return GeneratedDocument{}, nil, ErrNotFound
		}
		return GeneratedDocument{}, nil, err
	}
	return doc, rc, nil
}
