package generateddocs

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pgColumns = []string{"id", "kind", "base_name", "file_name", "storage_key", "mime_type", "size_bytes", "job_offer_hash", "created_at"}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO generated_documents")).
		WithArgs("id-1", "resume", "resume_1", "resume_1.zip", "resume/id-1/resume_1.zip", "application/zip", int64(42), "hash", created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	err = repo.Create(context.Background(), GeneratedDocument{
		ID: "id-1", Kind: KindResume, BaseName: "resume_1", FileName: "resume_1.zip",
		StorageKey: "resume/id-1/resume_1.zip", MimeType: "application/zip", SizeBytes: 42,
		JobOfferHash: "hash", CreatedAt: created,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM generated_documents")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoListClampsPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(pgColumns).
		AddRow("id-2", "cover_letter", "cover_letter_2", "cover_letter_2.zip", "k2", "application/zip", int64(10), "h", created)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs("cover_letter", maxListLimit, 0).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	docs, err := repo.List(context.Background(), KindCoverLetter, 1000, -3)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, KindCoverLetter, docs[0].Kind)
	assert.Equal(t, "k2", docs[0].StorageKey)
	require.NoError(t, mock.ExpectationsWereMet())
}
