package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvStoreLookup(t *testing.T) {
	env := map[string]string{MasterPasswordKey: "  s3cret  ", "BLANK": "   "}
	store := EnvStore{Getenv: func(k string) string { return env[k] }}

	val, err := store.Lookup(context.Background(), MasterPasswordKey)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", val)

	_, err = store.Lookup(context.Background(), "BLANK")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Lookup(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRespectsContext(t *testing.T) {
	store := NewMemoryStore(map[string]string{"k": "v"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.Lookup(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)

	store.Set("k", "v2")
	val, err := store.Lookup(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", val)
}

func TestVerifier(t *testing.T) {
	v := NewMasterPasswordVerifier(NewMemoryStore(map[string]string{MasterPasswordKey: "s3cret"}))
	ctx := context.Background()

	assert.NoError(t, v.Verify(ctx, "s3cret"))
	assert.ErrorIs(t, v.Verify(ctx, "wrong"), ErrUnauthorized)
	assert.ErrorIs(t, v.Verify(ctx, ""), ErrUnauthorized)
	assert.ErrorIs(t, v.Verify(ctx, "s3cret "), ErrUnauthorized)
}

func TestVerifierRejectsWhenSecretMissing(t *testing.T) {
	v := NewMasterPasswordVerifier(NewMemoryStore(nil))
	assert.ErrorIs(t, v.Verify(context.Background(), "anything"), ErrUnauthorized)

	var nilVerifier *Verifier
	assert.ErrorIs(t, nilVerifier.Verify(context.Background(), "anything"), ErrUnauthorized)
}

type failingStore struct{ err error }

func (f failingStore) Lookup(context.Context, string) (string, error) { return "", f.err }

func TestVerifierWrapsBackendErrors(t *testing.T) {
	boom := errors.New("connection refused")
	v := NewMasterPasswordVerifier(failingStore{err: boom})
	err := v.Verify(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestPGStoreLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store := &PGStore{DB: db}

	mock.ExpectQuery("SELECT value FROM credentials").
		WithArgs(MasterPasswordKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("s3cret"))
	val, err := store.Lookup(context.Background(), MasterPasswordKey)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if val != "s3cret" {
		t.Fatalf("unexpected value %q", val)
	}

	mock.ExpectQuery("SELECT value FROM credentials").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	if _, err := store.Lookup(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStorePut(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO credentials").
		WithArgs(MasterPasswordKey, "s3cret").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := (&PGStore{DB: db}).Put(context.Background(), MasterPasswordKey, "s3cret"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
