package credentials

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"resumegen/internal/shared/telemetry"
)

// Verifier checks a provided secret against the stored one.
type Verifier struct {
	Store Store
	Key   string
}

// NewMasterPasswordVerifier returns a Verifier for MasterPasswordKey.
func NewMasterPasswordVerifier(store Store) *Verifier {
	return &Verifier{Store: store, Key: MasterPasswordKey}
}

// Verify returns nil when provided equals the stored secret. A missing secret rejects
// every request. Lookup failures other than ErrNotFound are returned wrapped.
func (v *Verifier) Verify(ctx context.Context, provided string) error {
	if provided == "" {
		return ErrUnauthorized
	}
	if v == nil || v.Store == nil {
		return ErrUnauthorized
	}
	key := v.Key
	if key == "" {
		key = MasterPasswordKey
	}
	expected, err := v.Store.Lookup(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			telemetry.Error("credentials.missing", map[string]any{"key": key})
			return ErrUnauthorized
		}
		return fmt.Errorf("lookup %s: %w", key, err)
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
