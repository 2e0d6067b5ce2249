// Package credentials reads shared secrets from a key-value source and checks
// caller-provided values against them.
package credentials

import (
	"context"
	"os"
	"strings"
)

// MasterPasswordKey is the key under which the generation password is stored.
const MasterPasswordKey = "MASTER_PASSWORD"

// Store looks up a secret by key.
type Store interface {
	Lookup(ctx context.Context, key string) (string, error)
}

// EnvStore reads secrets from process environment variables.
type EnvStore struct {
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// Lookup returns the trimmed variable value or ErrNotFound when unset or blank.
func (s EnvStore) Lookup(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	val := strings.TrimSpace(getenv(key))
	if val == "" {
		return "", ErrNotFound
	}
	return val, nil
}

var _ Store = EnvStore{}
