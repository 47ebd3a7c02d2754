// Package filestore abstracts blob storage for todo attachments. Todos keep
// only the opaque storage key; the public URL is derived from the key at
// serialization time, so the URL policy can change without a data migration.
package filestore

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// keyPrefix is the fixed logical prefix all attachment keys live under.
const keyPrefix = "uploads"

// Store is a blob storage backend for uploaded files.
type Store interface {
	// Save writes the contents of r under a freshly generated storage key
	// and returns the key.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)

	// Delete removes the object with the given key. A missing key is not
	// an error; existence is checked before deleting.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object with the given key is stored.
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the public URL for a stored key.
	URL(key string) string
}

// newStorageKey generates a collision-free storage key, preserving the
// original file extension.
func newStorageKey(originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	return keyPrefix + "/" + uuid.NewString() + ext
}
