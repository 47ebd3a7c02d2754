// Package tokens declares the server-side repository contract for opaque
// bearer tokens in persistent storage.
package tokens

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// Repository defines operations for issuing and resolving bearer tokens.
type Repository interface {
	// Create stores a new token for userID.
	Create(ctx context.Context, userID int64, token string) error

	// Find looks a token up by its opaque string and returns its metadata.
	// Returns common.ErrorNotFound when the token is unknown.
	Find(ctx context.Context, token string) (*models.AuthToken, error)
}
