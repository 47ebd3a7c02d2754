// Package users declares the server-side repository contract for user
// records in persistent storage.
package users

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// Repository defines operations over the users table.
type Repository interface {
	// Create inserts a new user and returns it with the generated ID and
	// timestamps filled in. A duplicate email yields common.ErrorEmailTaken.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks a user up by email. Returns common.ErrorNotFound
	// when no such user exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks a user up by primary key. Returns common.ErrorNotFound
	// when no such user exists.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
