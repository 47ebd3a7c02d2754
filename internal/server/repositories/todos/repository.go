// Package todos declares the server-side repository contract for todo
// records in persistent storage.
package todos

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// Repository defines operations over the todos table.
type Repository interface {
	// List returns up to limit todos ordered by creation time descending,
	// skipping offset rows.
	List(ctx context.Context, limit, offset int) ([]*models.Todo, error)

	// Count returns the total number of todos.
	Count(ctx context.Context) (int, error)

	// GetByID looks a todo up by primary key. Returns common.ErrorNotFound
	// when no such todo exists.
	GetByID(ctx context.Context, id int64) (*models.Todo, error)

	// Create inserts a new todo and returns it with the generated ID and
	// timestamps filled in.
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)

	// Update rewrites title, description and file_path of an existing todo.
	// Returns common.ErrorNotFound when no such todo exists.
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)

	// Delete removes a todo by primary key. Returns common.ErrorNotFound
	// when no such todo exists.
	Delete(ctx context.Context, id int64) error
}
