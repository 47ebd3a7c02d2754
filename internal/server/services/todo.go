package services

import (
	"context"
	"database/sql"
	"io"

	"github.com/dmitrijs2005/todoapi/internal/dbx"
	"github.com/dmitrijs2005/todoapi/internal/server/filestore"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
)

// DefaultPerPage is the page size used when the client does not specify one.
const DefaultPerPage = 10

// FileUpload carries an inbound attachment. ContentType is the media type
// declared by the client for the multipart part.
type FileUpload struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// PageMeta describes one page of a listing.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// TodoService implements todo CRUD. Record changes run inside dbx.WithTx;
// file-store writes and deletes happen alongside but are not covered by the
// record transaction's rollback, so a failed insert after a successful
// upload leaves the stored file behind.
type TodoService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	files filestore.Store
}

// NewTodoService constructs a TodoService on top of the given connection,
// repository manager and file store.
func NewTodoService(db *sql.DB, repos repomanager.RepositoryManager, files filestore.Store) *TodoService {
	return &TodoService{db: db, repos: repos, files: files}
}

// List returns one page of todos ordered by creation time descending,
// together with paging metadata. page defaults to 1 and perPage to
// DefaultPerPage when out of range. perPage has no upper bound.
func (s *TodoService) List(ctx context.Context, page, perPage int) ([]*models.Todo, *PageMeta, error) {

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	repo := s.repos.Todos(s.db)

	total, err := repo.Count(ctx)
	if err != nil {
		return nil, nil, err
	}

	items, err := repo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	meta := &PageMeta{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}

	return items, meta, nil
}

// Get returns the todo with the given id, or common.ErrorNotFound.
func (s *TodoService) Get(ctx context.Context, id int64) (*models.Todo, error) {
	return s.repos.Todos(s.db).GetByID(ctx, id)
}

// Create stores the attachment (if any) first and then persists the record.
// If the insert fails after the file was stored, the stored file is left
// behind; known gap inherited from the source system.
func (s *TodoService) Create(ctx context.Context, title, description string, file *FileUpload) (*models.Todo, error) {

	var filePath *string
	if file != nil {
		key, err := s.files.Save(ctx, file.Name, file.Content)
		if err != nil {
			return nil, err
		}
		filePath = &key
	}

	var created *models.Todo
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		todo, err := s.repos.Todos(tx).Create(ctx, &models.Todo{
			Title:       title,
			Description: description,
			FilePath:    filePath,
		})
		if err != nil {
			return err
		}
		created = todo
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update rewrites title and description, and replaces the attachment when a
// new file is supplied: the previous file is deleted from storage, the new
// one saved and the record updated. Record changes roll back on error; the
// file-store side effects do not.
func (s *TodoService) Update(ctx context.Context, id int64, title, description string, file *FileUpload) (*models.Todo, error) {

	var updated *models.Todo
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Todos(tx)

		todo, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if file != nil {
			if todo.FilePath != nil {
				if err := s.files.Delete(ctx, *todo.FilePath); err != nil {
					return err
				}
			}
			key, err := s.files.Save(ctx, file.Name, file.Content)
			if err != nil {
				return err
			}
			todo.FilePath = &key
		}

		todo.Title = title
		todo.Description = description

		updated, err = repo.Update(ctx, todo)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the attachment first (a no-op when the key is already
// gone) and then the record.
func (s *TodoService) Delete(ctx context.Context, id int64) error {

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Todos(tx)

		todo, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if todo.FilePath != nil {
			if err := s.files.Delete(ctx, *todo.FilePath); err != nil {
				return err
			}
		}

		return repo.Delete(ctx, id)
	})
}

// URLFor renders the public URL for a stored attachment key.
func (s *TodoService) URLFor(key string) string {
	return s.files.URL(key)
}
