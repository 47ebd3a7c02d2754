package todos

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var listQuery = `(?s)^SELECT\s+id,\s*title,\s*description,\s*file_path,\s*created_at,\s*updated_at\s+FROM\s+todos\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s+LIMIT\s+\$1\s+OFFSET\s+\$2\s*$`

func TestList_ReturnsRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	filePath := "uploads/a.pdf"
	rows := sqlmock.NewRows([]string{"id", "title", "description", "file_path", "created_at", "updated_at"}).
		AddRow(2, "second", "desc2", nil, time.Now(), time.Now()).
		AddRow(1, "first", "desc1", &filePath, time.Now(), time.Now())
	mock.ExpectQuery(listQuery).
		WithArgs(10, 0).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(got))
	}
	if got[0].ID != 2 || got[0].FilePath != nil {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].FilePath == nil || *got[1].FilePath != "uploads/a.pdf" {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "description", "file_path", "created_at", "updated_at"})
	mock.ExpectQuery(listQuery).
		WithArgs(10, 20).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), 10, 20)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no todos, got %d", len(got))
	}
}

func TestCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+COUNT\(\*\)\s+FROM\s+todos$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	got, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if got != 17 {
		t.Fatalf("expected 17, got %d", got)
	}
}

var getQuery = `(?s)^SELECT\s+id,\s*title,\s*description,\s*file_path,\s*created_at,\s*updated_at\s+FROM\s+todos\s+WHERE\s+id\s*=\s*\$1\s*$`

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+todos\s*\(title,\s*description,\s*file_path\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(3, time.Now(), time.Now())
	mock.ExpectQuery(q).
		WithArgs("Buy milk", "2%", nil).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), &models.Todo{Title: "Buy milk", Description: "2%"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 3 {
		t.Fatalf("unexpected todo: %+v", got)
	}
}

var updateQuery = `(?s)^UPDATE\s+todos\s+SET\s+title\s*=\s*\$1,\s*description\s*=\s*\$2,\s*file_path\s*=\s*\$3,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$4\s+RETURNING\s+created_at,\s*updated_at\s*$`

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	filePath := "uploads/b.pdf"
	rows := sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now())
	mock.ExpectQuery(updateQuery).
		WithArgs("new title", "new desc", &filePath, int64(3)).
		WillReturnRows(rows)

	got, err := repo.Update(context.Background(), &models.Todo{ID: 3, Title: "new title", Description: "new desc", FilePath: &filePath})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Title != "new title" {
		t.Fatalf("unexpected todo: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(updateQuery).
		WithArgs("t", "d", nil, int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Todo{ID: 404, Title: "t", Description: "d"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

var deleteQuery = `(?s)^DELETE\s+FROM\s+todos\s+WHERE\s+id\s*=\s*\$1$`

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQuery).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
