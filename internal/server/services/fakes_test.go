package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/dbx"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	todorepo "github.com/dmitrijs2005/todoapi/internal/server/repositories/todos"
	tokenrepo "github.com/dmitrijs2005/todoapi/internal/server/repositories/tokens"
	userrepo "github.com/dmitrijs2005/todoapi/internal/server/repositories/users"
)

// setupDB provides a real connection for dbx.WithTx scoping; the fake
// repositories below ignore the transactional handle.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:svc_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---- fakes ----

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[int64]*models.User

	nextID    int64
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}, byID: map[int64]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return nil, common.ErrorEmailTaken
	}
	f.nextID++
	user.ID = f.nextID
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeTokenRepo struct {
	tokens map[string]int64

	createErr error
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]int64{}}
}

func (f *fakeTokenRepo) Create(ctx context.Context, userID int64, token string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenRepo) Find(ctx context.Context, token string) (*models.AuthToken, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.AuthToken{UserID: userID, Token: token}, nil
}

type fakeTodoRepo struct {
	items map[int64]*models.Todo
	order []int64

	nextID    int64
	createErr error
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{items: map[int64]*models.Todo{}}
}

func (f *fakeTodoRepo) List(ctx context.Context, limit, offset int) ([]*models.Todo, error) {
	// newest first
	var out []*models.Todo
	for i := len(f.order) - 1; i >= 0; i-- {
		out = append(out, f.items[f.order[i]])
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTodoRepo) Count(ctx context.Context) (int, error) {
	return len(f.items), nil
}

func (f *fakeTodoRepo) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	todo, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *todo
	return &cp, nil
}

func (f *fakeTodoRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	todo.ID = f.nextID
	f.items[todo.ID] = todo
	f.order = append(f.order, todo.ID)
	return todo, nil
}

func (f *fakeTodoRepo) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if _, ok := f.items[todo.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.items[todo.ID] = todo
	return todo, nil
}

func (f *fakeTodoRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeRepoManager records the handle passed to each vend so tests can check
// which operations ran on a transaction and which on the bare connection.
type fakeRepoManager struct {
	users  *fakeUserRepo
	tokens *fakeTokenRepo
	todos  *fakeTodoRepo

	userVends  []dbx.DBTX
	tokenVends []dbx.DBTX
	todoVends  []dbx.DBTX
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:  newFakeUserRepo(),
		tokens: newFakeTokenRepo(),
		todos:  newFakeTodoRepo(),
	}
}

func (f *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) userrepo.Repository {
	f.userVends = append(f.userVends, db)
	return f.users
}

func (f *fakeRepoManager) Tokens(db dbx.DBTX) tokenrepo.Repository {
	f.tokenVends = append(f.tokenVends, db)
	return f.tokens
}

func (f *fakeRepoManager) Todos(db dbx.DBTX) todorepo.Repository {
	f.todoVends = append(f.todoVends, db)
	return f.todos
}

type fakeFileStore struct {
	objects map[string]string

	nextKey   int
	saveErr   error
	deleteErr error
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{objects: map[string]string{}}
}

func (f *fakeFileStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.nextKey++
	key := fmt.Sprintf("uploads/%d-%s", f.nextKey, originalName)
	f.objects[key] = string(data)
	return key, nil
}

func (f *fakeFileStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeFileStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeFileStore) URL(key string) string {
	return "http://files.local/" + key
}
