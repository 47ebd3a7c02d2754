package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
)

// userService is the slice of the users service the REST layer needs.
type userService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// todoService is the slice of the todos service the REST layer needs.
type todoService interface {
	List(ctx context.Context, page, perPage int) ([]*models.Todo, *services.PageMeta, error)
	Get(ctx context.Context, id int64) (*models.Todo, error)
	Create(ctx context.Context, title, description string, file *services.FileUpload) (*models.Todo, error)
	Update(ctx context.Context, id int64, title, description string, file *services.FileUpload) (*models.Todo, error)
	Delete(ctx context.Context, id int64) error
	URLFor(key string) string
}

type Server struct {
	address   string
	logger    logging.Logger
	users     userService
	todos     todoService
	staticDir string
}

func NewServer(address string, l logging.Logger, us userService, ts todoService) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "rest"),
		users:   us,
		todos:   ts,
	}
}

// ServeStatic makes the server expose dir under /storage/. Used with the
// local file storage backend so attachment URLs resolve without a separate
// file server.
func (s *Server) ServeStatic(dir string) {
	s.staticDir = dir
}

// routes builds the request multiplexer. Login and register are public,
// everything else sits behind the bearer-token middleware.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /register", s.handleRegister)

	mux.Handle("GET /user", s.requireAuth(http.HandlerFunc(s.handleCurrentUser)))
	mux.Handle("GET /todos", s.requireAuth(http.HandlerFunc(s.handleListTodos)))
	mux.Handle("POST /todos", s.requireAuth(http.HandlerFunc(s.handleCreateTodo)))
	mux.Handle("GET /todos/{id}", s.requireAuth(http.HandlerFunc(s.handleGetTodo)))
	mux.Handle("PUT /todos/{id}", s.requireAuth(http.HandlerFunc(s.handleUpdateTodo)))
	mux.Handle("DELETE /todos/{id}", s.requireAuth(http.HandlerFunc(s.handleDeleteTodo)))

	if s.staticDir != "" {
		mux.Handle("GET /storage/", http.StripPrefix("/storage/", http.FileServer(http.Dir(s.staticDir))))
	}

	return mux
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
