package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// todoView is the external representation of a todo: the internal storage
// key is rendered as a public URL.
type todoView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FilePath    *string   `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// todoPage is the paginator payload for list responses.
type todoPage struct {
	CurrentPage int         `json:"current_page"`
	Data        []*todoView `json:"data"`
	PerPage     int         `json:"per_page"`
	Total       int         `json:"total"`
	LastPage    int         `json:"last_page"`
}

func (s *Server) todoView(t *models.Todo) *todoView {
	v := &todoView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.FilePath != nil {
		url := s.todos.URLFor(*t.FilePath)
		v.FilePath = &url
	}
	return v
}

type authData struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	req := &loginRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.sendError(w, "invalid request", http.StatusBadRequest)
		return
	}

	if errs := req.validate(); errs != nil {
		s.sendValidationError(w, errs)
		return
	}

	user, token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			s.sendError(w, "Invalid Credentials!", http.StatusBadRequest)
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		s.sendError(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	s.sendResponse(w, "Login Successfully!", authData{Token: token, User: user})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	req := &registerRequest{}
	if err := decodeJSON(r, req); err != nil {
		s.sendError(w, "invalid request", http.StatusBadRequest)
		return
	}

	if errs := req.validate(); errs != nil {
		s.sendValidationError(w, errs)
		return
	}

	user, token, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			s.sendValidationError(w, fieldErrors{"email": {"The email has already been taken."}})
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err)
		s.sendError(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	s.sendResponse(w, "Register Successfully!", authData{Token: token, User: user})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	s.sendResponse(w, "", currentUser(r.Context()))
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	items, meta, err := s.todos.List(r.Context(), page, perPage)
	if err != nil {
		s.logger.Error(r.Context(), "listing todos", "error", err)
		s.sendError(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	views := make([]*todoView, 0, len(items))
	for _, t := range items {
		views = append(views, s.todoView(t))
	}

	s.sendResponse(w, "Todos retrieved successfully!", todoPage{
		CurrentPage: meta.CurrentPage,
		Data:        views,
		PerPage:     meta.PerPage,
		Total:       meta.Total,
		LastPage:    meta.LastPage,
	})
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {

	req, err := decodeTodoRequest(r)
	if err != nil {
		s.sendError(w, "invalid request", http.StatusBadRequest)
		return
	}
	defer req.close()

	if errs := req.validate(); errs != nil {
		s.sendValidationError(w, errs)
		return
	}

	if _, err := s.todos.Create(r.Context(), req.Title, req.Description, req.File); err != nil {
		s.logger.Error(r.Context(), "creating todo", "error", err)
		s.sendError(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	s.sendSuccess(w, "todo added successfully!")
}

// todoID parses the {id} path segment. Any value that is not a number maps
// to "not found", same as an unknown id.
func todoID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {

	id, ok := todoID(r)
	if !ok {
		s.sendError(w, "Todo not found", http.StatusNotFound)
		return
	}

	todo, err := s.todos.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.sendError(w, "Todo not found", http.StatusNotFound)
			return
		}
		s.logger.Error(r.Context(), "retrieving todo", "error", err)
		s.sendError(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	s.sendResponse(w, "Todo retrieved successfully!", s.todoView(todo))
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {

	id, ok := todoID(r)
	if !ok {
		s.sendError(w, "Todo not found", http.StatusNotFound)
		return
	}

	req, err := decodeTodoRequest(r)
	if err != nil {
		s.sendError(w, "invalid request", http.StatusBadRequest)
		return
	}
	defer req.close()

	if errs := req.validate(); errs != nil {
		s.sendValidationError(w, errs)
		return
	}

	todo, err := s.todos.Update(r.Context(), id, req.Title, req.Description, req.File)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.sendError(w, "Todo not found", http.StatusNotFound)
			return
		}
		s.logger.Error(r.Context(), "updating todo", "error", err)
		s.sendError(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	s.sendResponse(w, "Todo updated successfully!", s.todoView(todo))
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {

	id, ok := todoID(r)
	if !ok {
		s.sendError(w, "Todo not found", http.StatusNotFound)
		return
	}

	if err := s.todos.Delete(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.sendError(w, "Todo not found", http.StatusNotFound)
			return
		}
		s.logger.Error(r.Context(), "deleting todo", "error", err)
		s.sendError(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	s.sendSuccess(w, "Todo deleted successfully!")
}
