// Package rest exposes the todo API over HTTP/JSON. It decodes and validates
// requests, calls the services and maps domain results and errors onto a
// uniform response envelope. Nothing below this layer writes to the transport.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
)

// fieldErrors maps a request field to its validation messages.
type fieldErrors map[string][]string

// envelope is the uniform JSON wrapper used on every response.
type envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    any         `json:"data,omitempty"`
	Error   fieldErrors `json:"error,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error(context.Background(), "writing response", "error", err)
	}
}

func (s *Server) sendResponse(w http.ResponseWriter, message string, data any) {
	s.writeJSON(w, http.StatusOK, envelope{Status: true, Message: message, Data: data})
}

func (s *Server) sendSuccess(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusOK, envelope{Status: true, Message: message})
}

func (s *Server) sendError(w http.ResponseWriter, message string, code int) {
	s.writeJSON(w, code, envelope{Status: false, Message: message})
}

func (s *Server) sendValidationError(w http.ResponseWriter, errs fieldErrors) {
	s.writeJSON(w, http.StatusUnprocessableEntity, envelope{Status: false, Error: errs})
}
