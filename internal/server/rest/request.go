package rest

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/mail"

	"github.com/dmitrijs2005/todoapi/internal/server/services"
)

// multipartMemoryLimit caps how much of a multipart body is held in memory;
// larger parts spill to temporary files.
const multipartMemoryLimit = 32 << 20

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if r.Email == "" {
		errs["email"] = append(errs["email"], "The email field is required.")
	} else if !isEmail(r.Email) {
		errs["email"] = append(errs["email"], "The email must be a valid email address.")
	}
	if r.Password == "" {
		errs["password"] = append(errs["password"], "The password field is required.")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *registerRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if r.Name == "" {
		errs["name"] = append(errs["name"], "The name field is required.")
	}
	if r.Email == "" {
		errs["email"] = append(errs["email"], "The email field is required.")
	} else if !isEmail(r.Email) {
		errs["email"] = append(errs["email"], "The email must be a valid email address.")
	}
	if r.Password == "" {
		errs["password"] = append(errs["password"], "The password field is required.")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// todoRequest is the decoded body of todo create/update calls. File stays
// nil when the request carries no attachment.
type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	File        *services.FileUpload

	fileHandle io.Closer
}

// close releases the uploaded file handle, if any. Handlers defer it so the
// handle does not stay open until the multipart form's own cleanup.
func (r *todoRequest) close() {
	if r.fileHandle != nil {
		_ = r.fileHandle.Close()
	}
}

func (r *todoRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if r.Title == "" {
		errs["title"] = append(errs["title"], "The title field is required.")
	}
	if r.Description == "" {
		errs["description"] = append(errs["description"], "The description field is required.")
	}
	if r.File != nil && !isPDF(r.File.ContentType) {
		errs["file"] = append(errs["file"], "The file must be a file of type: pdf.")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func isEmail(addr string) bool {
	a, err := mail.ParseAddress(addr)
	return err == nil && a.Address == addr
}

// isPDF checks the media type the client declared for the attachment.
func isPDF(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/pdf"
}

// decodeJSON decodes a JSON request body into dst. An empty body is not a
// decode error: dst stays zero-valued so field validation reports every
// missing field, the same as a body that omits them.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// decodeTodoRequest reads a todo create/update body. Multipart form data is
// the primary format since it can carry an attachment; a plain JSON body
// (without attachment) is accepted as well.
func decodeTodoRequest(r *http.Request) (*todoRequest, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt != "multipart/form-data" {
		req := &todoRequest{}
		if err := decodeJSON(r, req); err != nil {
			return nil, err
		}
		return req, nil
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return nil, err
	}

	req := &todoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, err
		}
		return req, nil
	}

	req.File = &services.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}
	req.fileHandle = file

	return req, nil
}
