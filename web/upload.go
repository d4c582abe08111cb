package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"datacleaners/models"
	"datacleaners/services"
	"datacleaners/storage"
)

var (
	errNoFile = errors.New("no file uploaded")
	errNotCSV = errors.New("only .csv files are accepted")
)

// parseUploadForm bounds the request body and parses the multipart form.
func (h *Handlers) parseUploadForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes())
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes()); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return errNoFile
		}
		return err
	}
	return nil
}

// formFiles returns the files posted under field, in upload order.
func formFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

// singleUpload reads the first file posted under field.
func singleUpload(r *http.Request, field string) (models.Upload, error) {
	files := formFiles(r, field)
	if len(files) == 0 {
		return models.Upload{}, errNoFile
	}
	return readUpload(files[0])
}

// readUpload loads a posted file into memory after checking its extension.
func readUpload(fh *multipart.FileHeader) (models.Upload, error) {
	name := filepath.Base(fh.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return models.Upload{}, &services.FileError{File: name, Err: errNotCSV}
	}
	f, err := fh.Open()
	if err != nil {
		return models.Upload{}, &services.FileError{File: name, Err: fmt.Errorf("open upload: %w", err)}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.Upload{}, &services.FileError{File: name, Err: fmt.Errorf("read upload: %w", err)}
	}
	return models.Upload{Name: name, Data: data}, nil
}

// statusFor maps a pipeline error onto an HTTP status for API clients.
func statusFor(err error) int {
	var (
		schemaErr *services.SchemaError
		decodeErr *storage.DecodeError
		tooLarge  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errNotCSV):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &decodeErr), errors.Is(err, errNoFile):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
