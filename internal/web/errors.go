package web

import (
	"net/http"

	"github.com/go-chi/render"
)

// apiError is the JSON error payload for API responses.
type apiError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *apiError) Error() string { return e.Message }

// Render implements the render.Renderer interface for chi/render.
func (e *apiError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

func errInvalidUpload(err error) *apiError {
	return &apiError{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  "INVALID_UPLOAD",
		Message:    "Could not read the uploaded file",
		Details:    err.Error(),
	}
}

func errRunNotFound(id string) *apiError {
	return &apiError{
		StatusCode: http.StatusNotFound,
		ErrorCode:  "RUN_NOT_FOUND",
		Message:    "No run with that ID",
		Details:    id,
	}
}

func errCleanFailed(err error) *apiError {
	return &apiError{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  "CLEAN_FAILED",
		Message:    "Cleaning run failed",
		Details:    err.Error(),
	}
}

func errExportFailed(err error) *apiError {
	return &apiError{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  "EXPORT_FAILED",
		Message:    "Could not export the cleaned dataset",
		Details:    err.Error(),
	}
}
