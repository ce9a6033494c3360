package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/postlane/postlane/pkg/postlane"
)

// ErrorResponse is the JSON body for failed requests
type ErrorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// renderError maps a service error to an HTTP status and a stable kind
// string clients can branch on.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound      *postlane.NotFoundError
		badCount      *postlane.AttachmentCountError
		uploadErr     *postlane.UploadError
		persistErr    *postlane.PersistError
		partialDelete *postlane.PartialDeleteError
	)

	switch {
	case errors.As(err, &notFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Kind: "not_found", Error: err.Error()})
	case errors.As(err, &badCount):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Kind: "attachment_count_invalid", Error: err.Error()})
	case errors.Is(err, postlane.ErrInvalidAttachmentName):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Kind: "invalid_attachment_name", Error: err.Error()})
	case errors.Is(err, postlane.ErrDuplicateUser):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ErrorResponse{Kind: "duplicate_user", Error: err.Error()})
	case errors.As(err, &uploadErr):
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, ErrorResponse{Kind: "upload_failure", Error: err.Error()})
	case errors.As(err, &partialDelete):
		// Retryable: the row is untouched, a later sweep can finish the job
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ErrorResponse{Kind: "partial_delete_failure", Error: err.Error()})
	case errors.As(err, &persistErr):
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Kind: "persist_failure", Error: err.Error()})
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Kind: "internal", Error: err.Error()})
	}
}
