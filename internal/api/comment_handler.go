package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/postlane/postlane/pkg/postlane"
)

// CommentHandler handles HTTP requests for comments
type CommentHandler struct {
	service postlane.Service
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(service postlane.Service) *CommentHandler {
	return &CommentHandler{service: service}
}

// Routes returns the routes for comments
func (h *CommentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.AddComment)
	r.Get("/", h.ListComments)
	r.Get("/{id}", h.GetComment)
	r.Put("/{id}", h.UpdateComment)
	r.Delete("/{id}", h.DeleteComment)

	return r
}

// CommentRequest is the request body for adding a comment
type CommentRequest struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
	Body   string `json:"body"`
}

// CommentUpdateRequest is the request body for editing a comment
type CommentUpdateRequest struct {
	Body string `json:"body"`
}

// CommentResponse is the response body for a comment
type CommentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCommentResponse(comment *postlane.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		PostID:    comment.PostID.String(),
		UserID:    comment.UserID.String(),
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// AddComment attaches a comment to a post
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Body == "" {
		http.Error(w, "body is required", http.StatusBadRequest)
		return
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	comment, err := h.service.AddComment(r.Context(), postlane.CreateCommentRequest{
		PostID: postID,
		UserID: userID,
		Body:   req.Body,
	})
	if err != nil {
		slog.Error("Failed to add comment", "post_id", postID, "error", err)
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toCommentResponse(comment))
}

// GetComment returns a comment by ID
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	comment, err := h.service.GetComment(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, toCommentResponse(comment))
}

// ListComments returns all comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp = append(resp, toCommentResponse(comment))
	}
	render.JSON(w, r, resp)
}

// UpdateComment edits a comment body
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var req CommentUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Body == "" {
		http.Error(w, "body is required", http.StatusBadRequest)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), id, postlane.UpdateCommentRequest{
		Body: req.Body,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, toCommentResponse(comment))
}

// DeleteComment removes a comment
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteComment(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
