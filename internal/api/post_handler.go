package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/postlane/postlane/pkg/postlane"
)

// maxUploadBytes bounds the multipart form kept in memory per request.
const maxUploadBytes = 32 << 20

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	service postlane.Service
}

// NewPostHandler creates a new post handler
func NewPostHandler(service postlane.Service) *PostHandler {
	return &PostHandler{service: service}
}

// Routes returns the routes for posts
func (h *PostHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreatePost)
	r.Get("/", h.ListPosts)
	r.Get("/{id}", h.GetPost)
	r.Put("/{id}", h.UpdatePost)
	r.Delete("/{id}", h.DeletePost)
	r.Get("/{id}/comments", h.ListPostComments)

	return r
}

// PostResponse is the response body for a post
type PostResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	AuthorID    string              `json:"author_id"`
	CategoryID  string              `json:"category_id"`
	Media       []postlane.MediaRef `json:"media"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func toPostResponse(post *postlane.Post) PostResponse {
	return PostResponse{
		ID:          post.ID.String(),
		Title:       post.Title,
		Description: post.Description,
		AuthorID:    post.AuthorID.String(),
		CategoryID:  post.CategoryID.String(),
		Media:       post.Media,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

// parsePostForm extracts the common multipart fields shared by create and
// update: title, description, author_id, category_id, and the files parts.
func parsePostForm(r *http.Request) (title, description string, authorID, categoryID uuid.UUID, files []postlane.FileUpload, err error) {
	if err = r.ParseMultipartForm(maxUploadBytes); err != nil {
		return
	}

	title = r.FormValue("title")
	description = r.FormValue("description")

	authorID, err = uuid.Parse(r.FormValue("author_id"))
	if err != nil {
		return
	}
	categoryID, err = uuid.Parse(r.FormValue("category_id"))
	if err != nil {
		return
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			f, openErr := header.Open()
			if openErr != nil {
				err = openErr
				return
			}
			data, readErr := io.ReadAll(f)
			f.Close()
			if readErr != nil {
				err = readErr
				return
			}
			files = append(files, postlane.FileUpload{Name: header.Filename, Data: data})
		}
	}
	return
}

// CreatePost creates a new post from a multipart form
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	title, description, authorID, categoryID, files, err := parsePostForm(r)
	if err != nil {
		slog.Error("Invalid create post form", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.service.CreatePost(r.Context(), postlane.CreatePostRequest{
		Title:       title,
		Description: description,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		Files:       files,
	})
	if err != nil {
		slog.Error("Failed to create post", "error", err)
		renderError(w, r, err)
		return
	}

	slog.Info("Post created", "post_id", post.ID.String())
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toPostResponse(post))
}

// UpdatePost updates an existing post from a multipart form. Omitting the
// files parts keeps the stored attachments.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	title, description, authorID, categoryID, files, err := parsePostForm(r)
	if err != nil {
		slog.Error("Invalid update post form", "post_id", id.String(), "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), id, postlane.UpdatePostRequest{
		Title:       title,
		Description: description,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		Files:       files,
	})
	if err != nil {
		slog.Error("Failed to update post", "post_id", id.String(), "error", err)
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, toPostResponse(post))
}

// GetPost returns a post by ID
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, toPostResponse(post))
}

// ListPosts returns all posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		slog.Error("Failed to list posts", "error", err)
		renderError(w, r, err)
		return
	}

	resp := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		resp = append(resp, toPostResponse(post))
	}
	render.JSON(w, r, resp)
}

// DeletePost deletes a post and its attachments
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		slog.Error("Failed to delete post", "post_id", id.String(), "error", err)
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPostComments returns the comments attached to a post
func (h *PostHandler) ListPostComments(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := h.service.ListPostComments(r.Context(), id)
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
