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

// UserHandler handles HTTP requests for users
type UserHandler struct {
	service postlane.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(service postlane.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Routes returns the routes for users
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateUser)
	r.Get("/", h.ListUsers)
	r.Get("/{id}", h.GetUser)
	r.Delete("/{id}", h.DeleteUser)

	return r
}

// CreateUserRequest is the request body for registering a user
type CreateUserRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

// UserResponse is the response body for a user
type UserResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(user *postlane.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		UserName:  user.UserName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// CreateUser registers a new user
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserName == "" || req.Email == "" {
		http.Error(w, "user_name and email are required", http.StatusBadRequest)
		return
	}

	user, err := h.service.CreateUser(r.Context(), postlane.CreateUserRequest{
		UserName: req.UserName,
		Email:    req.Email,
	})
	if err != nil {
		slog.Error("Failed to create user", "email", req.Email, "error", err)
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toUserResponse(user))
}

// GetUser returns a user by ID
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, toUserResponse(user))
}

// ListUsers returns all users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}
	render.JSON(w, r, resp)
}

// DeleteUser removes a user
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
