package handlers

import (
	"net/http"

	"devlink-backend/application/services"
	"devlink-backend/domain"
	"devlink-backend/pkg/auth"
	"devlink-backend/pkg/common"
	"devlink-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postService *services.PostService
	logger      *zap.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(postService *services.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title  string         `json:"title" validate:"required"`
	Text   string         `json:"text" validate:"required"`
	Link   string         `json:"link,omitempty" validate:"omitempty,url"`
	Images []ImageRequest `json:"images,omitempty" validate:"omitempty,dive"`
}

// ImageRequest is a single attachment on a post creation request
type ImageRequest struct {
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption,omitempty"`
}

// CommentRequest represents the request body for adding a comment
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Create handles POST /api/post
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	var req CreatePostRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	images := make([]domain.Image, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, domain.Image{URL: img.URL, Caption: img.Caption})
	}

	post, err := h.postService.Create(r.Context(), userCtx.UserID, services.CreatePostInput{
		Title:  req.Title,
		Text:   req.Text,
		Link:   req.Link,
		Images: images,
	})
	if err != nil {
		h.logger.Error("Failed to create post", zap.String("userID", userCtx.UserID), zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, post)
}

// List handles GET /api/post
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list posts", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, posts)
}

// ListMine handles GET /api/post/me
func (h *PostHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	posts, err := h.postService.ListByUser(r.Context(), userCtx.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, posts)
}

// Get handles GET /api/post/{postID}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.Get(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/post/{postID}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	if err := h.postService.Delete(r.Context(), chi.URLParam(r, "postID"), userCtx.UserID); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"msg": "post removed"})
}

// Like handles PUT /api/post/like/{postID}
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	likes, err := h.postService.Like(r.Context(), chi.URLParam(r, "postID"), userCtx.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, likes)
}

// Unlike handles PUT /api/post/unlike/{postID}
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	likes, err := h.postService.Unlike(r.Context(), chi.URLParam(r, "postID"), userCtx.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, likes)
}

// AddComment handles POST /api/post/comment/{postID}
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	var req CommentRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	comments, err := h.postService.AddComment(r.Context(), chi.URLParam(r, "postID"), userCtx.UserID, req.Text)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, comments)
}

// RemoveComment handles DELETE /api/post/comment/{postID}/{commentID}
func (h *PostHandler) RemoveComment(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	comments, err := h.postService.RemoveComment(
		r.Context(),
		chi.URLParam(r, "postID"),
		chi.URLParam(r, "commentID"),
		userCtx.UserID,
	)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, comments)
}
