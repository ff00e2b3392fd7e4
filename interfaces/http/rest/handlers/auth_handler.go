package handlers

import (
	"net/http"

	"devlink-backend/application/services"
	"devlink-backend/pkg/auth"
	"devlink-backend/pkg/common"
	"devlink-backend/pkg/utils"

	"go.uber.org/zap"
)

// AuthHandler handles registration, login and identity lookup requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	Token string `json:"token"`
}

// Register handles POST /api/users
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	token, err := h.authService.Register(r.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Login handles POST /api/auth
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Me handles GET /api/auth
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), userCtx.UserID)
	if err != nil {
		h.logger.Error("Failed to load current user", zap.String("userID", userCtx.UserID), zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, user)
}
