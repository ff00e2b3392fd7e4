package handlers

import (
	"net/http"
	"strings"

	"devlink-backend/application/services"
	"devlink-backend/domain"
	"devlink-backend/infrastructure/github"
	"devlink-backend/pkg/auth"
	"devlink-backend/pkg/common"
	"devlink-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	profileService *services.ProfileService
	githubClient   *github.Client
	logger         *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(
	profileService *services.ProfileService,
	githubClient *github.Client,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		githubClient:   githubClient,
		logger:         logger,
	}
}

// UpsertProfileRequest represents the request body for creating or updating
// a profile. Pointer fields distinguish "absent" from "set to empty";
// absent fields leave the stored value untouched.
type UpsertProfileRequest struct {
	Company        *string `json:"company,omitempty"`
	Website        *string `json:"website,omitempty"`
	Location       *string `json:"location,omitempty"`
	Status         *string `json:"status" validate:"required"`
	Skills         *string `json:"skills" validate:"required"`
	Bio            *string `json:"bio,omitempty"`
	GithubUsername *string `json:"githubUsername,omitempty"`
	Youtube        *string `json:"youtube,omitempty"`
	Twitter        *string `json:"twitter,omitempty"`
	Facebook       *string `json:"facebook,omitempty"`
	Instagram      *string `json:"instagram,omitempty"`
	Linkedin       *string `json:"linkedin,omitempty"`
}

// toUpdate converts the request into a domain partial update. Skills arrive
// as a comma-separated string and are stored trimmed.
func (req UpsertProfileRequest) toUpdate() domain.ProfileUpdate {
	update := domain.ProfileUpdate{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Status:         req.Status,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
	}

	if req.Skills != nil {
		skills := []string{}
		for _, skill := range strings.Split(*req.Skills, ",") {
			if trimmed := strings.TrimSpace(skill); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
		update.Skills = skills
	}

	social := map[string]string{}
	for platform, link := range map[string]*string{
		domain.SocialYoutube:   req.Youtube,
		domain.SocialTwitter:   req.Twitter,
		domain.SocialFacebook:  req.Facebook,
		domain.SocialInstagram: req.Instagram,
		domain.SocialLinkedin:  req.Linkedin,
	} {
		if link != nil {
			social[platform] = *link
		}
	}
	if len(social) > 0 {
		update.Social = social
	}

	return update
}

// ExperienceRequest represents the request body for adding experience
type ExperienceRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location,omitempty"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// EducationRequest represents the request body for adding education
type EducationRequest struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"required"`
	From         string `json:"from" validate:"required"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

// Me handles GET /api/profile/me
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	profile, err := h.profileService.GetOwn(r.Context(), userCtx.UserID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, profile)
}

// Upsert handles POST /api/profile
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	var req UpsertProfileRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), userCtx.UserID, req.toUpdate())
	if err != nil {
		h.logger.Error("Failed to upsert profile", zap.String("userID", userCtx.UserID), zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, profile)
}

// List handles GET /api/profile
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list profiles", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, profiles)
}

// GetByUser handles GET /api/profile/user/{userID}
func (h *ProfileHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		common.RespondError(w, http.StatusBadRequest, "user id is required")
		return
	}

	profile, err := h.profileService.GetByUser(r.Context(), userID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, profile)
}

// Delete handles DELETE /api/profile. Removes the profile, the owning user
// and the user's posts.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	if err := h.profileService.DeleteCascade(r.Context(), userCtx.UserID); err != nil {
		h.logger.Error("Failed to delete account", zap.String("userID", userCtx.UserID), zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"msg": "user removed"})
}

// AddExperience handles POST /api/profile/experience
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	var req ExperienceRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	profile, err := h.profileService.AddExperience(r.Context(), userCtx.UserID, domain.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, profile)
}

// RemoveExperience handles DELETE /api/profile/experience/{expID}
func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	profile, err := h.profileService.RemoveExperience(r.Context(), userCtx.UserID, chi.URLParam(r, "expID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, profile)
}

// AddEducation handles POST /api/profile/education
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	var req EducationRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	profile, err := h.profileService.AddEducation(r.Context(), userCtx.UserID, domain.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, profile)
}

// RemoveEducation handles DELETE /api/profile/education/{eduID}
func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "no token provided")
		return
	}

	profile, err := h.profileService.RemoveEducation(r.Context(), userCtx.UserID, chi.URLParam(r, "eduID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, profile)
}

// GithubRepos handles GET /api/profile/github/{username}
func (h *ProfileHandler) GithubRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		common.RespondError(w, http.StatusBadRequest, "username is required")
		return
	}

	repos, err := h.githubClient.ListRepositories(r.Context(), username)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, repos)
}
