package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/foliohub/folio-api/internal/api/shared"
	"github.com/foliohub/folio-api/internal/platform/logger"
	"github.com/foliohub/folio-api/internal/service"
)

// ProfileHandler handles profile-related HTTP requests.
type ProfileHandler struct {
	profileService service.ProfileService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, log *slog.Logger) *ProfileHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ProfileHandler{
		profileService: profileService,
		validator:      validator.New(),
		logger:         log.With(slog.String("component", "profile_handler")),
	}
}

// CreateProfile handles POST /api/profiles.
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.profileService.CreateProfile(r.Context(), userID, service.ProfileInput{
		Name:        req.Name,
		Bio:         req.Bio,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, profile)
}

// GetProfile handles GET /api/profiles/{id}.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), profileID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// GetOwnProfile handles GET /api/profiles/me.
func (h *ProfileHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileService.GetOwnProfile(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/profiles/me.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	profile, err := h.profileService.UpdateOwnProfile(r.Context(), userID, service.ProfileUpdate{
		Name:        req.Name,
		Bio:         req.Bio,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// ListProfiles handles GET /api/profiles.
func (h *ProfileHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.ListProfiles(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list profiles")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profiles)
}

// AddEducation handles POST /api/profiles/me/education.
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddEducationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid start_date")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid end_date")
		return
	}

	edu, err := h.profileService.AddEducation(r.Context(), userID, service.EducationInput{
		Institution: req.Institution,
		Degree:      req.Degree,
		Field:       req.Field,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, edu)
}

// RemoveEducation handles DELETE /api/profiles/me/education/{id}.
func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	eduID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.profileService.RemoveEducation(r.Context(), userID, eduID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Debug("education entry removed",
		slog.String("user_id", userID.String()),
		slog.String("education_id", eduID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// AddWorkExperience handles POST /api/profiles/me/work-experience.
func (h *ProfileHandler) AddWorkExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddWorkExperienceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid start_date")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid end_date")
		return
	}

	work, err := h.profileService.AddWorkExperience(r.Context(), userID, service.WorkExperienceInput{
		Company:     req.Company,
		Position:    req.Position,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, work)
}

// RemoveWorkExperience handles DELETE /api/profiles/me/work-experience/{id}.
func (h *ProfileHandler) RemoveWorkExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	workID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.profileService.RemoveWorkExperience(r.Context(), userID, workID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddSkill handles POST /api/profiles/me/skills.
func (h *ProfileHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddSkillRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	skill, err := h.profileService.AddSkill(r.Context(), userID, service.SkillInput{
		Name:  req.Name,
		Level: req.Level,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, skill)
}

// RemoveSkill handles DELETE /api/profiles/me/skills/{id}.
func (h *ProfileHandler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	skillID, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.profileService.RemoveSkill(r.Context(), userID, skillID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
