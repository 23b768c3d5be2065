package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/service"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

// UpdateProfileRequest is the full profile document; PUT replaces the stored
// profile, absent fields reset to their zero values.
type UpdateProfileRequest struct {
	Name          string  `json:"name" binding:"required"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	BodyFat       float64 `json:"bodyFat"`
	Goal          string  `json:"goal"`
	ActivityLevel string  `json:"activityLevel"`
	ProfileImage  string  `json:"profileImage"`
	Notifications bool    `json:"notifications"`
	Units         string  `json:"units"`
}

// ProfileResponse adds the metrics the profile screen derives from the stored
// fields so clients do not reimplement the formulas.
type ProfileResponse struct {
	domain.Profile
	BMI             string `json:"bmi"`
	DailyCalories   int    `json:"dailyCalories"`
	FormattedHeight string `json:"formattedHeight"`
	FormattedWeight string `json:"formattedWeight"`
}

// AvatarUploadRequest carries the content type the client will PUT with.
type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

func newProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		Profile:         *p,
		BMI:             fmt.Sprintf("%.1f", p.BMI()),
		DailyCalories:   p.DailyCalories(),
		FormattedHeight: p.FormattedHeight(),
		FormattedWeight: p.FormattedWeight(),
	}
}

// --- Handler Methods ---

// GetProfile returns the authenticated user's profile with derived metrics,
// 404 when no profile has been saved yet.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), uid)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile.")
		return
	}
	if profile == nil {
		abortWithError(c, http.StatusNotFound, "Profile not found.")
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(profile))
}

// UpdateProfile replaces the stored profile document.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	profile := &domain.Profile{
		Name:          req.Name,
		Age:           req.Age,
		Gender:        req.Gender,
		Height:        req.Height,
		Weight:        req.Weight,
		BodyFat:       req.BodyFat,
		Goal:          req.Goal,
		ActivityLevel: req.ActivityLevel,
		ProfileImage:  req.ProfileImage,
		Notifications: req.Notifications,
		Units:         req.Units,
	}
	if err := h.profileService.UpdateProfile(c.Request.Context(), uid, profile); err != nil {
		if errors.Is(err, service.ErrProfileValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// AvatarUploadURL returns presigned URLs for uploading a profile image.
func (h *ProfileHandler) AvatarUploadURL(c *gin.Context) {
	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	uid, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	upload, err := h.profileService.AvatarUploadURL(c.Request.Context(), uid, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		return
	}

	c.JSON(http.StatusOK, upload)
}
