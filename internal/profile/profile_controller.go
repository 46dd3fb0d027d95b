package profile

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/refmatch/internal/middleware"
	"github.com/DhavalSuthar-24/refmatch/pkg/responses"
	"github.com/DhavalSuthar-24/refmatch/pkg/validator"
)

// ProfileController handles profile read/update requests.
type ProfileController struct {
	repo ProfileRepository
}

func NewProfileController(repo ProfileRepository) *ProfileController {
	return &ProfileController{repo: repo}
}

// GetProfile godoc
// @Summary Get the current user's profile
// @Description Returns the profile record for the authenticated subject
// @Tags profile
// @Produce json
// @Success 200 {object} ProfileResponse "Profile"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Profile not found"
// @Router /profile [get]
// @Security Bearer
func (pc *ProfileController) GetProfile(c *gin.Context) {
	subject, err := middleware.GetSubjectFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	p, err := pc.repo.GetProfileBySubject(subject)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			responses.NotFound(c, "Profile")
			return
		}
		log.Printf("get profile failed subject=%s err=%v", subject, err)
		responses.InternalServerError(c, "")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", FilterProfileRecord(p))
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Description Applies profile-completion fields; role, access status, seat quota and subscription flags are read-only and silently ignored
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} ProfileResponse "Updated profile"
// @Failure 400 {object} responses.ErrorResponse "Invalid payload"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Profile not found"
// @Router /profile [put]
// @Security Bearer
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	subject, err := middleware.GetSubjectFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	p, err := pc.repo.GetProfileBySubject(subject)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			responses.NotFound(c, "Profile")
			return
		}
		log.Printf("update profile load failed subject=%s err=%v", subject, err)
		responses.InternalServerError(c, "")
		return
	}

	ApplyProfileUpdate(p, &req)

	if err := pc.repo.UpdateProfile(p); err != nil {
		log.Printf("update profile save failed subject=%s err=%v", subject, err)
		responses.InternalServerError(c, "")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", FilterProfileRecord(p))
}

// ApplyProfileUpdate copies the writable fields of req onto p. Read-only
// fields (role, access status, seat quota, subscription flag) are never
// touched, whatever the request carries. Referee-specific fields apply only
// to referee profiles. The profile is marked completed on every call.
func ApplyProfileUpdate(p *UserProfile, req *UpdateProfileRequest) {
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		p.Address = strings.TrimSpace(*req.Address)
	}

	if p.Role == RoleReferee {
		if req.AffiliationNumber != nil && strings.TrimSpace(*req.AffiliationNumber) != "" {
			p.AffiliationNumber = strings.TrimSpace(*req.AffiliationNumber)
		}
		if req.RefereeLevel != nil && strings.TrimSpace(*req.RefereeLevel) != "" {
			p.RefereeLevel = strings.TrimSpace(*req.RefereeLevel)
		}
		if req.YearsExperience != nil {
			p.YearsExperience = req.YearsExperience
		}
		if len(req.Regions) > 0 {
			p.Regions = req.Regions
		}
	}

	if req.IsCoach != nil {
		p.IsCoach = *req.IsCoach
	}
	if req.IsClubRep != nil {
		p.IsClubRep = *req.IsClubRep
	}
	if req.TeamAgeGroup != nil && strings.TrimSpace(*req.TeamAgeGroup) != "" {
		p.TeamAgeGroup = strings.TrimSpace(*req.TeamAgeGroup)
	}

	p.ProfileCompleted = true
}
