package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
	"github.com/DhavalSuthar-24/refmatch/pkg/responses"
	"github.com/DhavalSuthar-24/refmatch/pkg/validator"
)

// AuthController handles the registration workflow: a verified identity
// becomes a role-tagged profile with an initial access status.
type AuthController struct {
	profiles profile.ProfileRepository
	gateway  identity.Gateway
}

func NewAuthController(profiles profile.ProfileRepository, gateway identity.Gateway) *AuthController {
	return &AuthController{
		profiles: profiles,
		gateway:  gateway,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Verifies the identity token, creates the role-tagged profile and mirrors role/status into provider custom claims
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 200 {object} RegisterResponse "User registered"
// @Failure 400 {object} responses.ErrorResponse "Invalid role or already registered"
// @Failure 401 {object} responses.ErrorResponse "Invalid identity token"
// @Failure 500 {object} responses.ErrorResponse "Internal error"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	ctx := c.Request.Context()

	token, err := ac.gateway.Verify(ctx, req.IDToken)
	if err != nil {
		if errors.Is(err, identity.ErrUnavailable) {
			log.Printf("register: identity provider unavailable: %v", err)
			responses.BadGateway(c, "")
			return
		}
		responses.Unauthorized(c, "Invalid identity token")
		return
	}

	role, ok := profile.ParseRole(req.Role)
	if !ok {
		responses.BadRequest(c, "Invalid role")
		return
	}

	if _, err := ac.profiles.GetProfileBySubject(token.Subject); err == nil {
		responses.BadRequest(c, "User already exists")
		return
	} else if !errors.Is(err, profile.ErrProfileNotFound) {
		log.Printf("register: existing-profile check failed subject=%s err=%v", token.Subject, err)
		responses.InternalServerError(c, "")
		return
	}

	status := profile.StatusPaymentPending
	if role == profile.RoleReferee {
		status = profile.StatusActive
	}

	var maxSeats *int
	if role == profile.RoleClub {
		zero := 0
		maxSeats = &zero
	}

	p := &profile.UserProfile{
		SubjectID:    token.Subject,
		Email:        token.Email,
		Name:         req.Name,
		Address:      req.Address,
		Role:         role,
		AccessStatus: status,
		MaxSeats:     maxSeats,
	}

	// The profile write must land before the claim write: claims are the
	// public signal that registration finished, and a client that sees the
	// claims must be able to read the profile.
	if err := ac.profiles.CreateProfile(p); err != nil {
		log.Printf("register: profile create failed subject=%s err=%v", token.Subject, err)
		responses.InternalServerError(c, "")
		return
	}

	claims := map[string]interface{}{
		"role":   string(role),
		"status": string(status),
	}
	if err := ac.gateway.SetClaims(ctx, token.Subject, claims); err != nil {
		// The profile is persisted; a stale claim set is recoverable by
		// re-running claim sync, so registration still succeeds.
		log.Printf("register: claim sync failed subject=%s err=%v", token.Subject, err)
	}

	responses.SendSuccess(c, http.StatusOK, "User registered successfully", RegisterResponse{
		SubjectID:    p.SubjectID,
		Role:         string(p.Role),
		AccessStatus: string(p.AccessStatus),
		MaxSeats:     p.MaxSeats,
	})
}
