package seats

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/refmatch/internal/middleware"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
	"github.com/DhavalSuthar-24/refmatch/pkg/responses"
	"github.com/DhavalSuthar-24/refmatch/pkg/validator"
)

// SeatController handles seat-grant HTTP requests for club accounts.
type SeatController struct {
	allocator *Allocator
}

func NewSeatController(allocator *Allocator) *SeatController {
	return &SeatController{allocator: allocator}
}

// GrantSeat godoc
// @Summary Grant a coach seat
// @Description Authorizes a coach email against the club's paid seat quota; repeating a grant is a no-op success
// @Tags seats
// @Accept json
// @Produce json
// @Param request body GrantRequest true "Coach email"
// @Success 200 {object} responses.SuccessResponse "Seat granted"
// @Failure 400 {object} responses.ErrorResponse "Invalid payload"
// @Failure 403 {object} responses.ErrorResponse "Not a club or subscription inactive"
// @Failure 409 {object} responses.ErrorResponse "Quota exceeded"
// @Router /seats/grant [post]
// @Security Bearer
func (sc *SeatController) GrantSeat(c *gin.Context) {
	subject, err := middleware.GetSubjectFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	if err := sc.allocator.GrantSeat(c.Request.Context(), subject, req.Email); err != nil {
		switch {
		case errors.Is(err, profile.ErrProfileNotFound), errors.Is(err, ErrNotClub):
			responses.Forbidden(c, "Only registered clubs can grant seats")
		case errors.Is(err, ErrNoSubscription):
			responses.Forbidden(c, "An active subscription is required to grant seats")
		case errors.Is(err, ErrQuotaExceeded):
			responses.Conflict(c, "Seat quota exceeded for the current tier")
		default:
			log.Printf("grant seat failed club=%s err=%v", subject, err)
			responses.InternalServerError(c, "")
		}
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Seat granted successfully", gin.H{
		"email": NormalizeEmail(req.Email),
		"key":   SeatKey(req.Email),
	})
}

// ListSeats godoc
// @Summary List granted seats
// @Description Returns the club's seat quota, usage and granted coach emails
// @Tags seats
// @Produce json
// @Success 200 {object} SeatListResponse "Seat usage"
// @Failure 403 {object} responses.ErrorResponse "Not a club"
// @Router /seats [get]
// @Security Bearer
func (sc *SeatController) ListSeats(c *gin.Context) {
	subject, err := middleware.GetSubjectFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	list, err := sc.allocator.ListSeats(subject)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrProfileNotFound), errors.Is(err, ErrNotClub):
			responses.Forbidden(c, "Only registered clubs have seats")
		default:
			log.Printf("list seats failed club=%s err=%v", subject, err)
			responses.InternalServerError(c, "")
		}
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Seats retrieved successfully", list)
}
