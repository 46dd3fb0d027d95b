package profile

import (
	"strings"
	"time"

	"github.com/DhavalSuthar-24/refmatch/internal/models"
)

// Role is the primary role of a user, set once at registration.
type Role string

const (
	RoleReferee Role = "referee"
	RoleCoach   Role = "coach"
	RoleClub    Role = "club"
)

// ParseRole maps a client-supplied role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "referee":
		return RoleReferee, true
	case "coach":
		return RoleCoach, true
	case "club":
		return RoleClub, true
	default:
		return "", false
	}
}

// AccessStatus mirrors the provider-side custom claim gating paid features.
type AccessStatus string

const (
	StatusActive         AccessStatus = "active"
	StatusPaymentPending AccessStatus = "payment_pending"
)

// UserProfile is one record per identity-provider subject.
type UserProfile struct {
	SubjectID          string       `gorm:"primaryKey;size:128" json:"subject_id"`
	Email              string       `gorm:"size:255;index" json:"email"`
	Name               string       `json:"name"`
	Address            string       `json:"address"`
	Role               Role         `gorm:"size:16;not null;index" json:"role"`
	AccessStatus       AccessStatus `gorm:"size:32;not null" json:"access_status"`
	SubscriptionActive bool         `json:"subscription_active"`

	// MaxSeats is non-nil only for club profiles: 0 until a tier is
	// purchased, then the quota of the highest tier paid so far.
	MaxSeats *int `json:"max_seats,omitempty"`

	ProfileCompleted bool `json:"profile_completed"`

	// Referee-specific fields.
	AffiliationNumber string             `json:"affiliation_number,omitempty"`
	RefereeLevel      string             `json:"referee_level,omitempty"`
	YearsExperience   *int               `json:"years_experience,omitempty"`
	Regions           models.StringSlice `gorm:"type:jsonb" json:"regions,omitempty"`

	// Secondary role flags.
	IsCoach      bool   `json:"is_coach"`
	TeamAgeGroup string `json:"team_age_group,omitempty"`
	IsClubRep    bool   `json:"is_club_rep"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// UpdateProfileRequest carries the profile-completion fields. Clients often
// echo back read-only fields (role, access_status, max_seats,
// subscription_active); those are bound here and deliberately dropped.
type UpdateProfileRequest struct {
	Name              *string  `json:"name,omitempty" example:"Jane Smith"`
	Address           *string  `json:"address,omitempty" example:"12 High Street"`
	AffiliationNumber *string  `json:"affiliation_number,omitempty" example:"FA-29381"`
	RefereeLevel      *string  `json:"referee_level,omitempty" example:"Level 6"`
	YearsExperience   *int     `json:"years_experience,omitempty" example:"4"`
	Regions           []string `json:"regions,omitempty"`
	IsCoach           *bool    `json:"is_coach,omitempty"`
	TeamAgeGroup      *string  `json:"team_age_group,omitempty" example:"U14 Boys"`
	IsClubRep         *bool    `json:"is_club_rep,omitempty"`

	Role               *string `json:"role,omitempty"`
	AccessStatus       *string `json:"access_status,omitempty"`
	MaxSeats           *int    `json:"max_seats,omitempty"`
	SubscriptionActive *bool   `json:"subscription_active,omitempty"`
}

// ProfileResponse is the client-facing view of a profile.
type ProfileResponse struct {
	SubjectID          string    `json:"subject_id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Address            string    `json:"address"`
	Role               string    `json:"role"`
	AccessStatus       string    `json:"access_status"`
	SubscriptionActive bool      `json:"subscription_active"`
	MaxSeats           *int      `json:"max_seats,omitempty"`
	ProfileCompleted   bool      `json:"profile_completed"`
	AffiliationNumber  string    `json:"affiliation_number,omitempty"`
	RefereeLevel       string    `json:"referee_level,omitempty"`
	YearsExperience    *int      `json:"years_experience,omitempty"`
	Regions            []string  `json:"regions,omitempty"`
	IsCoach            bool      `json:"is_coach"`
	TeamAgeGroup       string    `json:"team_age_group,omitempty"`
	IsClubRep          bool      `json:"is_club_rep"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func FilterProfileRecord(p *UserProfile) ProfileResponse {
	return ProfileResponse{
		SubjectID:          p.SubjectID,
		Email:              p.Email,
		Name:               p.Name,
		Address:            p.Address,
		Role:               string(p.Role),
		AccessStatus:       string(p.AccessStatus),
		SubscriptionActive: p.SubscriptionActive,
		MaxSeats:           p.MaxSeats,
		ProfileCompleted:   p.ProfileCompleted,
		AffiliationNumber:  p.AffiliationNumber,
		RefereeLevel:       p.RefereeLevel,
		YearsExperience:    p.YearsExperience,
		Regions:            p.Regions,
		IsCoach:            p.IsCoach,
		TeamAgeGroup:       p.TeamAgeGroup,
		IsClubRep:          p.IsClubRep,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
