package seats

import (
	"strings"
	"time"
)

// AuthorizedSeat is one granted seat: a club has authorized one coach email.
// Rows are written once and never mutated.
type AuthorizedSeat struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClubSubjectID string    `gorm:"size:128;not null;uniqueIndex:idx_seats_club_email" json:"club_subject_id"`
	Email         string    `gorm:"size:255;not null;uniqueIndex:idx_seats_club_email" json:"email"`
	GrantedAt     time.Time `json:"granted_at"`
}

func (AuthorizedSeat) TableName() string {
	return "authorized_seats"
}

// NormalizeEmail lowercases and trims a seat email before storage/comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SeatKey is the registry identifier for a normalized email, with '.' and '@'
// escaped for keyspace compatibility.
func SeatKey(email string) string {
	key := NormalizeEmail(email)
	key = strings.ReplaceAll(key, ".", "_")
	key = strings.ReplaceAll(key, "@", "_")
	return key
}

// GrantRequest is the payload for POST /seats/grant.
type GrantRequest struct {
	Email string `json:"email" binding:"required,email" example:"coach@example.com"`
}

// SeatListResponse reports a club's quota usage and granted emails.
type SeatListResponse struct {
	MaxSeats  int      `json:"max_seats"`
	UsedSeats int      `json:"used_seats"`
	Emails    []string `json:"emails"`
}
