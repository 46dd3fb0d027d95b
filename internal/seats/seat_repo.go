package seats

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeatRepository defines the persistence operations for the authorized-seat
// registry.
type SeatRepository interface {
	CountSeats(clubSubjectID string) (int64, error)
	SeatExists(clubSubjectID, email string) (bool, error)
	// CreateSeat inserts a seat row; a concurrent duplicate insert is a
	// no-op thanks to the unique (club, email) index.
	CreateSeat(seat *AuthorizedSeat) error
	ListSeats(clubSubjectID string) ([]AuthorizedSeat, error)
}

type seatRepository struct {
	db *gorm.DB
}

func NewSeatRepository(db *gorm.DB) SeatRepository {
	return &seatRepository{db: db}
}

func (r *seatRepository) CountSeats(clubSubjectID string) (int64, error) {
	var count int64
	err := r.db.Model(&AuthorizedSeat{}).
		Where("club_subject_id = ?", clubSubjectID).
		Count(&count).Error
	return count, err
}

func (r *seatRepository) SeatExists(clubSubjectID, email string) (bool, error) {
	var count int64
	err := r.db.Model(&AuthorizedSeat{}).
		Where("club_subject_id = ? AND email = ?", clubSubjectID, email).
		Count(&count).Error
	return count > 0, err
}

func (r *seatRepository) CreateSeat(seat *AuthorizedSeat) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(seat).Error
}

func (r *seatRepository) ListSeats(clubSubjectID string) ([]AuthorizedSeat, error) {
	var rows []AuthorizedSeat
	err := r.db.Where("club_subject_id = ?", clubSubjectID).
		Order("granted_at ASC").
		Find(&rows).Error
	return rows, err
}
