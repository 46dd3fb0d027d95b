package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the persistence operations for user profiles.
type ProfileRepository interface {
	CreateProfile(p *UserProfile) error
	GetProfileBySubject(subjectID string) (*UserProfile, error)
	UpdateProfile(p *UserProfile) error

	// SubjectByEmail resolves a registered email to its subject id,
	// returning the empty string when no profile carries that email.
	// Satisfies identity.SubjectResolver for the local gateway.
	SubjectByEmail(ctx context.Context, email string) (string, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateProfile(p *UserProfile) error {
	return r.db.Create(p).Error
}

func (r *profileRepository) GetProfileBySubject(subjectID string) (*UserProfile, error) {
	var p UserProfile
	if err := r.db.Where("subject_id = ?", subjectID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) UpdateProfile(p *UserProfile) error {
	return r.db.Save(p).Error
}

func (r *profileRepository) SubjectByEmail(ctx context.Context, email string) (string, error) {
	var p UserProfile
	err := r.db.WithContext(ctx).Select("subject_id").Where("email = ?", email).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return p.SubjectID, nil
}
