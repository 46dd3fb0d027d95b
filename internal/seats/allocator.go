package seats

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
)

var (
	ErrNotClub        = errors.New("caller is not a club profile")
	ErrNoSubscription = errors.New("club subscription is not active")
	ErrQuotaExceeded  = errors.New("seat quota exceeded")
)

// keyedMutex hands out one mutex per key so grants for the same club are
// serialized while different clubs proceed in parallel.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Allocator owns the seat-grant workflow: the quota check, the authorized
// seat registry write, and best-effort activation of an already-registered
// coach with the granted email.
type Allocator struct {
	seats    SeatRepository
	profiles profile.ProfileRepository
	gateway  identity.Gateway
	grants   keyedMutex
}

func NewAllocator(seats SeatRepository, profiles profile.ProfileRepository, gateway identity.Gateway) *Allocator {
	return &Allocator{
		seats:    seats,
		profiles: profiles,
		gateway:  gateway,
	}
}

// GrantSeat authorizes email for the given club. Re-granting an email the
// club already holds a seat for is an idempotent success. The count-then-
// insert sequence runs under a per-club lock so concurrent grants cannot
// jointly exceed the quota.
func (a *Allocator) GrantSeat(ctx context.Context, clubSubjectID, email string) error {
	club, err := a.profiles.GetProfileBySubject(clubSubjectID)
	if err != nil {
		return err
	}
	if club.Role != profile.RoleClub {
		return ErrNotClub
	}
	if !club.SubscriptionActive {
		return ErrNoSubscription
	}

	normalized := NormalizeEmail(email)

	lock := a.grants.get(clubSubjectID)
	lock.Lock()
	defer lock.Unlock()

	exists, err := a.seats.SeatExists(clubSubjectID, normalized)
	if err != nil {
		return fmt.Errorf("seat lookup failed: %w", err)
	}
	if exists {
		return nil
	}

	maxSeats := 0
	if club.MaxSeats != nil {
		maxSeats = *club.MaxSeats
	}
	count, err := a.seats.CountSeats(clubSubjectID)
	if err != nil {
		return fmt.Errorf("seat count failed: %w", err)
	}
	if count >= int64(maxSeats) {
		return ErrQuotaExceeded
	}

	seat := &AuthorizedSeat{
		ClubSubjectID: clubSubjectID,
		Email:         normalized,
		GrantedAt:     time.Now().UTC(),
	}
	if err := a.seats.CreateSeat(seat); err != nil {
		return fmt.Errorf("seat create failed: %w", err)
	}

	// The seat row is the authoritative side effect. Activating a coach who
	// already registered with this email is best-effort; a coach who has not
	// registered yet is the expected case, not an error.
	a.activateCoach(ctx, normalized)
	return nil
}

func (a *Allocator) activateCoach(ctx context.Context, email string) {
	user, err := a.gateway.LookupByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, identity.ErrUserNotFound) {
			log.Printf("seat grant: coach lookup failed email=%s err=%v", email, err)
		}
		return
	}

	p, err := a.profiles.GetProfileBySubject(user.Subject)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			log.Printf("seat grant: coach profile load failed subject=%s err=%v", user.Subject, err)
		}
		return
	}
	if p.Role != profile.RoleCoach || p.AccessStatus == profile.StatusActive {
		return
	}

	p.AccessStatus = profile.StatusActive
	if err := a.profiles.UpdateProfile(p); err != nil {
		log.Printf("seat grant: coach activation failed subject=%s err=%v", p.SubjectID, err)
		return
	}

	claims := map[string]interface{}{
		"role":   string(p.Role),
		"status": string(profile.StatusActive),
	}
	if err := a.gateway.SetClaims(ctx, p.SubjectID, claims); err != nil {
		log.Printf("seat grant: coach claim sync failed subject=%s err=%v", p.SubjectID, err)
	}
}

// ListSeats returns the club's quota usage and granted emails.
func (a *Allocator) ListSeats(clubSubjectID string) (*SeatListResponse, error) {
	club, err := a.profiles.GetProfileBySubject(clubSubjectID)
	if err != nil {
		return nil, err
	}
	if club.Role != profile.RoleClub {
		return nil, ErrNotClub
	}

	rows, err := a.seats.ListSeats(clubSubjectID)
	if err != nil {
		return nil, fmt.Errorf("seat list failed: %w", err)
	}

	emails := make([]string, 0, len(rows))
	for _, row := range rows {
		emails = append(emails, row.Email)
	}

	maxSeats := 0
	if club.MaxSeats != nil {
		maxSeats = *club.MaxSeats
	}

	return &SeatListResponse{
		MaxSeats:  maxSeats,
		UsedSeats: len(emails),
		Emails:    emails,
	}, nil
}
