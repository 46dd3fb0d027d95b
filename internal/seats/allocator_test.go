package seats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
)

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]profile.UserProfile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]profile.UserProfile)}
}

func (f *fakeProfiles) put(p profile.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.SubjectID] = p
}

func (f *fakeProfiles) CreateProfile(p *profile.UserProfile) error {
	f.put(*p)
	return nil
}

func (f *fakeProfiles) GetProfileBySubject(subjectID string) (*profile.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[subjectID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	copied := p
	return &copied, nil
}

func (f *fakeProfiles) UpdateProfile(p *profile.UserProfile) error {
	f.put(*p)
	return nil
}

func (f *fakeProfiles) SubjectByEmail(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if strings.EqualFold(p.Email, email) {
			return p.SubjectID, nil
		}
	}
	return "", nil
}

// fakeSeats mimics the unique (club, email) index: a duplicate insert is a
// silent no-op, the way ON CONFLICT DO NOTHING behaves.
type fakeSeats struct {
	mu   sync.Mutex
	rows map[string][]AuthorizedSeat
}

func newFakeSeats() *fakeSeats {
	return &fakeSeats{rows: make(map[string][]AuthorizedSeat)}
}

func (f *fakeSeats) CountSeats(clubSubjectID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows[clubSubjectID])), nil
}

func (f *fakeSeats) SeatExists(clubSubjectID, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows[clubSubjectID] {
		if row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSeats) CreateSeat(seat *AuthorizedSeat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows[seat.ClubSubjectID] {
		if row.Email == seat.Email {
			return nil
		}
	}
	f.rows[seat.ClubSubjectID] = append(f.rows[seat.ClubSubjectID], *seat)
	return nil
}

func (f *fakeSeats) ListSeats(clubSubjectID string) ([]AuthorizedSeat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]AuthorizedSeat(nil), f.rows[clubSubjectID]...), nil
}

func clubProfile(subjectID string, maxSeats int, active bool) profile.UserProfile {
	status := profile.StatusPaymentPending
	if active {
		status = profile.StatusActive
	}
	return profile.UserProfile{
		SubjectID:          subjectID,
		Email:              subjectID + "@example.com",
		Role:               profile.RoleClub,
		AccessStatus:       status,
		MaxSeats:           &maxSeats,
		SubscriptionActive: active,
	}
}

func newAllocatorForTest(profiles *fakeProfiles, seatsRepo SeatRepository) (*Allocator, *identity.LocalGateway) {
	gateway := identity.NewLocalGateway("test-secret", profiles)
	return NewAllocator(seatsRepo, profiles, gateway), gateway
}

func TestGrantSeatIdempotent(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.put(clubProfile("club-1", 4, true))
	seatsRepo := newFakeSeats()
	allocator, _ := newAllocatorForTest(profiles, seatsRepo)

	if err := allocator.GrantSeat(context.Background(), "club-1", "Coach@Example.com "); err != nil {
		t.Fatalf("first grant failed: %v", err)
	}
	if err := allocator.GrantSeat(context.Background(), "club-1", "coach@example.com"); err != nil {
		t.Fatalf("re-grant should be idempotent, got %v", err)
	}

	count, _ := seatsRepo.CountSeats("club-1")
	if count != 1 {
		t.Fatalf("expected 1 seat row, got %d", count)
	}

	rows, _ := seatsRepo.ListSeats("club-1")
	if rows[0].Email != "coach@example.com" {
		t.Fatalf("expected normalized email, got %q", rows[0].Email)
	}
}

func TestGrantSeatQuotaEnforced(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.put(clubProfile("club-1", 4, true))
	allocator, _ := newAllocatorForTest(profiles, newFakeSeats())

	for i := 0; i < 4; i++ {
		email := fmt.Sprintf("coach%d@example.com", i)
		if err := allocator.GrantSeat(context.Background(), "club-1", email); err != nil {
			t.Fatalf("grant %d failed: %v", i, err)
		}
	}

	err := allocator.GrantSeat(context.Background(), "club-1", "coach5@example.com")
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded on 5th grant, got %v", err)
	}

	// A repeat of an already-granted email still succeeds at the limit.
	if err := allocator.GrantSeat(context.Background(), "club-1", "coach0@example.com"); err != nil {
		t.Fatalf("re-grant at quota should succeed, got %v", err)
	}
}

func TestGrantSeatRequiresClubWithSubscription(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.put(profile.UserProfile{
		SubjectID:    "ref-1",
		Role:         profile.RoleReferee,
		AccessStatus: profile.StatusActive,
	})
	profiles.put(clubProfile("club-unpaid", 0, false))
	allocator, _ := newAllocatorForTest(profiles, newFakeSeats())

	if err := allocator.GrantSeat(context.Background(), "ref-1", "coach@example.com"); !errors.Is(err, ErrNotClub) {
		t.Fatalf("expected ErrNotClub, got %v", err)
	}
	if err := allocator.GrantSeat(context.Background(), "club-unpaid", "coach@example.com"); !errors.Is(err, ErrNoSubscription) {
		t.Fatalf("expected ErrNoSubscription, got %v", err)
	}
	if err := allocator.GrantSeat(context.Background(), "ghost", "coach@example.com"); !errors.Is(err, profile.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestGrantSeatConcurrentNeverExceedsQuota(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.put(clubProfile("club-1", 4, true))
	seatsRepo := newFakeSeats()
	allocator, _ := newAllocatorForTest(profiles, seatsRepo)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("coach%d@example.com", i)
			errs[i] = allocator.GrantSeat(context.Background(), "club-1", email)
		}(i)
	}
	wg.Wait()

	granted := 0
	for i, err := range errs {
		switch {
		case err == nil:
			granted++
		case errors.Is(err, ErrQuotaExceeded):
		default:
			t.Fatalf("grant %d: unexpected error %v", i, err)
		}
	}
	if granted != 4 {
		t.Fatalf("expected exactly 4 successful grants, got %d", granted)
	}
	count, _ := seatsRepo.CountSeats("club-1")
	if count != 4 {
		t.Fatalf("expected 4 seat rows, got %d", count)
	}
}

func TestGrantSeatActivatesRegisteredCoach(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.put(clubProfile("club-1", 4, true))
	profiles.put(profile.UserProfile{
		SubjectID:    "coach-1",
		Email:        "coach@example.com",
		Role:         profile.RoleCoach,
		AccessStatus: profile.StatusPaymentPending,
	})
	allocator, gateway := newAllocatorForTest(profiles, newFakeSeats())

	if err := allocator.GrantSeat(context.Background(), "club-1", "coach@example.com"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	coach, err := profiles.GetProfileBySubject("coach-1")
	if err != nil {
		t.Fatalf("coach profile missing: %v", err)
	}
	if coach.AccessStatus != profile.StatusActive {
		t.Fatalf("expected coach activated, got %q", coach.AccessStatus)
	}

	claims := gateway.Claims("coach-1")
	if claims == nil || claims["status"] != string(profile.StatusActive) {
		t.Fatalf("expected active status claim, got %v", claims)
	}
}

func TestGrantSeatDoesNotActivateNonCoach(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.put(clubProfile("club-1", 4, true))
	profiles.put(profile.UserProfile{
		SubjectID:    "ref-1",
		Email:        "ref@example.com",
		Role:         profile.RoleReferee,
		AccessStatus: profile.StatusActive,
	})
	allocator, _ := newAllocatorForTest(profiles, newFakeSeats())

	if err := allocator.GrantSeat(context.Background(), "club-1", "ref@example.com"); err != nil {
		t.Fatalf("grant failed: %v", err)
	}

	ref, _ := profiles.GetProfileBySubject("ref-1")
	if ref.Role != profile.RoleReferee || ref.AccessStatus != profile.StatusActive {
		t.Fatalf("referee profile should be untouched: %+v", ref)
	}
}

type failingLookupGateway struct {
	identity.Gateway
}

func (g *failingLookupGateway) LookupByEmail(ctx context.Context, email string) (*identity.User, error) {
	return nil, identity.ErrUnavailable
}

func TestGrantSeatSucceedsWhenActivationFails(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.put(clubProfile("club-1", 4, true))
	seatsRepo := newFakeSeats()
	gateway := identity.NewLocalGateway("test-secret", profiles)
	allocator := NewAllocator(seatsRepo, profiles, &failingLookupGateway{Gateway: gateway})

	if err := allocator.GrantSeat(context.Background(), "club-1", "coach@example.com"); err != nil {
		t.Fatalf("grant should survive an activation failure, got %v", err)
	}
	count, _ := seatsRepo.CountSeats("club-1")
	if count != 1 {
		t.Fatalf("expected the seat row to land, got %d rows", count)
	}
}

func TestListSeats(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.put(clubProfile("club-1", 9, true))
	seatsRepo := newFakeSeats()
	allocator, _ := newAllocatorForTest(profiles, seatsRepo)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := allocator.GrantSeat(context.Background(), "club-1", email); err != nil {
			t.Fatalf("grant %s failed: %v", email, err)
		}
	}

	list, err := allocator.ListSeats("club-1")
	if err != nil {
		t.Fatalf("ListSeats failed: %v", err)
	}
	if list.MaxSeats != 9 || list.UsedSeats != 2 || len(list.Emails) != 2 {
		t.Fatalf("unexpected usage: %+v", list)
	}

	profiles.put(profile.UserProfile{SubjectID: "coach-1", Role: profile.RoleCoach})
	if _, err := allocator.ListSeats("coach-1"); !errors.Is(err, ErrNotClub) {
		t.Fatalf("expected ErrNotClub, got %v", err)
	}
}

func TestSeatKeyEscaping(t *testing.T) {
	got := SeatKey("first.last@example.com")
	want := "first_last_example_com"
	if got != want {
		t.Fatalf("SeatKey: want %q, got %q", want, got)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Coach@Example.COM "); got != "coach@example.com" {
		t.Fatalf("NormalizeEmail: got %q", got)
	}
}
