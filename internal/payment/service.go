package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
)

// Service applies verified payment-completion events to profiles and
// provider claims.
type Service struct {
	profiles profile.ProfileRepository
	gateway  identity.Gateway
	prices   PriceTable
}

func NewService(profiles profile.ProfileRepository, gateway identity.Gateway, prices PriceTable) *Service {
	return &Service{
		profiles: profiles,
		gateway:  gateway,
		prices:   prices,
	}
}

// HandlePaymentCompleted applies one verified checkout completion. Events for
// unknown customers or payment-ineligible roles are acknowledged and dropped.
// Replays are no-ops: a club's quota only ever moves up to the highest tier
// paid so far, and an already-active coach stays active.
func (s *Service) HandlePaymentCompleted(ctx context.Context, customerEmail, priceID string) error {
	if customerEmail == "" {
		log.Printf("payment: completed event without customer email dropped")
		return nil
	}

	user, err := s.gateway.LookupByEmail(ctx, customerEmail)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			log.Printf("payment: no identity for customer email=%s, event dropped", customerEmail)
			return nil
		}
		return fmt.Errorf("identity lookup failed: %w", err)
	}

	p, err := s.profiles.GetProfileBySubject(user.Subject)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			log.Printf("payment: no profile for subject=%s, event dropped", user.Subject)
			return nil
		}
		return fmt.Errorf("profile load failed: %w", err)
	}

	switch p.Role {
	case profile.RoleCoach:
		if p.SubscriptionActive && p.AccessStatus == profile.StatusActive {
			return nil
		}
		p.SubscriptionActive = true
		p.AccessStatus = profile.StatusActive

	case profile.RoleClub:
		quota := s.prices.QuotaForPrice(priceID)
		current := 0
		if p.MaxSeats != nil {
			current = *p.MaxSeats
		}
		if p.SubscriptionActive && p.AccessStatus == profile.StatusActive && quota <= current {
			return nil
		}
		// Quota never regresses on a stale or replayed event.
		if quota < current {
			quota = current
		}
		p.MaxSeats = &quota
		p.SubscriptionActive = true
		p.AccessStatus = profile.StatusActive

	default:
		log.Printf("payment: role %q is not payment-eligible, event dropped subject=%s", p.Role, p.SubjectID)
		return nil
	}

	if err := s.profiles.UpdateProfile(p); err != nil {
		return fmt.Errorf("profile update failed: %w", err)
	}

	claims := map[string]interface{}{
		"role":   string(p.Role),
		"status": string(profile.StatusActive),
	}
	if err := s.gateway.SetClaims(ctx, p.SubjectID, claims); err != nil {
		// The profile is persisted; claim sync can be re-run out of band.
		return fmt.Errorf("claim sync failed: %w", err)
	}
	return nil
}
