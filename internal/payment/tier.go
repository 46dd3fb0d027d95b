package payment

import (
	"strings"

	"github.com/DhavalSuthar-24/refmatch/internal/profile"
)

// UnlimitedSeats is the sentinel quota for the "10+" tier.
const UnlimitedSeats = 999

// PriceTable maps purchasable tiers to Stripe price ids and completed
// purchases back to club seat quotas.
type PriceTable struct {
	Coach      string
	Club1To4   string
	Club5To9   string
	Club10Plus string
}

// PriceForTier resolves a (role, tier) pair to a price id. Coaches have a
// single activation tier; clubs pick a seat band.
func (t PriceTable) PriceForTier(role profile.Role, tier string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(tier))
	var priceID string
	switch {
	case role == profile.RoleCoach && normalized == "coach":
		priceID = t.Coach
	case role == profile.RoleClub && normalized == "1-4":
		priceID = t.Club1To4
	case role == profile.RoleClub && normalized == "5-9":
		priceID = t.Club5To9
	case role == profile.RoleClub && normalized == "10+":
		priceID = t.Club10Plus
	}
	return priceID, priceID != ""
}

// QuotaForPrice maps a completed club purchase to its seat quota. An
// unrecognized price id resolves to the unlimited sentinel: a paying club is
// never silently left on a smaller quota because of a price-table mismatch.
func (t PriceTable) QuotaForPrice(priceID string) int {
	switch priceID {
	case t.Club1To4:
		return 4
	case t.Club5To9:
		return 9
	default:
		return UnlimitedSeats
	}
}
