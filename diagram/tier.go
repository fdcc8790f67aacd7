package diagram

import "fmt"

// Tier represents the coarse network placement zone of a node.
// It is used for layout and compliance reasoning.
type Tier string

const (
	// TierExternal indicates the node sits outside the organization boundary.
	// Examples: end users, third-party SaaS, the public internet
	TierExternal Tier = "external"

	// TierDMZ indicates the node sits in the demilitarized zone.
	// Examples: reverse proxies, public load balancers, bastion hosts
	TierDMZ Tier = "dmz"

	// TierInternal indicates the node sits on the internal network.
	// Examples: application servers, internal services
	TierInternal Tier = "internal"

	// TierData indicates the node sits in the data tier.
	// Examples: databases, object stores, caches holding state
	TierData Tier = "data"
)

// IsValid returns true if the tier is one of the four known placement zones.
func (t Tier) IsValid() bool {
	switch t {
	case TierExternal, TierDMZ, TierInternal, TierData:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tier.
func (t Tier) String() string {
	return string(t)
}

// ParseTier parses a string into a Tier value.
// Returns an error if the string is not a valid tier.
func ParseTier(s string) (Tier, error) {
	tier := Tier(s)
	if !tier.IsValid() {
		return "", fmt.Errorf("invalid tier: %s", s)
	}
	return tier, nil
}

// AllTiers returns all valid tiers ordered from least to most trusted.
func AllTiers() []Tier {
	return []Tier{
		TierExternal,
		TierDMZ,
		TierInternal,
		TierData,
	}
}
