package postcrew

import "fmt"

// Tier selects the class of model an agent runs on.
type Tier string

const (
	// TierFast is a cheap, low-latency model.
	TierFast Tier = "fast"
	// TierCapable is a stronger model for planning and writing.
	TierCapable Tier = "capable"
)

// Valid reports whether t is a recognized tier.
func (t Tier) Valid() bool {
	return t == TierFast || t == TierCapable
}

// TierModels maps tiers to concrete model identifiers.
type TierModels map[Tier]string

// DefaultTierModels returns the Gemini models used when none are configured.
func DefaultTierModels() TierModels {
	return TierModels{
		TierFast:    "gemini-2.5-flash",
		TierCapable: "gemini-2.5-pro",
	}
}

// Resolve returns the model identifier for the tier.
func (m TierModels) Resolve(t Tier) (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTier, t)
	}
	model, ok := m[t]
	if !ok || model == "" {
		return "", fmt.Errorf("%w: %s", ErrTierUnmapped, t)
	}
	return model, nil
}
