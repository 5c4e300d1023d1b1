package roster

import (
	"github.com/randalmurphal/roster/pkg/roster/config"
	"github.com/randalmurphal/roster/pkg/roster/pricing"
)

// Configuration keys read by SeedFromConfig and OptionsFromConfig.
const (
	KeyParticipants   = "participants"
	KeyPricing        = "pricing"
	KeyWorkDelay      = "work_delay"
	KeyRegistryName   = "name"
	KeySeniorityLevel = "seniority_level"
	KeyName           = "name"
)

// Seed is initial registry state decoded from configuration.
type Seed struct {
	Participants []*Participant
	Pricing      map[string]float64

	// DroppedParticipants counts list entries without a usable seniority level.
	DroppedParticipants int
	// DroppedRates counts pricing entries that were not non-negative numbers.
	DroppedRates int

	// hasParticipants and hasPricing record a non-empty source list or map,
	// even when every entry was dropped.
	hasParticipants bool
	hasPricing      bool
}

// Apply seeds r. A non-empty source list or map replaces that part of the
// registry state even when every entry was dropped, as Init does for the
// same input.
func (s Seed) Apply(r *Registry) {
	r.replace(s.Participants, s.Pricing, s.hasParticipants, s.hasPricing)
}

// SeedFromConfig decodes the "participants" and "pricing" keys.
//
// A participant entry must be an object with a non-empty string
// "seniority_level"; its "name" becomes Name and every other key goes to
// Attributes. A pricing entry must be a non-negative number. Anything else is
// dropped and counted.
func SeedFromConfig(cfg config.Config) Seed {
	var seed Seed

	entries := cfg.Slice(KeyParticipants)
	seed.hasParticipants = len(entries) > 0
	for _, raw := range entries {
		p, ok := participantFromConfig(raw)
		if !ok {
			seed.DroppedParticipants++
			continue
		}
		seed.Participants = append(seed.Participants, p)
	}

	if rates := cfg.Map(KeyPricing); len(rates) > 0 {
		seed.hasPricing = true
		seed.Pricing = make(map[string]float64, len(rates))
		for level, raw := range rates {
			rate, ok := config.Number(raw)
			if !ok || !pricing.Valid(rate) {
				seed.DroppedRates++
				continue
			}
			seed.Pricing[level] = rate
		}
	}
	return seed
}

func participantFromConfig(raw any) (*Participant, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	level, _ := m[KeySeniorityLevel].(string)
	p, err := NewParticipant(level)
	if err != nil {
		return nil, false
	}
	for k, v := range m {
		switch k {
		case KeySeniorityLevel:
		case KeyName:
			p.Name, _ = v.(string)
		default:
			WithAttribute(k, v)(p)
		}
	}
	return p, true
}

// OptionsFromConfig returns registry options for the keys present in cfg.
// Absent keys keep the defaults.
func OptionsFromConfig(cfg config.Config) []Option {
	var opts []Option
	if cfg.Has(KeyWorkDelay) {
		opts = append(opts, WithWorkDelay(cfg.Duration(KeyWorkDelay, DefaultWorkDelay)))
	}
	if name := cfg.String(KeyRegistryName, ""); name != "" {
		opts = append(opts, WithRegistryName(name))
	}
	return opts
}
