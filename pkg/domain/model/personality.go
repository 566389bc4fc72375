package model

import (
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// CustomerPersonality is the inferred profile of a customer, refined
// incrementally as the conversation grows.
type CustomerPersonality struct {
	Style      types.CommunicationStyle
	Tone       types.Tone
	Priorities Priorities
	Traits     Traits

	// Confidence grows with observed user messages, capped at 1
	Confidence float64
}

// Priorities scores what the customer cares about. Scores are raw,
// unbounded keyword-hit counts; only their relative ordering matters.
type Priorities struct {
	Price   float64
	Quality float64
	Speed   float64
	Service float64
}

// Traits scores behavioral tendencies on a 0..10 scale
type Traits struct {
	Decisive       float64
	DetailOriented float64
	PriceSensitive float64
	BrandLoyal     float64
}

// Clamp forces every trait into [0, 10]
func (t *Traits) Clamp() {
	t.Decisive = clamp10(t.Decisive)
	t.DetailOriented = clamp10(t.DetailOriented)
	t.PriceSensitive = clamp10(t.PriceSensitive)
	t.BrandLoyal = clamp10(t.BrandLoyal)
}

func clamp10(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// NeutralPersonality is the profile assumed before any user message has
// been observed.
func NeutralPersonality() CustomerPersonality {
	return CustomerPersonality{
		Style: types.StyleFriendly,
		Tone:  types.ToneNeutral,
		Priorities: Priorities{
			Price:   5,
			Quality: 5,
			Speed:   5,
			Service: 5,
		},
		Traits: Traits{
			Decisive:       5,
			DetailOriented: 5,
			PriceSensitive: 5,
			BrandLoyal:     5,
		},
		Confidence: 0.1,
	}
}

// Clone returns a deep copy
func (p *CustomerPersonality) Clone() *CustomerPersonality {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
