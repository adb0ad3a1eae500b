// internal/domain/renewal.go
package domain

import (
	"fmt"
	"sort"
)

type RenewalType string

const (
	RenewalNone      RenewalType = "none"
	RenewalFeeWaiver RenewalType = "fee_waiver"
	RenewalPoints    RenewalType = "points"
	RenewalVoucher   RenewalType = "voucher"
)

// RenewalBenefit describes what a card gives back from year 2 on.
// SpendThreshold == 0 means the benefit is not spend-gated.
type RenewalBenefit struct {
	Type             RenewalType `json:"type" validate:"required,oneof=none fee_waiver points voucher"`
	FeeWaiver        bool        `json:"fee_waiver,omitempty"`
	Points           float64     `json:"points,omitempty" validate:"gte=0"`
	ValueINR         float64     `json:"value_in_inr,omitempty" validate:"gte=0"`
	SpendThreshold   float64     `json:"annual_spend_threshold,omitempty" validate:"gte=0"`
	MilestoneProgram string      `json:"milestone_program,omitempty"`
	AppliesFirstYear bool        `json:"applies_first_year"`
	Notes            string      `json:"notes,omitempty"`
}

func (r RenewalBenefit) HasThreshold() bool {
	return r.SpendThreshold > 0
}

// Describe: текст для карточки, как на странице деталей
func (r *RenewalBenefit) Describe() string {
	if r == nil {
		return "No renewal benefit"
	}
	switch r.Type {
	case RenewalFeeWaiver:
		if !r.FeeWaiver && !r.HasThreshold() {
			return "Conditional fee waiver"
		}
		if r.HasThreshold() {
			return fmt.Sprintf("Annual fee waived (spend %.0f)", r.SpendThreshold)
		}
		return "Annual fee waived"
	case RenewalPoints:
		if r.MilestoneProgram != "" {
			return "Tiered milestone reward points"
		}
		desc := "Tiered reward points"
		if r.Points > 0 {
			desc = fmt.Sprintf("%.0f reward points", r.Points)
		}
		if r.ValueINR > 0 {
			desc += fmt.Sprintf(" (%.0f)", r.ValueINR)
		}
		return desc
	case RenewalVoucher:
		return fmt.Sprintf("Voucher worth %.0f", r.ValueINR)
	case RenewalNone:
		return "No renewal benefit"
	default:
		return "See notes for details"
	}
}

type MilestoneTier struct {
	Threshold float64 `json:"threshold" toml:"threshold" validate:"gte=0"`
	Value     float64 `json:"value" toml:"value" validate:"gte=0"`
}

// MilestoneProgram is a spend-tiered renewal table. Tiers are matched from
// the highest threshold down; DefaultValue applies when none matches.
type MilestoneProgram struct {
	ID           string          `json:"id" toml:"id" validate:"required,cardid"`
	DefaultValue float64         `json:"default_value" toml:"default_value" validate:"gte=0"`
	Tiers        []MilestoneTier `json:"tiers" toml:"tiers" validate:"dive"`
}

// Normalized returns a copy with tiers sorted by descending threshold.
func (p MilestoneProgram) Normalized() MilestoneProgram {
	tiers := append([]MilestoneTier(nil), p.Tiers...)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].Threshold > tiers[j].Threshold
	})
	p.Tiers = tiers
	return p
}

// ValueFor picks the tier with the highest threshold the spend reaches,
// which is the first match when tiers are in descending order.
func (p MilestoneProgram) ValueFor(totalAnnualSpend float64) float64 {
	value, best, found := p.DefaultValue, 0.0, false
	for _, t := range p.Tiers {
		if totalAnnualSpend >= t.Threshold && (!found || t.Threshold > best) {
			value, best, found = t.Value, t.Threshold, true
		}
	}
	return value
}

// MilestoneLookup resolves a program by the key stored on a card's renewal benefit.
type MilestoneLookup interface {
	Program(id string) (MilestoneProgram, bool)
}

type MilestonePrograms map[string]MilestoneProgram

func (m MilestonePrograms) Program(id string) (MilestoneProgram, bool) {
	p, ok := m[id]
	return p, ok
}

// Clone copies the map and normalizes every program.
func (m MilestonePrograms) Clone() MilestonePrograms {
	out := make(MilestonePrograms, len(m))
	for id, p := range m {
		out[id] = p.Normalized()
	}
	return out
}
