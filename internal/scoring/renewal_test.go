// internal/scoring/renewal_test.go
package scoring

import (
	"testing"

	"cardwise/internal/domain"

	"github.com/stretchr/testify/assert"
)

func tieredPrograms() domain.MilestonePrograms {
	return domain.MilestonePrograms{
		"ATLAS_TIERS": {
			ID:           "ATLAS_TIERS",
			DefaultValue: 2500,
			// порядок намеренно не отсортирован
			Tiers: []domain.MilestoneTier{
				{Threshold: 300000, Value: 5000},
				{Threshold: 750000, Value: 10000},
			},
		},
	}
}

func TestResolveRenewal_NoBenefit(t *testing.T) {
	card := createCard("PLAIN", 500, 0)
	assert.Zero(t, NewEngine(nil).ResolveRenewal(card, 1_000_000))
}

func TestResolveRenewal_FeeWaiverThreshold(t *testing.T) {
	card := createCard("WAIVER", 999, 0)
	card.Renewal = &domain.RenewalBenefit{Type: domain.RenewalFeeWaiver, FeeWaiver: true, SpendThreshold: 200000}
	e := NewEngine(nil)

	assert.Equal(t, 999.0, e.ResolveRenewal(card, 200000))
	assert.Zero(t, e.ResolveRenewal(card, 199999))
	assert.Equal(t, 999.0, e.ResolveRenewal(card, 5_000_000))
}

func TestResolveRenewal_FeeWaiverUnconditional(t *testing.T) {
	card := createCard("WAIVER", 1500, 0)
	card.Renewal = &domain.RenewalBenefit{Type: domain.RenewalFeeWaiver, FeeWaiver: true}

	assert.Equal(t, 1500.0, NewEngine(nil).ResolveRenewal(card, 0))
}

func TestResolveRenewal_FeeWaiverFlagOff(t *testing.T) {
	card := createCard("WAIVER", 1500, 0)
	card.Renewal = &domain.RenewalBenefit{Type: domain.RenewalFeeWaiver}

	assert.Zero(t, NewEngine(nil).ResolveRenewal(card, 1_000_000))
}

func TestResolveRenewal_TieredPoints(t *testing.T) {
	card := createCard("ATLAS", 5000, 2500)
	card.Renewal = &domain.RenewalBenefit{Type: domain.RenewalPoints, MilestoneProgram: "ATLAS_TIERS", ValueINR: 123}
	e := NewEngine(tieredPrograms())

	tests := []struct {
		spend    float64
		expected float64
	}{
		{0, 2500},
		{299999, 2500},
		{300000, 5000},
		{749999, 5000},
		{750000, 10000},
		{2_000_000, 10000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, e.ResolveRenewal(card, tt.spend), "spend=%v", tt.spend)
	}
}

func TestResolveRenewal_UnknownProgramFallsBackToFlatValue(t *testing.T) {
	card := createCard("POINTS", 0, 0)
	card.Renewal = &domain.RenewalBenefit{Type: domain.RenewalPoints, MilestoneProgram: "MISSING", ValueINR: 750}

	assert.Equal(t, 750.0, NewEngine(tieredPrograms()).ResolveRenewal(card, 0))
}

func TestResolveRenewal_FlatPoints(t *testing.T) {
	card := createCard("POINTS", 0, 0)
	card.Renewal = &domain.RenewalBenefit{Type: domain.RenewalPoints, Points: 1000}
	assert.Zero(t, NewEngine(nil).ResolveRenewal(card, 0))

	card.Renewal.ValueINR = 250
	assert.Equal(t, 250.0, NewEngine(nil).ResolveRenewal(card, 0))
}

func TestResolveRenewal_Voucher(t *testing.T) {
	card := createCard("VOUCHER", 3000, 0)
	card.Renewal = &domain.RenewalBenefit{Type: domain.RenewalVoucher, ValueINR: 2000, SpendThreshold: 400000}
	e := NewEngine(nil)

	assert.Equal(t, 2000.0, e.ResolveRenewal(card, 400000))
	assert.Zero(t, e.ResolveRenewal(card, 399999))

	card.Renewal.SpendThreshold = 0
	assert.Equal(t, 2000.0, e.ResolveRenewal(card, 0))
}

func TestResolveRenewal_NoneAndUnknown(t *testing.T) {
	card := createCard("X", 1000, 0)
	e := NewEngine(nil)

	card.Renewal = &domain.RenewalBenefit{Type: domain.RenewalNone, ValueINR: 500, FeeWaiver: true}
	assert.Zero(t, e.ResolveRenewal(card, 1_000_000))

	card.Renewal = &domain.RenewalBenefit{Type: "cashback_bonus", ValueINR: 500}
	assert.Zero(t, e.ResolveRenewal(card, 1_000_000))
}
