// internal/validator/validator_test.go
package validator

import (
	"testing"

	"cardwise/internal/domain"

	"github.com/stretchr/testify/assert"
)

func validCard() domain.CardDefinition {
	return domain.CardDefinition{
		ID:         "AXIS_ATLAS",
		Issuer:     "Axis Bank",
		Name:       "Axis Atlas Credit Card",
		AnnualFee:  5000,
		Rates:      domain.CategoryRateSet{Dining: 0.02},
		VerifiedAt: "2025-11-17",
		Renewal:    &domain.RenewalBenefit{Type: domain.RenewalPoints, MilestoneProgram: "AXIS_ATLAS_MILESTONES"},
	}
}

func TestStruct_ValidCard(t *testing.T) {
	assert.NoError(t, Struct(validCard()))
}

func TestStruct_CardErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *domain.CardDefinition)
		wantErr string
	}{
		{"lowercase id", func(c *domain.CardDefinition) { c.ID = "axis" }, "CardDefinition.ID must contain only"},
		{"blank issuer", func(c *domain.CardDefinition) { c.Issuer = "   " }, "CardDefinition.Issuer must not be blank"},
		{"negative fee", func(c *domain.CardDefinition) { c.AnnualFee = -1 }, "CardDefinition.AnnualFee must be >= 0"},
		{"negative rate", func(c *domain.CardDefinition) { c.Rates.Dining = -0.01 }, "CardDefinition.Rates.Dining must be >= 0"},
		{"negative cap", func(c *domain.CardDefinition) { c.Caps.TravelDomestic = -5 }, "CardDefinition.Caps.TravelDomestic must be >= 0"},
		{"bad date", func(c *domain.CardDefinition) { c.VerifiedAt = "17/11/2025" }, "YYYY-MM-DD"},
		{"unknown renewal", func(c *domain.CardDefinition) { c.Renewal.Type = "cashback" }, "must be one of"},
		{"fx over 100", func(c *domain.CardDefinition) { c.FXMarkupPercent = 120 }, "must be <= 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)
			assert.ErrorContains(t, Struct(card), tt.wantErr)
		})
	}
}

func TestStruct_SpendProfile(t *testing.T) {
	assert.NoError(t, Struct(domain.SpendProfile{}))
	assert.NoError(t, Struct(domain.SpendProfile{Dining: domain.Amount(0)}))
	assert.ErrorContains(t, Struct(domain.SpendProfile{Travel: domain.Amount(-1)}), "SpendProfile.Travel must be >= 0")
}

func TestStruct_MilestoneProgram(t *testing.T) {
	p := domain.MilestoneProgram{ID: "ATLAS", Tiers: []domain.MilestoneTier{{Threshold: 300000, Value: 5000}}}
	assert.NoError(t, Struct(p))

	p.Tiers[0].Value = -1
	assert.ErrorContains(t, Struct(p), "Value must be >= 0")
}
