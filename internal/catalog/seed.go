// internal/catalog/seed.go
package catalog

import (
	"cardwise/internal/domain"
	"context"
)

const AtlasMilestoneProgram = "AXIS_ATLAS_MILESTONES"

// SeedPrograms: у Atlas Silver по умолчанию, Gold от 3L, Platinum от 7.5L (1 Edge Mile = ₹1)
func SeedPrograms() domain.MilestonePrograms {
	return domain.MilestonePrograms{
		AtlasMilestoneProgram: {
			ID:           AtlasMilestoneProgram,
			DefaultValue: 2500,
			Tiers: []domain.MilestoneTier{
				{Threshold: 750000, Value: 10000},
				{Threshold: 300000, Value: 5000},
			},
		},
	}
}

func SeedCards() []domain.CardDefinition {
	return []domain.CardDefinition{
		{
			ID:              "AXIS_ATLAS",
			Issuer:          "Axis Bank",
			Name:            "Axis Atlas Credit Card",
			AnnualFee:       5000,
			WelcomeBenefit:  2500,
			FXMarkupPercent: 3.5,
			VerifiedAt:      "2025-11-17",
			Rates: domain.CategoryRateSet{
				Groceries: 0.02, Dining: 0.02, Online: 0.02,
				TravelDomestic: 0.05, TravelInternational: 0.05, Other: 0.02,
			},
			Caps: domain.CategoryRateSet{
				TravelDomestic: 2400000, TravelInternational: 2400000,
			},
			PostCapRates: domain.CategoryRateSet{
				Groceries: 0.02, Dining: 0.02, Online: 0.02,
				TravelDomestic: 0.02, TravelInternational: 0.02, Other: 0.02,
			},
			Exclusions: []string{
				"fuel", "utilities", "wallet_loads", "rent_payments",
				"education_fee", "government_payments", "insurance_premiums",
			},
			Renewal: &domain.RenewalBenefit{
				Type:             domain.RenewalPoints,
				MilestoneProgram: AtlasMilestoneProgram,
				Notes:            "Annual milestone Edge Miles: Silver 2,500, Gold 5,000 at 3L spend, Platinum 10,000 at 7.5L spend.",
			},
			Notes: "Accelerated travel rewards and annual milestone Edge Miles based on spend tier.",
		},
		{
			ID:              "AXIS_MAGNUS",
			Issuer:          "Axis Bank",
			Name:            "Axis Bank Magnus Credit Card",
			AnnualFee:       12500,
			WelcomeBenefit:  12500,
			FXMarkupPercent: 2.0,
			VerifiedAt:      "2025-11-19",
			Rates: domain.CategoryRateSet{
				Groceries: 0.06, Dining: 0.06, Online: 0.06,
				TravelDomestic: 0.06, TravelInternational: 0.06, Other: 0.06,
			},
			Caps: domain.CategoryRateSet{
				Groceries: 1800000, Dining: 1800000, Online: 1800000,
				TravelDomestic: 1800000, TravelInternational: 1800000, Other: 1800000,
			},
			PostCapRates: domain.CategoryRateSet{
				Groceries: 0.175, Dining: 0.175, Online: 0.175,
				TravelDomestic: 0.175, TravelInternational: 0.175, Other: 0.175,
			},
			Exclusions: []string{
				"fuel", "rent_payments", "wallet_loads", "government_payments",
				"insurance_premiums", "utilities", "education_fee", "jewellery",
			},
			Renewal: &domain.RenewalBenefit{
				Type:           domain.RenewalFeeWaiver,
				FeeWaiver:      true,
				SpendThreshold: 2500000,
				Notes:          "Annual fee waived only if annual spends >= 25L.",
			},
			Notes: "12/200 base points, 35/200 above 1.5L monthly spend.",
		},
		{
			ID:              "SBI_CASHBACK",
			Issuer:          "SBI",
			Name:            "SBI Cashback Card",
			AnnualFee:       999,
			FXMarkupPercent: 3.5,
			VerifiedAt:      "2025-11-19",
			Rates: domain.CategoryRateSet{
				Groceries: 0.05, Dining: 0.05, Online: 0.05,
				TravelDomestic: 0.05, TravelInternational: 0.05, Other: 0.01,
			},
			Caps: domain.CategoryRateSet{
				Online: 1200000,
			},
			PostCapRates: domain.CategoryRateSet{
				Groceries: 0.05, Dining: 0.05, Online: 0.05,
				TravelDomestic: 0.05, TravelInternational: 0.05, Other: 0.01,
			},
			Exclusions: []string{
				"fuel", "rent_payments", "education_fee", "insurance_premiums",
				"utilities", "wallet_loads", "jewellery", "government_payments",
			},
			Renewal: &domain.RenewalBenefit{
				Type:           domain.RenewalFeeWaiver,
				FeeWaiver:      true,
				SpendThreshold: 200000,
				Notes:          "Annual fee waived at renewal if total annual spend >= 2L.",
			},
			Notes: "5% cashback on most online spends; 1% on offline.",
		},
	}
}

// StaticSource serves a fixed catalog, e.g. the seed.
type StaticSource struct {
	Data domain.Catalog
}

func NewSeedSource() *StaticSource {
	return &StaticSource{Data: domain.Catalog{Cards: SeedCards(), Programs: SeedPrograms()}}
}

func (s *StaticSource) LoadCatalog(_ context.Context) (*domain.Catalog, error) {
	data := s.Data
	return &data, nil
}
