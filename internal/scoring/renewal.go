// internal/scoring/renewal.go
package scoring

import "cardwise/internal/domain"

// ResolveRenewal returns the value of the card's renewal benefit for year 2+
// at the given total annual spend. A waived fee counts as a reward equal to the fee.
// AppliesFirstYear is not consulted.
func (e *Engine) ResolveRenewal(card domain.CardDefinition, totalAnnualSpend float64) float64 {
	r := card.Renewal
	if r == nil {
		return 0
	}

	switch r.Type {
	case domain.RenewalFeeWaiver:
		if r.HasThreshold() {
			if totalAnnualSpend >= r.SpendThreshold {
				return card.AnnualFee
			}
			return 0
		}
		if r.FeeWaiver {
			return card.AnnualFee
		}
		return 0

	case domain.RenewalPoints:
		if r.MilestoneProgram != "" {
			if p, ok := e.programs.Program(r.MilestoneProgram); ok {
				return p.ValueFor(totalAnnualSpend)
			}
		}
		return gated(r, totalAnnualSpend)

	case domain.RenewalVoucher:
		return gated(r, totalAnnualSpend)

	default:
		return 0
	}
}

func gated(r *domain.RenewalBenefit, totalAnnualSpend float64) float64 {
	if r.HasThreshold() && totalAnnualSpend < r.SpendThreshold {
		return 0
	}
	return r.ValueINR
}
