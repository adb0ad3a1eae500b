// internal/scoring/engine.go
package scoring

import (
	"cardwise/internal/domain"
	"sort"
)

// DefaultLimit: сколько карт показываем по умолчанию
const DefaultLimit = 5

// bucketCategories maps user spend buckets to the card category whose
// rate/cap/post-cap triple scores them. Travel is scored as domestic travel.
var bucketCategories = []struct {
	bucket   domain.Bucket
	category domain.Category
}{
	{domain.BucketGroceries, domain.CategoryGroceries},
	{domain.BucketDining, domain.CategoryDining},
	{domain.BucketTravel, domain.CategoryTravelDomestic},
	{domain.BucketOther, domain.CategoryOther},
}

// CategoryFor reports which card category a spend bucket is scored against.
func CategoryFor(b domain.Bucket) (domain.Category, bool) {
	for _, bc := range bucketCategories {
		if bc.bucket == b {
			return bc.category, true
		}
	}
	return "", false
}

type Engine struct {
	programs domain.MilestoneLookup
}

// NewEngine accepts a nil lookup; tiered points then fall back to the flat value.
func NewEngine(programs domain.MilestoneLookup) *Engine {
	if programs == nil {
		programs = domain.MilestonePrograms{}
	}
	return &Engine{programs: programs}
}

func (e *Engine) EstimatedRewards(card domain.CardDefinition, profile domain.SpendProfile) float64 {
	var total float64
	for _, bc := range bucketCategories {
		total += CategoryReward(
			profile.Spend(bc.bucket),
			card.Rates.Get(bc.category),
			card.Caps.Get(bc.category),
			card.PostCapRates.Get(bc.category),
		)
	}
	return total
}

// Valuate computes first-year and subsequent-year net value of one card.
// An empty profile scores zero rewards and evaluates the renewal benefit at zero spend.
func (e *Engine) Valuate(card domain.CardDefinition, profile domain.SpendProfile) domain.CardValuation {
	rewards := e.EstimatedRewards(card, profile)
	renewal := e.ResolveRenewal(card, profile.Total())

	return domain.CardValuation{
		CardID:             card.ID,
		Issuer:             card.Issuer,
		Name:               card.Name,
		EstimatedRewards:   rewards,
		AnnualFee:          card.AnnualFee,
		WelcomeBenefit:     card.WelcomeBenefit,
		RenewalBenefit:     renewal,
		NetValueYear1:      rewards - card.AnnualFee + card.WelcomeBenefit,
		NetValueSubsequent: rewards - card.AnnualFee + renewal,
	}
}

// Rank valuates every card and orders them by subsequent-year value, then
// first-year value. Full ties keep catalog order. limit <= 0 keeps every card.
func (e *Engine) Rank(cards []domain.CardDefinition, profile domain.SpendProfile, limit int) []domain.CardValuation {
	ranked := make([]domain.CardValuation, 0, len(cards))
	for _, card := range cards {
		ranked = append(ranked, e.Valuate(card, profile))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].NetValueSubsequent != ranked[j].NetValueSubsequent {
			return ranked[i].NetValueSubsequent > ranked[j].NetValueSubsequent
		}
		return ranked[i].NetValueYear1 > ranked[j].NetValueYear1
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
