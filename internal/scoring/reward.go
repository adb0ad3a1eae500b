// internal/scoring/reward.go
package scoring

// CategoryReward returns the reward earned on spend in one category.
// cap == 0 means uncapped. Spend up to and including the cap earns baseRate,
// anything above it earns postCapRate.
func CategoryReward(spend, baseRate, cap, postCapRate float64) float64 {
	if spend <= 0 {
		return 0
	}
	if cap == 0 || spend <= cap {
		return spend * baseRate
	}
	return cap*baseRate + (spend-cap)*postCapRate
}
