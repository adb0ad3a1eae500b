// internal/scoring/reward_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryReward(t *testing.T) {
	tests := []struct {
		name     string
		spend    float64
		rate     float64
		cap      float64
		postCap  float64
		expected float64
	}{
		{"zero spend", 0, 0.05, 1000, 0.01, 0},
		{"negative spend", -500, 0.05, 0, 0.01, 0},
		{"uncapped", 100000, 0.02, 0, 0.01, 2000},
		{"under cap", 50000, 0.05, 100000, 0.02, 2500},
		{"exactly at cap", 100000, 0.05, 100000, 0.02, 5000},
		{"one over cap", 100001, 0.05, 100000, 0.02, 5000.02},
		{"cap overflow", 120000, 0.05, 100000, 0.02, 5400},
		{"excluded category", 75000, 0, 0, 0, 0},
		{"accelerated after cap", 2000000, 0.06, 1800000, 0.175, 1800000*0.06 + 200000*0.175},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CategoryReward(tt.spend, tt.rate, tt.cap, tt.postCap)
			assert.InDelta(t, tt.expected, got, 1e-6)
		})
	}
}

func TestCategoryReward_CapBoundaryUsesSingleRate(t *testing.T) {
	// на границе не должно быть двойного учёта
	atCap := CategoryReward(100000, 0.05, 100000, 0.02)
	assert.InDelta(t, 100000*0.05, atCap, 1e-9)

	overCap := CategoryReward(100001, 0.05, 100000, 0.02)
	assert.InDelta(t, 100000*0.05+1*0.02, overCap, 1e-9)
}

func TestCategoryReward_ZeroSpendIdentity(t *testing.T) {
	for _, rate := range []float64{0, 0.01, 0.05, 1} {
		for _, cap := range []float64{0, 1, 100000} {
			for _, post := range []float64{0, 0.02, 0.5} {
				assert.Zero(t, CategoryReward(0, rate, cap, post))
			}
		}
	}
}

func TestCategoryReward_Monotonic(t *testing.T) {
	configs := []struct{ rate, cap, post float64 }{
		{0.05, 100000, 0.02},
		{0.02, 0, 0.02},
		{0.06, 1800000, 0.175},
		{0.05, 50000, 0},
	}

	for _, cfg := range configs {
		prev := 0.0
		for spend := 0.0; spend <= 2500000; spend += 12500 {
			got := CategoryReward(spend, cfg.rate, cfg.cap, cfg.post)
			assert.GreaterOrEqual(t, got, prev, "spend=%v rate=%v cap=%v post=%v", spend, cfg.rate, cfg.cap, cfg.post)
			prev = got
		}
	}
}
