// internal/domain/profile.go
package domain

type Bucket string

const (
	BucketGroceries Bucket = "groceries"
	BucketDining    Bucket = "dining"
	BucketTravel    Bucket = "travel"
	BucketOther     Bucket = "other"
)

// SpendProfile holds projected annual spend per bucket. A nil bucket was not
// specified by the user, which is not the same as zero.
type SpendProfile struct {
	Groceries *float64 `json:"groceries,omitempty" validate:"omitempty,gte=0"`
	Dining    *float64 `json:"dining,omitempty" validate:"omitempty,gte=0"`
	Travel    *float64 `json:"travel,omitempty" validate:"omitempty,gte=0"`
	Other     *float64 `json:"other,omitempty" validate:"omitempty,gte=0"`
}

func Amount(v float64) *float64 {
	return &v
}

// Spend returns the bucket amount, 0 when absent.
func (p SpendProfile) Spend(b Bucket) float64 {
	var v *float64
	switch b {
	case BucketGroceries:
		v = p.Groceries
	case BucketDining:
		v = p.Dining
	case BucketTravel:
		v = p.Travel
	case BucketOther:
		v = p.Other
	}
	if v == nil {
		return 0
	}
	return *v
}

func (p SpendProfile) IsEmpty() bool {
	return p.Groceries == nil && p.Dining == nil && p.Travel == nil && p.Other == nil
}

func (p SpendProfile) Total() float64 {
	return p.Spend(BucketGroceries) + p.Spend(BucketDining) + p.Spend(BucketTravel) + p.Spend(BucketOther)
}
