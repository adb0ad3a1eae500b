// internal/domain/models.go
package domain

type Category string

const (
	CategoryGroceries           Category = "groceries"
	CategoryDining              Category = "dining"
	CategoryFuel                Category = "fuel"
	CategoryOnline              Category = "online"
	CategoryUtilities           Category = "utilities"
	CategoryTravelDomestic      Category = "travel_domestic"
	CategoryTravelInternational Category = "travel_international"
	CategoryRentEducation       Category = "rent_education"
	CategoryOther               Category = "other"
)

// CategoryInfo: категория для отображения
type CategoryInfo struct {
	ID    Category `json:"id"`
	Name  string   `json:"name"`
	Group string   `json:"group"`
}

var Categories = []CategoryInfo{
	{ID: CategoryGroceries, Name: "Groceries", Group: "everyday"},
	{ID: CategoryDining, Name: "Dining & Food", Group: "everyday"},
	{ID: CategoryFuel, Name: "Fuel", Group: "transport"},
	{ID: CategoryOnline, Name: "Online Shopping", Group: "ecommerce"},
	{ID: CategoryUtilities, Name: "Utilities", Group: "bills"},
	{ID: CategoryTravelDomestic, Name: "Domestic Travel", Group: "travel"},
	{ID: CategoryTravelInternational, Name: "International Travel", Group: "travel"},
	{ID: CategoryRentEducation, Name: "Rent / Education", Group: "bills"},
	{ID: CategoryOther, Name: "Other", Group: "other"},
}

// CategoryRateSet has a value for every category. Depending on use it holds
// reward rates, annual spend caps (0 = uncapped) or post-cap rates.
type CategoryRateSet struct {
	Groceries           float64 `json:"groceries" validate:"gte=0"`
	Dining              float64 `json:"dining" validate:"gte=0"`
	Fuel                float64 `json:"fuel" validate:"gte=0"`
	Online              float64 `json:"online" validate:"gte=0"`
	Utilities           float64 `json:"utilities" validate:"gte=0"`
	TravelDomestic      float64 `json:"travel_domestic" validate:"gte=0"`
	TravelInternational float64 `json:"travel_international" validate:"gte=0"`
	RentEducation       float64 `json:"rent_education" validate:"gte=0"`
	Other               float64 `json:"other" validate:"gte=0"`
}

// Get returns 0 for a category outside the closed set.
func (s CategoryRateSet) Get(c Category) float64 {
	switch c {
	case CategoryGroceries:
		return s.Groceries
	case CategoryDining:
		return s.Dining
	case CategoryFuel:
		return s.Fuel
	case CategoryOnline:
		return s.Online
	case CategoryUtilities:
		return s.Utilities
	case CategoryTravelDomestic:
		return s.TravelDomestic
	case CategoryTravelInternational:
		return s.TravelInternational
	case CategoryRentEducation:
		return s.RentEducation
	case CategoryOther:
		return s.Other
	default:
		return 0
	}
}

type CardDefinition struct {
	ID              string          `json:"id" validate:"required,cardid"`
	Issuer          string          `json:"issuer" validate:"required,notblank"`
	Name            string          `json:"name" validate:"required,notblank"`
	AnnualFee       float64         `json:"annual_fee" validate:"gte=0"`
	WelcomeBenefit  float64         `json:"welcome_benefit" validate:"gte=0"`
	FXMarkupPercent float64         `json:"fx_markup_pct" validate:"gte=0,lte=100"`
	Flags           int             `json:"flags"`
	Rates           CategoryRateSet `json:"rates"`
	Caps            CategoryRateSet `json:"caps"`
	PostCapRates    CategoryRateSet `json:"post_cap_rates"`
	Renewal         *RenewalBenefit `json:"renewal,omitempty" validate:"omitempty"`
	Exclusions      []string        `json:"exclusions,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	VerifiedAt      string          `json:"verified_at,omitempty" validate:"omitempty,isodate"`
}

// Clone returns a copy that shares no slices or pointers with c.
func (c CardDefinition) Clone() CardDefinition {
	out := c
	if c.Renewal != nil {
		r := *c.Renewal
		out.Renewal = &r
	}
	if c.Exclusions != nil {
		out.Exclusions = append([]string(nil), c.Exclusions...)
	}
	return out
}

// Catalog отдаёт хранилище: карты в порядке каталога и программы бонусов
type Catalog struct {
	Cards    []CardDefinition  `json:"cards"`
	Programs MilestonePrograms `json:"programs"`
}

type CardValuation struct {
	CardID             string  `json:"card_id"`
	Issuer             string  `json:"issuer"`
	Name               string  `json:"name"`
	EstimatedRewards   float64 `json:"estimated_rewards"`
	AnnualFee          float64 `json:"annual_fee"`
	WelcomeBenefit     float64 `json:"welcome_benefit"`
	RenewalBenefit     float64 `json:"renewal_benefit"`
	NetValueYear1      float64 `json:"net_value_year1"`
	NetValueSubsequent float64 `json:"net_value_subsequent"`
}
