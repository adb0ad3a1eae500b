// internal/handler/recommendation.go
package handler

import (
	"cardwise/internal/domain"
	"cardwise/internal/recommend"
	val "cardwise/internal/validator"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxLimit = 50

type RecommendationHandler struct {
	service *recommend.Service
}

func NewRecommendationHandler(service *recommend.Service) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

type RecommendationResponse struct {
	Filters     domain.SpendProfile `json:"filters"`
	AnnualSpend *float64            `json:"annual_spend,omitempty"`
	recommend.Result
}

// GetRecommendations godoc
// @Summary Rank cards for a spend profile
// @Description Absent or non-numeric buckets count as not specified; with no buckets at all every card is scored on fees and benefits only.
// @Tags recommendations
// @Produce json
// @Param groceries query number false "Annual groceries spend"
// @Param dining query number false "Annual dining spend"
// @Param travel query number false "Annual travel spend"
// @Param other query number false "Annual other spend (alias: others)"
// @Param limit query int false "Max results (default 5)"
// @Success 200 {object} RecommendationResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	profile := ParseSpendProfile(c.Query)
	if err := val.Struct(profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.service.Recommend(profile, limit)
	c.JSON(http.StatusOK, RecommendationResponse{
		Filters:     profile,
		AnnualSpend: parseAmount(c.Query("annualSpend")),
		Result:      result,
	})
}

// ParseSpendProfile reads the four spend buckets through get (e.g. c.Query).
// "others" is accepted for the other bucket.
func ParseSpendProfile(get func(key string) string) domain.SpendProfile {
	other := parseAmount(get("other"))
	if other == nil {
		other = parseAmount(get("others"))
	}
	return domain.SpendProfile{
		Groceries: parseAmount(get("groceries")),
		Dining:    parseAmount(get("dining")),
		Travel:    parseAmount(get("travel")),
		Other:     other,
	}
}

// parseAmount: пусто или не число означает «не указано», а не 0
func parseAmount(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errLimit
	}
	if n > maxLimit {
		n = maxLimit
	}
	return n, nil
}
