// internal/handler/cards.go
package handler

import (
	"cardwise/internal/auth"
	"cardwise/internal/catalog"
	"cardwise/internal/domain"
	"cardwise/internal/storage"
	val "cardwise/internal/validator"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var errLimit = errors.New("limit must be a positive integer")

type CombinedStorage interface {
	storage.CardStorage
	storage.MilestoneStorage
}

type CatalogRefresher interface {
	Snapshot() *catalog.Snapshot
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

// CacheInvalidator is optional; nil when Redis is not configured.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

type CardHandler struct {
	catalog CatalogRefresher
	store   CombinedStorage
	cache   CacheInvalidator
	tokens  *auth.TokenService
}

func NewCardHandler(c CatalogRefresher, store CombinedStorage, cache CacheInvalidator, tokens *auth.TokenService) *CardHandler {
	return &CardHandler{catalog: c, store: store, cache: cache, tokens: tokens}
}

type CardDetail struct {
	domain.CardDefinition
	RenewalDescription string                   `json:"renewal_description"`
	MilestoneProgram   *domain.MilestoneProgram `json:"milestone_program_tiers,omitempty"`
}

// ListCards godoc
// @Summary List the catalog in catalog order
// @Success 200 {array} domain.CardDefinition
// @Router /api/v1/cards [get]
func (h *CardHandler) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Snapshot().Cards())
}

// GetCard godoc
// @Summary Card detail with renewal description
// @Param id path string true "Card ID"
// @Success 200 {object} CardDetail
// @Failure 404 {object} map[string]string
// @Router /api/v1/cards/{id} [get]
func (h *CardHandler) GetCard(c *gin.Context) {
	snap := h.catalog.Snapshot()
	card, ok := snap.Card(normalizeID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	detail := CardDetail{CardDefinition: card, RenewalDescription: card.Renewal.Describe()}
	if card.Renewal != nil && card.Renewal.MilestoneProgram != "" {
		if p, ok := snap.Program(card.Renewal.MilestoneProgram); ok {
			detail.MilestoneProgram = &p
		}
	}
	c.JSON(http.StatusOK, detail)
}

// ListCategories godoc
// @Summary Spending categories
// @Success 200 {array} domain.CategoryInfo
// @Router /api/v1/categories [get]
func (h *CardHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Categories)
}

// Login godoc
// @Summary Exchange the admin API key for a token
// @Accept json
// @Param request body LoginRequest true "API key"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/admin/login [post]
func (h *CardHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key required"})
		return
	}

	token, err := h.tokens.Login(req.APIKey)
	switch {
	case errors.Is(err, auth.ErrAdminDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin access disabled"})
		return
	case errors.Is(err, auth.ErrBadAPIKey):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// UpsertCard godoc
// @Summary Create or replace a card definition
// @Accept json
// @Param id path string true "Card ID"
// @Param request body domain.CardDefinition true "Card"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/cards/{id} [put]
func (h *CardHandler) UpsertCard(c *gin.Context) {
	if !h.writable(c) {
		return
	}
	var card domain.CardDefinition
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	id := normalizeID(c.Param("id"))
	if card.ID == "" {
		card.ID = id
	}
	if card.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "card id in body does not match path"})
		return
	}
	if err := val.Struct(card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.UpsertCard(c.Request.Context(), card); err != nil {
		slog.Error("UpsertCard failed", "error", err, "card_id", card.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save card"})
		return
	}

	slog.Info("Card saved", "card_id", card.ID, "subject", c.GetString("subject"))
	h.reload(c, gin.H{"status": "ok"})
}

// DeleteCard godoc
// @Summary Remove a card from the catalog
// @Param id path string true "Card ID"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Failure 404 {object} map[string]string
// @Router /api/v1/admin/cards/{id} [delete]
func (h *CardHandler) DeleteCard(c *gin.Context) {
	if !h.writable(c) {
		return
	}
	id := normalizeID(c.Param("id"))
	err := h.store.DeleteCard(c.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}
	if err != nil {
		slog.Error("DeleteCard failed", "error", err, "card_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	slog.Info("Card deleted", "card_id", id, "subject", c.GetString("subject"))
	h.reload(c, gin.H{"status": "ok"})
}

// UpsertProgram godoc
// @Summary Create or replace a tiered milestone program
// @Accept json
// @Param id path string true "Program ID"
// @Param request body domain.MilestoneProgram true "Program"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Failure 400 {object} map[string]string
// @Router /api/v1/admin/programs/{id} [put]
func (h *CardHandler) UpsertProgram(c *gin.Context) {
	if !h.writable(c) {
		return
	}
	var program domain.MilestoneProgram
	if err := c.ShouldBindJSON(&program); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	program.ID = normalizeID(c.Param("id"))
	if err := val.Struct(program); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.UpsertProgram(c.Request.Context(), program.Normalized()); err != nil {
		slog.Error("UpsertProgram failed", "error", err, "program_id", program.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save program"})
		return
	}
	h.reload(c, gin.H{"status": "ok"})
}

// RefreshCatalog godoc
// @Summary Reload the catalog snapshot from storage
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /api/v1/admin/catalog/refresh [post]
func (h *CardHandler) RefreshCatalog(c *gin.Context) {
	h.reload(c, gin.H{"status": "ok"})
}

// writable: каталог из seed правкам не подлежит
func (h *CardHandler) writable(c *gin.Context) bool {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog is read-only"})
		return false
	}
	return true
}

// reload сбрасывает кэш и перечитывает каталог; ответ дополняется версией
func (h *CardHandler) reload(c *gin.Context, body gin.H) {
	ctx := c.Request.Context()
	if h.cache != nil {
		if err := h.cache.Invalidate(ctx); err != nil {
			slog.Warn("Cache invalidation failed", "error", err)
		}
	}

	snap, err := h.catalog.Refresh(ctx)
	if err != nil {
		slog.Error("Catalog refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Saved, but catalog refresh failed"})
		return
	}
	body["catalog_version"] = snap.Version()
	body["cards"] = snap.Len()
	c.JSON(http.StatusOK, body)
}

func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// === DTO ===

type LoginRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

func (r LoginRequest) String() string {
	return fmt.Sprintf("LoginRequest{api_key: %d chars}", len(r.APIKey))
}
