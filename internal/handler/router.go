// internal/handler/router.go
package handler

import (
	"cardwise/internal/auth"
	"cardwise/internal/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Recommendations *RecommendationHandler
	Cards           *CardHandler
	Auth            *middleware.AuthMiddleware
	// Telegram is mounted at /telegram when set
	Telegram gin.HandlerFunc
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Observe())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		snap := d.Cards.catalog.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"catalog_version": snap.Version(),
			"cards":           snap.Len(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if d.Telegram != nil {
		router.POST("/telegram", d.Telegram)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/recommendations", d.Recommendations.GetRecommendations)
		v1.GET("/cards", d.Cards.ListCards)
		v1.GET("/cards/:id", d.Cards.GetCard)
		v1.GET("/categories", d.Cards.ListCategories)
		v1.POST("/admin/login", d.Cards.Login)
	}

	admin := v1.Group("/admin")
	admin.Use(d.Auth.RequireRole(auth.RoleAdmin))
	{
		admin.PUT("/cards/:id", d.Cards.UpsertCard)
		admin.DELETE("/cards/:id", d.Cards.DeleteCard)
		admin.PUT("/programs/:id", d.Cards.UpsertProgram)
		admin.POST("/catalog/refresh", d.Cards.RefreshCatalog)
	}

	return router
}
