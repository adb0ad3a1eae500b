// cmd/api/main.go
package main

import (
	"cardwise/internal/app"
	"cardwise/internal/auth"
	"cardwise/internal/bot"
	"cardwise/internal/config"
	"cardwise/internal/handler"
	"cardwise/internal/middleware"
	"cardwise/internal/recommend"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg := config.MustLoad()
	slog.SetDefault(config.NewLogger(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Open(ctx, cfg)
	if err != nil {
		slog.Error("Не удалось поднять каталог", "error", err)
		os.Exit(1)
	}
	defer deps.Close()

	go deps.Catalog.Run(ctx, cfg.CatalogRefreshInterval)

	service := recommend.NewService(deps.Catalog, cfg.RecommendLimit)
	tokenService := auth.NewTokenService(cfg)

	routerDeps := handler.RouterDeps{
		Recommendations: handler.NewRecommendationHandler(service),
		Cards:           handler.NewCardHandler(deps.Catalog, deps.Store, deps.Invalidator(), tokenService),
		Auth:            middleware.NewAuthMiddleware(tokenService),
	}

	// Telegram webhook
	if cfg.TelegramBotToken != "" {
		api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			slog.Error("Не удалось инициализировать Telegram бота", "error", err)
			os.Exit(1)
		}

		webhookURL := cfg.WebhookBaseURL + "/telegram"
		if _, err := api.MakeRequest("setWebhook", tgbotapi.Params{"url": webhookURL}); err != nil {
			slog.Error("Не удалось установить webhook", "error", err)
			os.Exit(1)
		}
		slog.Info("Telegram webhook установлен", "url", webhookURL)

		routerDeps.Telegram = bot.New(service, deps.Catalog).Webhook(api)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           handler.NewRouter(routerDeps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("🚀 Сервер запущен", "addr", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Сервер завершил работу с ошибкой", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
	slog.Info("Сервер остановлен")
}
