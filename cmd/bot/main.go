// cmd/bot/main.go
package main

import (
	"cardwise/internal/app"
	"cardwise/internal/bot"
	"cardwise/internal/config"
	"cardwise/internal/recommend"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg := config.MustLoad()
	slog.SetDefault(config.NewLogger(cfg.LogLevel))

	if cfg.TelegramBotToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Open(ctx, cfg)
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}
	defer deps.Close()

	go deps.Catalog.Run(ctx, cfg.CatalogRefreshInterval)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		slog.Error("Failed to init Telegram bot", "error", err)
		os.Exit(1)
	}

	// long polling не работает, пока висит webhook
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		slog.Warn("Failed to delete webhook", "error", err)
	}

	slog.Info("Bot started", "username", api.Self.UserName)
	service := recommend.NewService(deps.Catalog, cfg.RecommendLimit)
	bot.New(service, deps.Catalog).Poll(ctx, api)
	slog.Info("Bot stopped")
}
