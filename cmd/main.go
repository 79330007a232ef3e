// Command saibot runs a Telegram bot that answers trade and oracle price
// queries against the SAI keeper GraphQL backend.
//
// Usage:
//
//	saibot --config config.yaml
//	saibot (uses defaults and environment)
//
// Required environment variables:
//
//	TELEGRAM_BOT_TOKEN – Telegram bot credential
//
// Optional:
//
//	SAI_GRAPHQL_ENDPOINT – backend query endpoint
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nibitools/saibot/config"
	"github.com/nibitools/saibot/internal/bot"
	"github.com/nibitools/saibot/internal/clients"
	"github.com/nibitools/saibot/internal/services/dispatcher"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	gateway := clients.NewSaiClient(cfg.GraphQLEndpoint, cfg.RequestTimeout)
	d := dispatcher.New(gateway, cfg.PageSize, logger.Named("dispatcher"))

	b, err := bot.New(cfg.TelegramToken, d, logger.Named("bot"))
	if err != nil {
		logger.Fatal("failed to start bot", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("bot stopped", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
