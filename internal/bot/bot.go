// Package bot is the Telegram transport: it routes inbound commands to the
// dispatcher and carries pagination state inside Next-button callback
// payloads, so no session is kept server-side.
package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nibitools/saibot/internal/domain"
	"github.com/nibitools/saibot/internal/services/dispatcher"
)

const (
	pricesCallbackPrefix = "prices:"
	tradesCallbackPrefix = "trades:"

	// Telegram rejects callback payloads over 64 bytes.
	callbackDataLimit = 64
)

type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher *dispatcher.Dispatcher
	logger     *zap.Logger
}

func New(token string, d *dispatcher.Dispatcher, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to telegram")
	}
	return &Bot{api: api, dispatcher: d, logger: logger}, nil
}

// Run polls for updates until ctx is cancelled. Each update is one
// independent unit of work; no state is shared between them.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", zap.String("username", b.api.Self.UserName))

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	replies := b.dispatcher.Dispatch(ctx, msg.Command(), args, 0)

	for _, reply := range replies {
		out := tgbotapi.NewMessage(msg.Chat.ID, reply.Text)
		if markup, ok := nextKeyboard(reply.Next); ok {
			out.ReplyMarkup = markup
		}
		if _, err := b.api.Send(out); err != nil {
			b.logger.Error("failed to send reply", zap.Error(err))
		}
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}

	cmd, ok := commandFromCallback(query.Data)
	if !ok || query.Message == nil {
		return
	}

	replies := b.dispatcher.Handle(ctx, cmd)
	if len(replies) == 0 {
		return
	}
	reply := replies[0]

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, reply.Text)
	if markup, ok := nextKeyboard(reply.Next); ok {
		edit.ReplyMarkup = &markup
	}
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("failed to edit message", zap.Error(err))
	}
}

// commandFromCallback decodes a Next-button payload back into the command it
// continues. Trade continuations always carry a concrete status section.
func commandFromCallback(data string) (domain.Command, bool) {
	switch {
	case strings.HasPrefix(data, pricesCallbackPrefix):
		page, err := strconv.Atoi(strings.TrimPrefix(data, pricesCallbackPrefix))
		if err != nil || page < 0 {
			return nil, false
		}
		return domain.PricesCommand{Page: page}, true

	case strings.HasPrefix(data, tradesCallbackPrefix):
		// <address>:<status>:<page>:<symbol>; the symbol tail may be empty
		parts := strings.SplitN(strings.TrimPrefix(data, tradesCallbackPrefix), ":", 4)
		if len(parts) != 4 {
			return nil, false
		}

		addr, err := domain.ClassifyAddress(parts[0])
		if err != nil {
			return nil, false
		}

		var status domain.TradeStatus
		switch parts[1] {
		case domain.StatusOpen.String():
			status = domain.StatusOpen
		case domain.StatusClosed.String():
			status = domain.StatusClosed
		default:
			return nil, false
		}

		page, err := strconv.Atoi(parts[2])
		if err != nil || page < 0 {
			return nil, false
		}

		return domain.TradesCommand{Address: addr, Status: status, Symbol: parts[3], Page: page}, true
	}
	return nil, false
}

// callbackData encodes the continuation command for a Next button. ok is
// false when the command has no callback form or the payload would exceed
// the Telegram limit.
func callbackData(cmd domain.Command) (string, bool) {
	switch c := cmd.(type) {
	case domain.PricesCommand:
		return pricesCallbackPrefix + strconv.Itoa(c.Page), true
	case domain.TradesCommand:
		data := tradesCallbackPrefix + strings.Join([]string{
			c.Address.Value,
			c.Status.String(),
			strconv.Itoa(c.Page),
			c.Symbol,
		}, ":")
		if len(data) > callbackDataLimit {
			return "", false
		}
		return data, true
	}
	return "", false
}

func nextKeyboard(next domain.Command) (tgbotapi.InlineKeyboardMarkup, bool) {
	if next == nil {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	data, ok := callbackData(next)
	if !ok {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Next →", data),
		),
	), true
}
