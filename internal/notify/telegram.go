package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// messageSender is the part of *tgbotapi.BotAPI the notifier uses
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier delivers alerts as Telegram messages to a single chat
type TelegramNotifier struct {
	bot    messageSender
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier creates a new TelegramNotifier.
// It contacts the Bot API once to validate the token.
func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("telegram notifier ready",
		zap.String("bot", bot.Self.UserName),
		zap.Int64("chat_id", chatID),
	)

	return newTelegramNotifier(bot, chatID, logger), nil
}

func newTelegramNotifier(bot messageSender, chatID int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}
}

// Supported always reports true
func (n *TelegramNotifier) Supported() bool { return true }

// RequestPermission is granted; the chat opted in by talking to the bot
func (n *TelegramNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

// ShowAlert sends the alert to the configured chat.
// Silent alerts are delivered without a notification sound.
func (n *TelegramNotifier) ShowAlert(ctx context.Context, alert Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, formatAlert(alert))
	msg.DisableNotification = alert.Silent

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram alert",
			zap.Error(err),
			zap.String("reminder_id", alert.Tag),
		)
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	return nil
}

func formatAlert(alert Alert) string {
	if alert.Body == "" {
		return alert.Title
	}
	return alert.Title + "\n\n" + alert.Body
}
