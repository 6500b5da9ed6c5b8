package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/erkineren/homework-monitor/internal/apperr"
)

// sender is the part of *tgbotapi.BotAPI the bot needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot delivers notifications to a single Telegram chat.
type Bot struct {
	api    sender
	token  string
	chatID int64
	self   string
}

func New(token string, chatID int64, timeout time.Duration) (*Bot, error) {
	return newWithEndpoint(token, tgbotapi.APIEndpoint, chatID, timeout)
}

func newWithEndpoint(token, endpoint string, chatID int64, timeout time.Duration) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", redact(err, token))
	}

	return &Bot{
		api:    api,
		token:  token,
		chatID: chatID,
		self:   api.Self.UserName,
	}, nil
}

// UserName is the bot account name reported by Telegram at startup.
func (b *Bot) UserName() string {
	return b.self
}

// Send delivers text to the configured chat. Any failure is reported as
// DeliveryFailed.
func (b *Bot) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return apperr.Wrap(apperr.DeliveryFailed, "send", err)
	}

	msg := tgbotapi.NewMessage(b.chatID, escapeMarkdown(text))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := b.api.Send(msg); err != nil {
		return apperr.Wrap(apperr.DeliveryFailed, "send", fmt.Errorf("failed to send message: %w", redact(err, b.token)))
	}

	return nil
}

// redact removes the bot token from err. Telegram request URLs embed the
// token, so transport errors carry it.
func redact(err error, token string) error {
	if err == nil || token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "***"))
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)
	return replacer.Replace(text)
}
