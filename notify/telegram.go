package notify

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram builds a bot client without calling getMe, so a bad token only
// shows up on the first send.
func NewTelegram(token string, chatID int64, client *http.Client) *Telegram {
	if client == nil {
		client = &http.Client{}
	}
	bot := &tgbotapi.BotAPI{
		Token:  token,
		Client: client,
		Buffer: 100,
	}
	bot.SetAPIEndpoint(tgbotapi.APIEndpoint)

	return &Telegram{bot: bot, chatID: chatID}
}

func (t *Telegram) Name() string {
	return "telegram"
}

// Notify sends message to the configured chat. The bot API has no context
// support, so ctx is only checked before the call.
func (t *Telegram) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(ErrDelivery, "telegram: %v", err)
	}

	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, message)); err != nil {
		return errors.Wrapf(ErrDelivery, "telegram: %s", t.redact(err))
	}

	return nil
}

// redact drops the request URL, which carries the bot token, from transport
// errors and masks the token anywhere else in the text.
func (t *Telegram) redact(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	msg := err.Error()
	if t.bot.Token != "" {
		msg = strings.ReplaceAll(msg, t.bot.Token, "***")
	}

	return msg
}
