package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"fundwatch/internal/signal"
)

// Telegram pushes alerts to a single chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    zerolog.Logger
}

func NewTelegram(token string, chatID int64, log zerolog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	l := log.With().Str("component", "telegram").Logger()
	l.Info().Str("bot", api.Self.UserName).Int64("chat_id", chatID).Msg("telegram notifier ready")
	return &Telegram{api: api, chatID: chatID, log: l}, nil
}

// AlertOpportunity sends the alert, preferring a photo message with the
// per-holding breakdown chart and falling back to plain text.
func (t *Telegram) AlertOpportunity(_ context.Context, d signal.Decision) error {
	text := FormatAlert(d)

	img, err := renderBreakdownChart(d.Return.Breakdown)
	if err != nil {
		t.log.Warn().Err(err).Msg("chart render failed, sending text only")
	} else {
		photo := tgbotapi.NewPhoto(t.chatID, tgbotapi.FileBytes{Name: "portfolio.png", Bytes: img})
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeHTML
		_, sendErr := t.api.Send(photo)
		if sendErr == nil {
			return nil
		}
		t.log.Warn().Err(sendErr).Msg("photo alert failed, retrying as text")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err = t.api.Send(msg)
	return err
}

var _ Notifier = (*Telegram)(nil)
