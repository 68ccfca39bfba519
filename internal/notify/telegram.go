// Package notify forwards new feedback to the administrators.
package notify

import (
	"context"
	"fmt"
	"time"

	"ereyga/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// Telegram posts feedback into a single admin chat
type Telegram struct {
	bot  *tele.Bot
	chat tele.ChatID
}

// NewTelegram creates a notifier. apiURL may be empty for the public Bot API.
func NewTelegram(token string, chatID int64, apiURL string) (*Telegram, error) {
	bot, err := tele.NewBot(tele.Settings{
		URL:     apiURL,
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chat: tele.ChatID(chatID)}, nil
}

// NotifyFeedback sends a short summary of the entry
func (t *Telegram) NotifyFeedback(ctx context.Context, fb domain.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.bot.Send(t.chat, FormatFeedback(fb)); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

// FormatFeedback renders the message body
func FormatFeedback(fb domain.Feedback) string {
	created := fb.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return fmt.Sprintf("New %s (%s UTC):\n%s", fb.Type, created.UTC().Format("2006-01-02 15:04"), fb.Message)
}

// Nop discards notifications
type Nop struct{}

func (Nop) NotifyFeedback(context.Context, domain.Feedback) error { return nil }
