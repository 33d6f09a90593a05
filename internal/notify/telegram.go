package notify

import (
	"context"
	"fmt"
	"lol-tracker/internal/config"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Sink delivers a payload to wherever players follow the ladder.
type Sink interface {
	Send(ctx context.Context, p Payload) error
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramSink struct {
	bot    sender
	chats  mapset.Set[int64]
	logger zerolog.Logger
}

func NewTelegramSink(cfg *config.Config, logger zerolog.Logger) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = cfg.LogLevel == "debug"

	return newTelegramSink(bot, cfg.TelegramChatIDs, logger), nil
}

func newTelegramSink(bot sender, chatIDs []int64, logger zerolog.Logger) *TelegramSink {
	return &TelegramSink{
		bot:    bot,
		chats:  mapset.NewSet(chatIDs...),
		logger: logger.With().Str("component", "telegram").Logger(),
	}
}

func (s *TelegramSink) Send(ctx context.Context, p Payload) error {
	text := Render(p)
	for _, chatID := range s.chats.ToSlice() {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := s.bot.Send(msg); err != nil {
			s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send notification")
			return fmt.Errorf("failed to send to chat %d: %w", chatID, err)
		}
		s.logger.Debug().Int64("chat_id", chatID).Str("title", p.Title).Msg("notification sent")
	}
	return nil
}

// Render lays a payload out as a Markdown chat message.
func Render(p Payload) string {
	var buf strings.Builder
	buf.WriteString(colorMarker(p.Color))
	buf.WriteString(" *")
	buf.WriteString(p.Title)
	buf.WriteString("*\n")
	buf.WriteString(p.Description)
	for _, f := range p.Fields {
		buf.WriteString("\n")
		buf.WriteString(f.Name)
		buf.WriteString(": ")
		buf.WriteString(f.Value)
	}
	return buf.String()
}

func colorMarker(c Color) string {
	switch c {
	case ColorGreen:
		return "🟢"
	case ColorRed:
		return "🔴"
	case ColorDarkGreen:
		return "⬆️"
	case ColorDarkRed:
		return "⬇️"
	case ColorGold:
		return "🏆"
	case ColorBlack:
		return "💀"
	}
	return "•"
}
