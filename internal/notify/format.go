package notify

import (
	"errors"
	"fmt"
	"lol-tracker/internal/ranking"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrRemakeNotFormattable = errors.New("remake outcomes are not notified")

type Color int

const (
	ColorGreen     Color = 0x57F287
	ColorRed       Color = 0xED4245
	ColorDarkGreen Color = 0x1F8B4C
	ColorDarkRed   Color = 0x992D22
	ColorGold      Color = 0xF1C40F
	ColorBlack     Color = 0x23272A
)

type Field struct {
	Name  string
	Value string
}

type Payload struct {
	Title       string
	Description string
	Color       Color
	Fields      []Field
}

// Format builds the notification for a won or lost match. Text is Markdown;
// handle, champion and score are escaped. Passing a Remake is a programming
// error and panics with ErrRemakeNotFormattable.
func Format(outcome ranking.Outcome, handle, champion, score string) Payload {
	var (
		p      Payload
		change ranking.Change
		won    bool
	)
	switch o := outcome.(type) {
	case ranking.Victory:
		change, won = o.Change, true
	case ranking.Defeat:
		change = o.Change
	default:
		panic(fmt.Errorf("format %T: %w", outcome, ErrRemakeNotFormattable))
	}
	p.Title = outcome.Result()
	handle = escape(handle)

	switch change.Dimension {
	case ranking.DimensionPoints:
		if won {
			p.Description = fmt.Sprintf("%s won +%d LP", handle, change.Points)
			p.Color = ColorGreen
			p.Fields = append(p.Fields, Field{Name: "LP", Value: fmt.Sprintf("*+ %d LP*", change.Points)})
		} else {
			p.Description = fmt.Sprintf("%s lost -%d LP", handle, change.Points)
			p.Color = ColorRed
			p.Fields = append(p.Fields, Field{Name: "LP", Value: fmt.Sprintf("*- %d LP*", change.Points)})
		}
	case ranking.DimensionDivision:
		if won {
			p.Description = fmt.Sprintf("%s climbed to division *%s*", handle, change.Division)
			p.Color = ColorDarkGreen
		} else {
			p.Description = fmt.Sprintf("%s fell to division *%s*", handle, change.Division)
			p.Color = ColorDarkRed
		}
	case ranking.DimensionTier:
		if won {
			p.Description = fmt.Sprintf("%s climbed to *%s*", handle, change.Tier)
			p.Color = ColorGold
		} else {
			p.Description = fmt.Sprintf("%s fell to *%s*", handle, change.Tier)
			p.Color = ColorBlack
		}
	}

	if champion != "" {
		p.Fields = append(p.Fields, Field{Name: "Champion", Value: escape(champion)})
	}
	if score != "" {
		p.Fields = append(p.Fields, Field{Name: "KDA", Value: escape(score)})
	}
	return p
}

// WithStanding appends the player's full standing after the match.
func (p Payload) WithStanding(standing string) Payload {
	if standing == "" {
		return p
	}
	fields := make([]Field, 0, len(p.Fields)+1)
	fields = append(fields, p.Fields...)
	p.Fields = append(fields, Field{Name: "Rank", Value: escape(standing)})
	return p
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}
