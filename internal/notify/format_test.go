package notify

import (
	"lol-tracker/internal/domain"
	"lol-tracker/internal/ranking"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name        string
		outcome     ranking.Outcome
		title       string
		description string
		color       Color
	}{
		{
			name:        "points won",
			outcome:     ranking.Victory{Change: ranking.Change{Dimension: ranking.DimensionPoints, Points: 20}},
			title:       "VICTORY",
			description: "@kevin won +20 LP",
			color:       ColorGreen,
		},
		{
			name:        "points lost",
			outcome:     ranking.Defeat{Change: ranking.Change{Dimension: ranking.DimensionPoints, Points: 18}},
			title:       "DEFEAT",
			description: "@kevin lost -18 LP",
			color:       ColorRed,
		},
		{
			name:        "division won",
			outcome:     ranking.Victory{Change: ranking.Change{Dimension: ranking.DimensionDivision, Division: domain.DivisionI}},
			title:       "VICTORY",
			description: "@kevin climbed to division *I*",
			color:       ColorDarkGreen,
		},
		{
			name:        "division lost",
			outcome:     ranking.Defeat{Change: ranking.Change{Dimension: ranking.DimensionDivision, Division: domain.DivisionIII}},
			title:       "DEFEAT",
			description: "@kevin fell to division *III*",
			color:       ColorDarkRed,
		},
		{
			name:        "tier won",
			outcome:     ranking.Victory{Change: ranking.Change{Dimension: ranking.DimensionTier, Tier: domain.Silver}},
			title:       "VICTORY",
			description: "@kevin climbed to *SILVER*",
			color:       ColorGold,
		},
		{
			name:        "tier lost",
			outcome:     ranking.Defeat{Change: ranking.Change{Dimension: ranking.DimensionTier, Tier: domain.Silver}},
			title:       "DEFEAT",
			description: "@kevin fell to *SILVER*",
			color:       ColorBlack,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Format(tt.outcome, "@kevin", "Sett", "12/4/8")
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, tt.description, p.Description)
			assert.Equal(t, tt.color, p.Color)
			assert.Contains(t, p.Fields, Field{Name: "Champion", Value: "Sett"})
			assert.Contains(t, p.Fields, Field{Name: "KDA", Value: "12/4/8"})
		})
	}
}

func TestFormatZeroPointLoss(t *testing.T) {
	p := Format(ranking.Defeat{Change: ranking.Change{Dimension: ranking.DimensionPoints}}, "@kevin", "", "")
	assert.Equal(t, "DEFEAT", p.Title)
	assert.Equal(t, "@kevin lost -0 LP", p.Description)
	assert.Equal(t, []Field{{Name: "LP", Value: "*- 0 LP*"}}, p.Fields)
}

func TestFormatEscapesMarkdown(t *testing.T) {
	defeat := ranking.Defeat{Change: ranking.Change{Dimension: ranking.DimensionDivision, Division: domain.DivisionIII}}
	p := Format(defeat, "@[sk8]_", "Kai`Sa", "3/9/1")
	assert.Equal(t, "@\\[sk8]\\_ fell to division *III*", p.Description)
	assert.Contains(t, p.Fields, Field{Name: "Champion", Value: "Kai\\`Sa"})
	assert.Contains(t, p.Fields, Field{Name: "KDA", Value: "3/9/1"})
}

func TestFormatColorsAreDistinct(t *testing.T) {
	colors := map[Color]string{}
	for _, o := range []ranking.Outcome{
		ranking.Victory{Change: ranking.Change{Dimension: ranking.DimensionPoints, Points: 1}},
		ranking.Defeat{Change: ranking.Change{Dimension: ranking.DimensionPoints, Points: 1}},
		ranking.Victory{Change: ranking.Change{Dimension: ranking.DimensionDivision, Division: domain.DivisionI}},
		ranking.Defeat{Change: ranking.Change{Dimension: ranking.DimensionDivision, Division: domain.DivisionIV}},
		ranking.Victory{Change: ranking.Change{Dimension: ranking.DimensionTier, Tier: domain.Gold}},
		ranking.Defeat{Change: ranking.Change{Dimension: ranking.DimensionTier, Tier: domain.Iron}},
	} {
		p := Format(o, "x", "", "")
		_, dup := colors[p.Color]
		require.False(t, dup, "color %x reused", p.Color)
		colors[p.Color] = p.Title
	}
}

func TestFormatRemakePanics(t *testing.T) {
	assert.PanicsWithError(t, "format ranking.Remake: remake outcomes are not notified", func() {
		Format(ranking.Remake{}, "@kevin", "Sett", "1/2/3")
	})
}

func TestWithStanding(t *testing.T) {
	p := Payload{Title: "VICTORY", Fields: []Field{{Name: "Champion", Value: "Sett"}}}
	got := p.WithStanding("SILVER IV 15 LP")
	assert.Equal(t, []Field{{Name: "Champion", Value: "Sett"}, {Name: "Rank", Value: "SILVER IV 15 LP"}}, got.Fields)
	assert.Len(t, p.Fields, 1)
	assert.Equal(t, p, p.WithStanding(""))
}
