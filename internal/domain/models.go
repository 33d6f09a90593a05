package domain

import (
	"fmt"
	"time"
)

const QueueSoloDuo = "RANKED_SOLO_5x5"

type Profile struct {
	SummonerID string
	Puuid      string
	Name       string
}

type RankEntry struct {
	QueueType string
	Tier      Tier
	Division  Division
	Points    int
}

func (e RankEntry) State() RankState {
	return RankState{Tier: e.Tier, Division: e.Division, Points: e.Points}
}

type MatchDetail struct {
	MatchID      string
	Participants []Participant
}

type Participant struct {
	Puuid        string
	ChampionName string
	Kills        int
	Deaths       int
	Assists      int
}

// Score renders the kill/death/assist line.
func (p Participant) Score() string {
	return fmt.Sprintf("%d/%d/%d", p.Kills, p.Deaths, p.Assists)
}

// Find returns the participant with the given puuid.
func (m *MatchDetail) Find(puuid string) (Participant, bool) {
	for _, p := range m.Participants {
		if p.Puuid == puuid {
			return p, true
		}
	}
	return Participant{}, false
}

// TrackedPlayer is the persisted form of a tracker's state.
type TrackedPlayer struct {
	SummonerID  string
	Handle      string
	Puuid       string
	Name        string
	Rank        RankState
	LastMatchID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OutcomeRecord is one evaluated match in a player's history.
type OutcomeRecord struct {
	ID         string // nanoid
	SummonerID string
	MatchID    string
	Result     string // "VICTORY", "DEFEAT", "REMAKE"
	Dimension  string // "TIER", "DIVISION", "POINTS" or empty
	Before     RankState
	After      RankState
	Champion   string
	Score      string
	CreatedAt  time.Time
}
