package api

import (
	"context"
	"lol-tracker/internal/domain"
)

// The methods below convert Riot payloads into domain values for the
// tracker. Absent data is reported as ErrNotFound.

func (c *RiotClient) FetchProfile(ctx context.Context, summonerID string) (*domain.Profile, error) {
	s, err := c.GetSummoner(ctx, summonerID)
	if err != nil {
		return nil, err
	}
	if s.Puuid == "" {
		return nil, ErrNotFound
	}
	return &domain.Profile{SummonerID: summonerID, Puuid: s.Puuid, Name: s.Name}, nil
}

func (c *RiotClient) FetchLatestRankedMatchID(ctx context.Context, puuid string) (string, error) {
	ids, err := c.GetRankedMatchIDs(ctx, puuid, 1)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 || ids[0] == "" {
		return "", ErrNotFound
	}
	return ids[0], nil
}

func (c *RiotClient) FetchRankEntries(ctx context.Context, summonerID string) ([]domain.RankEntry, error) {
	entries, err := c.GetLeagueEntries(ctx, summonerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RankEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toRankEntry(e))
	}
	return out, nil
}

func (c *RiotClient) FetchMatchDetail(ctx context.Context, matchID string) (*domain.MatchDetail, error) {
	m, err := c.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	detail := &domain.MatchDetail{MatchID: matchID}
	for _, p := range m.Info.Participants {
		detail.Participants = append(detail.Participants, domain.Participant{
			Puuid:        p.Puuid,
			ChampionName: p.ChampionName,
			Kills:        p.Kills,
			Deaths:       p.Deaths,
			Assists:      p.Assists,
		})
	}
	return detail, nil
}

func toRankEntry(e LeagueEntry) domain.RankEntry {
	points := e.LeaguePoints
	if points < 0 {
		points = 0
	}
	tier := domain.ParseTier(e.Tier)
	division := domain.ParseDivision(e.Rank)
	if tier == domain.Unranked {
		division = domain.NoDivision
	}
	return domain.RankEntry{
		QueueType: e.QueueType,
		Tier:      tier,
		Division:  division,
		Points:    points,
	}
}
