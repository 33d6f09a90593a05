package poller

import (
	"context"
	"errors"
	"lol-tracker/internal/config"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/notify"
	"lol-tracker/internal/repository"
	"lol-tracker/internal/tracker"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	profileErr error
	matchID    string
	entry      domain.RankEntry
}

func (f *fakeSource) FetchProfile(ctx context.Context, summonerID string) (*domain.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return &domain.Profile{SummonerID: summonerID, Puuid: "puuid-" + summonerID}, nil
}

func (f *fakeSource) FetchLatestRankedMatchID(ctx context.Context, puuid string) (string, error) {
	return f.matchID, nil
}

func (f *fakeSource) FetchRankEntries(ctx context.Context, summonerID string) ([]domain.RankEntry, error) {
	return []domain.RankEntry{f.entry}, nil
}

func (f *fakeSource) FetchMatchDetail(ctx context.Context, matchID string) (*domain.MatchDetail, error) {
	return &domain.MatchDetail{MatchID: matchID, Participants: []domain.Participant{
		{Puuid: "puuid-sum-1", ChampionName: "Sett", Kills: 12, Deaths: 4, Assists: 8},
		{Puuid: "puuid-sum-2", ChampionName: "Ahri", Kills: 2, Deaths: 6, Assists: 4},
	}}, nil
}

type fakeSink struct {
	mu   sync.Mutex
	sent []notify.Payload
	err  error
}

func (s *fakeSink) Send(ctx context.Context, p notify.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, p)
	return nil
}

type fakeStore struct {
	mu      sync.Mutex
	players map[string]domain.TrackedPlayer
}

func newStore() *fakeStore {
	return &fakeStore{players: map[string]domain.TrackedPlayer{}}
}

func (s *fakeStore) Get(ctx context.Context, summonerID string) (*domain.TrackedPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[summonerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *fakeStore) Upsert(ctx context.Context, player domain.TrackedPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.SummonerID] = player
	return nil
}

func newTracker(id, handle string, source tracker.RankDataSource) *tracker.Tracker {
	return tracker.New(config.TrackedSummoner{SummonerID: id, Handle: handle}, source, zerolog.Nop())
}

func TestRestore(t *testing.T) {
	store := newStore()
	store.players["sum-1"] = domain.TrackedPlayer{
		SummonerID:  "sum-1",
		Handle:      "@kevin",
		Rank:        domain.RankState{Tier: domain.Gold, Division: domain.DivisionII, Points: 30},
		LastMatchID: "m9",
	}
	kevin := newTracker("sum-1", "@kevin", &fakeSource{})
	lucie := newTracker("sum-2", "@lucie", &fakeSource{})
	p := New([]*tracker.Tracker{kevin, lucie}, &fakeSink{}, store, time.Minute, zerolog.Nop())

	require.NoError(t, p.Restore(context.Background()))

	assert.Equal(t, "m9", kevin.Snapshot().LastMatchID)
	assert.Equal(t, domain.Gold, kevin.Snapshot().Rank.Tier)
	_, ok := store.players["sum-2"]
	assert.True(t, ok)
}

func TestRunCycle(t *testing.T) {
	store := newStore()
	sink := &fakeSink{}

	winner := newTracker("sum-1", "@kevin", &fakeSource{
		matchID: "m1",
		entry:   domain.RankEntry{QueueType: domain.QueueSoloDuo, Tier: domain.Silver, Division: domain.DivisionIV, Points: 15},
	})
	winner.Restore(domain.TrackedPlayer{Rank: domain.RankState{Tier: domain.Bronze, Division: domain.DivisionI, Points: 95}, LastMatchID: "m0"})

	broken := newTracker("sum-2", "@lucie", &fakeSource{profileErr: errors.New("503")})

	p := New([]*tracker.Tracker{winner, broken}, sink, store, time.Minute, zerolog.Nop())
	p.RunCycle(context.Background())

	require.Len(t, sink.sent, 1)
	assert.Equal(t, "VICTORY", sink.sent[0].Title)
	assert.Contains(t, sink.sent[0].Description, "SILVER")

	assert.Equal(t, "m1", store.players["sum-1"].LastMatchID)
	assert.Equal(t, domain.Silver, store.players["sum-1"].Rank.Tier)
	assert.Contains(t, store.players, "sum-2")

	// nothing new on the next cycle
	p.RunCycle(context.Background())
	assert.Len(t, sink.sent, 1)
}

func TestRunCycleSinkFailureStillSavesState(t *testing.T) {
	store := newStore()
	sink := &fakeSink{err: errors.New("telegram down")}

	tr := newTracker("sum-1", "@kevin", &fakeSource{
		matchID: "m1",
		entry:   domain.RankEntry{QueueType: domain.QueueSoloDuo, Tier: domain.Gold, Division: domain.DivisionII, Points: 50},
	})
	tr.Restore(domain.TrackedPlayer{Rank: domain.RankState{Tier: domain.Gold, Division: domain.DivisionII, Points: 30}, LastMatchID: "m0"})

	p := New([]*tracker.Tracker{tr}, sink, store, time.Minute, zerolog.Nop())
	p.RunCycle(context.Background())

	assert.Equal(t, "m1", store.players["sum-1"].LastMatchID)
	assert.Equal(t, 50, store.players["sum-1"].Rank.Points)
}

func TestStartStop(t *testing.T) {
	store := newStore()
	tr := newTracker("sum-1", "@kevin", &fakeSource{matchID: "m0"})
	p := New([]*tracker.Tracker{tr}, &fakeSink{}, store, time.Hour, zerolog.Nop())

	p.Start(context.Background())
	assert.Eventually(t, func() bool {
		_, err := store.Get(context.Background(), "sum-1")
		return err == nil
	}, time.Second, 10*time.Millisecond)
	p.Stop()
	p.Stop()
}
