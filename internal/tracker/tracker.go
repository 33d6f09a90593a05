package tracker

import (
	"context"
	"fmt"
	"lol-tracker/internal/config"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/notify"
	"lol-tracker/internal/ranking"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RankDataSource is the ranking service as seen by a tracker. Any error,
// including absent data, aborts the current cycle.
type RankDataSource interface {
	FetchProfile(ctx context.Context, summonerID string) (*domain.Profile, error)
	FetchLatestRankedMatchID(ctx context.Context, puuid string) (string, error)
	FetchRankEntries(ctx context.Context, summonerID string) ([]domain.RankEntry, error)
	FetchMatchDetail(ctx context.Context, matchID string) (*domain.MatchDetail, error)
}

// OutcomeRecorder receives every evaluated match, remakes included.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, record domain.OutcomeRecord) error
}

type Option func(*Tracker)

func WithRecorder(r OutcomeRecorder) Option {
	return func(t *Tracker) {
		t.recorder = r
	}
}

// Tracker follows one player's solo queue standing across polls.
type Tracker struct {
	source   RankDataSource
	recorder OutcomeRecorder
	logger   zerolog.Logger

	// serializes cycles
	cycleMu sync.Mutex

	mu    sync.RWMutex
	state domain.TrackedPlayer
}

func New(summoner config.TrackedSummoner, source RankDataSource, logger zerolog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		source: source,
		logger: logger.With().Str("summoner_id", summoner.SummonerID).Str("handle", summoner.Handle).Logger(),
		state: domain.TrackedPlayer{
			SummonerID: summoner.SummonerID,
			Handle:     summoner.Handle,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) SummonerID() string {
	return t.state.SummonerID
}

func (t *Tracker) Snapshot() domain.TrackedPlayer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Restore seeds the tracker with previously persisted state. The summoner id
// and handle are kept from construction.
func (t *Tracker) Restore(saved domain.TrackedPlayer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Puuid = saved.Puuid
	t.state.Name = saved.Name
	t.state.Rank = saved.Rank
	t.state.LastMatchID = saved.LastMatchID
	t.state.CreatedAt = saved.CreatedAt
	t.state.UpdatedAt = saved.UpdatedAt
}

// TotalRank renders the player's current standing, e.g. "@kevin is *GOLD II* 30 LP".
func (t *Tracker) TotalRank() string {
	s := t.Snapshot()
	return fmt.Sprintf("%s is *%s* %d LP", s.Handle, s.Rank.Label(), s.Rank.Points)
}

func (t *Tracker) commit(update func(s *domain.TrackedPlayer)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	update(&t.state)
	t.state.UpdatedAt = time.Now()
}

// RefreshAndEvaluate runs one polling cycle and returns the notification for
// the player's latest ranked match, or nil when there is nothing to report.
//
// Every fetched value is committed as soon as it is loaded, so a cycle that
// fails halfway keeps what it already learned.
func (t *Tracker) RefreshAndEvaluate(ctx context.Context) *notify.Payload {
	t.cycleMu.Lock()
	defer t.cycleMu.Unlock()

	previous := t.Snapshot()

	profile, err := t.source.FetchProfile(ctx, previous.SummonerID)
	if err != nil {
		t.logger.Warn().Err(err).Msg("failed to fetch profile")
		return nil
	}
	t.commit(func(s *domain.TrackedPlayer) {
		s.Puuid = profile.Puuid
		if profile.Name != "" {
			s.Name = profile.Name
		}
	})

	matchID, err := t.source.FetchLatestRankedMatchID(ctx, profile.Puuid)
	if err != nil {
		t.logger.Warn().Err(err).Str("puuid", profile.Puuid).Msg("failed to fetch latest ranked match")
		return nil
	}
	t.commit(func(s *domain.TrackedPlayer) {
		s.LastMatchID = matchID
	})

	if matchID == previous.LastMatchID {
		t.logger.Debug().Str("match_id", matchID).Msg("no new ranked match")
		return nil
	}

	log := t.logger.With().Str("match_id", matchID).Logger()

	entries, err := t.source.FetchRankEntries(ctx, previous.SummonerID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to fetch rank entries")
		return nil
	}
	entry, ok := soloQueue(entries)
	if !ok {
		log.Info().Int("entries", len(entries)).Msg("player is unranked in solo queue")
		return nil
	}
	current := entry.State()
	t.commit(func(s *domain.TrackedPlayer) {
		s.Rank = current
	})

	outcome := ranking.Compare(previous.Rank, current)
	log.Info().
		Str("previous", previous.Rank.String()).
		Str("current", current.String()).
		Str("result", outcome.Result()).
		Str("dimension", ranking.DimensionOf(outcome)).
		Msg("match evaluated")

	record := domain.OutcomeRecord{
		SummonerID: previous.SummonerID,
		MatchID:    matchID,
		Result:     outcome.Result(),
		Dimension:  ranking.DimensionOf(outcome),
		Before:     previous.Rank,
		After:      current,
	}

	if _, ok := outcome.(ranking.Remake); ok {
		t.record(ctx, record)
		return nil
	}

	detail, err := t.source.FetchMatchDetail(ctx, matchID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to fetch match detail")
		return nil
	}
	participant, ok := detail.Find(profile.Puuid)
	if !ok {
		log.Warn().Int("participants", len(detail.Participants)).Msg("player not found among match participants")
		return nil
	}

	record.Champion = participant.ChampionName
	record.Score = participant.Score()
	t.record(ctx, record)

	payload := notify.Format(outcome, previous.Handle, participant.ChampionName, participant.Score()).
		WithStanding(current.String())
	return &payload
}

func (t *Tracker) record(ctx context.Context, record domain.OutcomeRecord) {
	if t.recorder == nil {
		return
	}
	if err := t.recorder.RecordOutcome(ctx, record); err != nil {
		t.logger.Warn().Err(err).Str("match_id", record.MatchID).Msg("failed to record outcome")
	}
}

func soloQueue(entries []domain.RankEntry) (domain.RankEntry, bool) {
	for _, e := range entries {
		if e.QueueType == domain.QueueSoloDuo {
			return e, true
		}
	}
	return domain.RankEntry{}, false
}
