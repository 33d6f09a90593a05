package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"lol-tracker/internal/domain"
	"time"

	"github.com/rs/zerolog"
)

var ErrNotFound = errors.New("not found")

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const playerColumns = `summoner_id, handle, puuid, name, tier, division, league_points, last_match_id, created_at, updated_at`

func (r *PlayerRepository) Get(ctx context.Context, summonerID string) (*domain.TrackedPlayer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM tracked_players WHERE summoner_id = ?`, summonerID)
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", summonerID, err)
	}
	return player, nil
}

// Upsert stores the player's latest state. created_at is kept from the first
// insert.
func (r *PlayerRepository) Upsert(ctx context.Context, player domain.TrackedPlayer) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tracked_players (`+playerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (summoner_id) DO UPDATE SET
			handle = excluded.handle,
			puuid = excluded.puuid,
			name = excluded.name,
			tier = excluded.tier,
			division = excluded.division,
			league_points = excluded.league_points,
			last_match_id = excluded.last_match_id,
			updated_at = excluded.updated_at`,
		player.SummonerID,
		player.Handle,
		player.Puuid,
		player.Name,
		int64(player.Rank.Tier),
		int64(player.Rank.Division),
		int64(player.Rank.Points),
		player.LastMatchID,
		now,
		now,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("summoner_id", player.SummonerID).Msg("failed to upsert player")
		return fmt.Errorf("failed to upsert player %s: %w", player.SummonerID, err)
	}

	r.logger.Debug().
		Str("summoner_id", player.SummonerID).
		Str("rank", player.Rank.String()).
		Str("last_match_id", player.LastMatchID).
		Msg("player state saved")
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(s scanner) (*domain.TrackedPlayer, error) {
	var (
		p                      domain.TrackedPlayer
		tier, division, points int64
	)
	err := s.Scan(
		&p.SummonerID,
		&p.Handle,
		&p.Puuid,
		&p.Name,
		&tier,
		&division,
		&points,
		&p.LastMatchID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Rank = domain.RankState{
		Tier:     domain.Tier(tier),
		Division: domain.Division(division),
		Points:   int(points),
	}
	return &p, nil
}
