package repository

import (
	"context"
	"database/sql"
	"fmt"
	"lol-tracker/internal/domain"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type OutcomeRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewOutcomeRepository(sqlDB *sql.DB, logger zerolog.Logger) *OutcomeRepository {
	return &OutcomeRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// RecordOutcome stores an evaluated match. A match already recorded for the
// same summoner is ignored.
func (r *OutcomeRepository) RecordOutcome(ctx context.Context, record domain.OutcomeRecord) error {
	id := record.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO match_outcomes (
			id, summoner_id, match_id, result, dimension,
			before_tier, before_division, before_points,
			after_tier, after_division, after_points,
			champion, score, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (summoner_id, match_id) DO NOTHING`,
		id,
		record.SummonerID,
		record.MatchID,
		record.Result,
		record.Dimension,
		int64(record.Before.Tier),
		int64(record.Before.Division),
		int64(record.Before.Points),
		int64(record.After.Tier),
		int64(record.After.Division),
		int64(record.After.Points),
		record.Champion,
		record.Score,
		createdAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("match_id", record.MatchID).Msg("failed to record outcome")
		return fmt.Errorf("failed to record outcome for match %s: %w", record.MatchID, err)
	}
	return nil
}

// ListBySummoner returns the most recent outcomes first.
func (r *OutcomeRepository) ListBySummoner(ctx context.Context, summonerID string, limit int) ([]domain.OutcomeRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, summoner_id, match_id, result, dimension,
			before_tier, before_division, before_points,
			after_tier, after_division, after_points,
			champion, score, created_at
		FROM match_outcomes
		WHERE summoner_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, summonerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list outcomes: %w", err)
	}
	defer rows.Close()

	var records []domain.OutcomeRecord
	for rows.Next() {
		var (
			rec                    domain.OutcomeRecord
			bt, bd, bp, at, ad, ap int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.SummonerID, &rec.MatchID, &rec.Result, &rec.Dimension,
			&bt, &bd, &bp,
			&at, &ad, &ap,
			&rec.Champion, &rec.Score, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		rec.Before = domain.RankState{Tier: domain.Tier(bt), Division: domain.Division(bd), Points: int(bp)}
		rec.After = domain.RankState{Tier: domain.Tier(at), Division: domain.Division(ad), Points: int(ap)}
		records = append(records, rec)
	}
	return records, rows.Err()
}
