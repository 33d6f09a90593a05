package poller

import (
	"context"
	"errors"
	"fmt"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/notify"
	"lol-tracker/internal/repository"
	"lol-tracker/internal/tracker"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type StateStore interface {
	Get(ctx context.Context, summonerID string) (*domain.TrackedPlayer, error)
	Upsert(ctx context.Context, player domain.TrackedPlayer) error
}

// Poller runs a cycle for every tracker on a fixed interval, delivers the
// resulting notifications and saves each tracker's state afterwards.
type Poller struct {
	trackers []*tracker.Tracker
	sink     notify.Sink
	store    StateStore
	interval time.Duration
	logger   zerolog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func New(trackers []*tracker.Tracker, sink notify.Sink, store StateStore, interval time.Duration, logger zerolog.Logger) *Poller {
	return &Poller{
		trackers: trackers,
		sink:     sink,
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "poller").Logger(),
	}
}

// Restore loads saved state into every tracker and creates rows for players
// seen for the first time.
func (p *Poller) Restore(ctx context.Context) error {
	for _, tr := range p.trackers {
		saved, err := p.store.Get(ctx, tr.SummonerID())
		switch {
		case errors.Is(err, repository.ErrNotFound):
			if err := p.store.Upsert(ctx, tr.Snapshot()); err != nil {
				return fmt.Errorf("failed to create player %s: %w", tr.SummonerID(), err)
			}
			p.logger.Info().Str("summoner_id", tr.SummonerID()).Msg("tracking new player")
		case err != nil:
			return fmt.Errorf("failed to restore player %s: %w", tr.SummonerID(), err)
		default:
			tr.Restore(*saved)
			p.logger.Info().
				Str("summoner_id", tr.SummonerID()).
				Str("rank", saved.Rank.String()).
				Str("last_match_id", saved.LastMatchID).
				Msg("player state restored")
		}
	}
	return nil
}

func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.RunCycle(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.RunCycle(ctx)
			}
		}
	}()
}

func (p *Poller) Stop() {
	p.once.Do(func() {
		if p.cancel != nil {
			p.cancel()
			<-p.done
		}
	})
}

// RunCycle polls every tracker once, concurrently. A failing tracker never
// affects the others.
func (p *Poller) RunCycle(ctx context.Context) {
	start := time.Now()
	g := new(errgroup.Group)

	for _, tr := range p.trackers {
		g.Go(func() error {
			return p.poll(ctx, tr)
		})
	}

	if err := g.Wait(); err != nil {
		p.logger.Error().Err(err).Msg("polling cycle finished with errors")
	}
	p.logger.Debug().Int("trackers", len(p.trackers)).Dur("duration", time.Since(start)).Msg("polling cycle done")
}

func (p *Poller) poll(ctx context.Context, tr *tracker.Tracker) error {
	cycleCtx, cancel := context.WithTimeout(ctx, constants.CycleTimeout)
	defer cancel()

	payload := tr.RefreshAndEvaluate(cycleCtx)

	var errs []error

	dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer dbCancel()
	if err := p.store.Upsert(dbCtx, tr.Snapshot()); err != nil {
		errs = append(errs, fmt.Errorf("failed to save %s: %w", tr.SummonerID(), err))
	}

	if payload != nil {
		if err := p.sink.Send(ctx, *payload); err != nil {
			errs = append(errs, fmt.Errorf("failed to notify for %s: %w", tr.SummonerID(), err))
		} else {
			p.logger.Info().Str("summoner_id", tr.SummonerID()).Str("title", payload.Title).Msg("notification delivered")
		}
	}
	return errors.Join(errs...)
}
