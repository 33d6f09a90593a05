package fx

import (
	"lol-tracker/internal/api"
	"lol-tracker/internal/config"
	"lol-tracker/internal/database"
	"lol-tracker/internal/logger"
	"lol-tracker/internal/notify"
	"lol-tracker/internal/poller"
	"lol-tracker/internal/repository"
	"lol-tracker/internal/server"
	"lol-tracker/internal/tracker"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideTrackers(cfg *config.Config, riot *api.RiotClient, outcomes *repository.OutcomeRepository, logger zerolog.Logger) []*tracker.Tracker {
	trackers := make([]*tracker.Tracker, 0, len(cfg.TrackedSummoners))
	for _, s := range cfg.TrackedSummoners {
		trackers = append(trackers, tracker.New(s, riot, logger, tracker.WithRecorder(outcomes)))
	}
	return trackers
}

func ProvidePoller(cfg *config.Config, trackers []*tracker.Tracker, sink notify.Sink, players *repository.PlayerRepository, logger zerolog.Logger) *poller.Poller {
	return poller.New(trackers, sink, players, cfg.PollInterval, logger)
}

func ProvideStatusServer(trackers []*tracker.Tracker, outcomes *repository.OutcomeRepository, logger zerolog.Logger) *server.StatusServer {
	return server.NewStatusServer(trackers, outcomes, logger)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewOutcomeRepository),
	// ranking service client
	fx.Provide(api.NewRiotClient),
	// notifications
	fx.Provide(fx.Annotate(notify.NewTelegramSink, fx.As(new(notify.Sink)))),
	// tracking
	fx.Provide(ProvideTrackers),
	fx.Provide(ProvidePoller),
	// server
	fx.Provide(ProvideStatusServer),
	fx.Invoke(logger.ApplyLevel),
)
