package constants

import "time"

const (
	// SoloQueueID is the match-v5 queue id of ranked solo/duo.
	SoloQueueID = 420
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	CycleTimeout       = 45 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	OutcomeHistoryLimit = 20
)
