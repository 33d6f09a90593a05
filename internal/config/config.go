package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAPIKey       string
	RiotPlatformURL  string
	RiotRegionalURL  string
	TelegramToken    string
	TelegramChatIDs  []int64
	TrackedSummoners []TrackedSummoner
	PollInterval     time.Duration
	DBPath           string
	ServerPort       string
	LogLevel         string
}

// TrackedSummoner pairs a ladder summoner id with the handle used in
// notifications.
type TrackedSummoner struct {
	SummonerID string
	Handle     string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	pollInterval, err := time.ParseDuration(getEnv("POLL_INTERVAL", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
	}

	chatIDs, err := parseChatIDs(getEnv("TELEGRAM_CHAT_IDS", ""))
	if err != nil {
		return nil, err
	}

	summoners, err := parseSummoners(getEnv("TRACKED_SUMMONERS", ""))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RiotAPIKey:       getEnv("RIOT_API_KEY", ""),
		RiotPlatformURL:  getEnv("RIOT_PLATFORM_URL", "https://euw1.api.riotgames.com/lol"),
		RiotRegionalURL:  getEnv("RIOT_REGIONAL_URL", "https://europe.api.riotgames.com/lol"),
		TelegramToken:    getEnv("TELEGRAM_APITOKEN", ""),
		TelegramChatIDs:  chatIDs,
		TrackedSummoners: summoners,
		PollInterval:     pollInterval,
		DBPath:           getEnv("DB_PATH", "tracker.db"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_APITOKEN is required")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("poll_interval", cfg.PollInterval).
		Int("tracked_summoners", len(cfg.TrackedSummoners)).
		Int("chats", len(cfg.TelegramChatIDs)).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseChatIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseSummoners reads "summonerId:handle" pairs separated by commas.
func parseSummoners(raw string) ([]TrackedSummoner, error) {
	var out []TrackedSummoner
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, handle, ok := strings.Cut(part, ":")
		if !ok || id == "" || handle == "" {
			return nil, fmt.Errorf("invalid tracked summoner %q, want summonerId:handle", part)
		}
		out = append(out, TrackedSummoner{SummonerID: id, Handle: handle})
	}
	return out, nil
}

var Module = fx.Provide(Load)
