package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	"net/url"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
)

var ErrNotFound = errors.New("not found")

type RiotClient struct {
	apiKey      string
	platformURL string
	regionalURL string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

// RateLimitInfo mirrors the application rate limit headers, e.g.
// "20:1,100:120" for the limit and "3:1,41:120" for the count.
type RateLimitInfo struct {
	Limit      string    `json:"limit"`
	Count      string    `json:"count"`
	RetryAfter string    `json:"retry_after"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewRiotClient(cfg *config.Config) *RiotClient {
	return &RiotClient{
		apiKey:      cfg.RiotAPIKey,
		platformURL: cfg.RiotPlatformURL,
		regionalURL: cfg.RiotRegionalURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		rateLimit: RateLimitInfo{
			Limit:     "20:1,100:120",
			UpdatedAt: time.Now(),
		},
	}
}

func (c *RiotClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *RiotClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-App-Rate-Limit")); limit != "" {
		c.rateLimit.Limit = limit
	}
	if count := string(resp.Header.Peek("X-App-Rate-Limit-Count")); count != "" {
		c.rateLimit.Count = count
	}
	c.rateLimit.RetryAfter = string(resp.Header.Peek("Retry-After"))
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *RiotClient) GetSummoner(ctx context.Context, summonerID string) (*SummonerResponse, error) {
	u := fmt.Sprintf("%s/summoner/v4/summoners/%s", c.platformURL, url.PathEscape(summonerID))
	return doRequest[SummonerResponse](ctx, c, u)
}

func (c *RiotClient) GetRankedMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	u := fmt.Sprintf("%s/match/v5/matches/by-puuid/%s/ids?queue=%d&type=ranked&start=0&count=%d",
		c.regionalURL, url.PathEscape(puuid), constants.SoloQueueID, count)
	ids, err := doRequest[[]string](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *RiotClient) GetLeagueEntries(ctx context.Context, summonerID string) ([]LeagueEntry, error) {
	u := fmt.Sprintf("%s/league/v4/entries/by-summoner/%s", c.platformURL, url.PathEscape(summonerID))
	entries, err := doRequest[[]LeagueEntry](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *RiotClient) GetMatch(ctx context.Context, matchID string) (*MatchResponse, error) {
	u := fmt.Sprintf("%s/match/v5/matches/%s", c.regionalURL, url.PathEscape(matchID))
	return doRequest[MatchResponse](ctx, c, u)
}

func doRequest[T any](ctx context.Context, client *RiotClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", client.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type SummonerResponse struct {
	Puuid string `json:"puuid"`
	Name  string `json:"name"`
}

type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
}

type MatchResponse struct {
	Info struct {
		Participants []struct {
			Puuid        string `json:"puuid"`
			ChampionName string `json:"championName"`
			Kills        int    `json:"kills"`
			Deaths       int    `json:"deaths"`
			Assists      int    `json:"assists"`
		} `json:"participants"`
	} `json:"info"`
}
