package activity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
)

var ErrServiceUnavailable = errors.New("activity service unavailable")

// Service is the gateway to the external activity tracking service.
// Reads fall back to cached stats; writes are fire-and-forget.
type Service interface {
	GetUserActivityStats(ctx context.Context, userID int64) (*Stats, error)
	LogUserActivity(ctx context.Context, userID int64, entry *LogEntry)
}

type httpService struct {
	baseURL  string
	client   *http.Client
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewHTTPService builds the HTTP-backed activity client. redisClient may be
// nil; stats are then never cached.
func NewHTTPService(baseURL string, timeout time.Duration, redisClient *redis.Client) Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpService{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		redis:    redisClient,
		cacheTTL: 10 * time.Minute,
	}
}

func statsCacheKey(userID int64) string {
	return fmt.Sprintf("activity:stats:%d", userID)
}

func (s *httpService) GetUserActivityStats(ctx context.Context, userID int64) (*Stats, error) {
	url := fmt.Sprintf("%s/internal/users/%d/stats", s.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return s.cachedStats(ctx, userID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.cachedStats(ctx, userID, fmt.Errorf("activity service returned %d", resp.StatusCode))
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return s.cachedStats(ctx, userID, err)
	}

	s.cacheStats(ctx, userID, &stats)
	return &stats, nil
}

// cachedStats serves the last known stats when the upstream call failed
func (s *httpService) cachedStats(ctx context.Context, userID int64, cause error) (*Stats, error) {
	if s.redis == nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, cause)
	}

	payload, err := s.redis.Get(ctx, statsCacheKey(userID)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, cause)
	}

	var stats Stats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, cause)
	}

	log.Printf("activity: serving cached stats for user %d (upstream: %v)", userID, cause)
	return &stats, nil
}

func (s *httpService) cacheStats(ctx context.Context, userID int64, stats *Stats) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, statsCacheKey(userID), payload, s.cacheTTL).Err(); err != nil {
		log.Printf("activity: caching stats for user %d failed: %v", userID, err)
	}
}

// LogUserActivity pushes an activity event in the background. Failures are
// logged and never surface to the caller.
func (s *httpService) LogUserActivity(ctx context.Context, userID int64, entry *LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	go func() {
		payload, err := json.Marshal(entry)
		if err != nil {
			log.Printf("activity: marshaling log entry for user %d: %v", userID, err)
			return
		}

		bgCtx, cancel := context.WithTimeout(context.Background(), s.client.Timeout)
		defer cancel()

		url := fmt.Sprintf("%s/internal/users/%d/activities", s.baseURL, userID)
		req, err := http.NewRequestWithContext(bgCtx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			log.Printf("activity: building log request for user %d: %v", userID, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			log.Printf("activity: logging activity for user %d failed: %v", userID, err)
			return
		}
		resp.Body.Close()
	}()
}
