package kokkai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/kapu/kokkai-giin-go/internal/constants"
	"github.com/kapu/kokkai-giin-go/internal/service/cache"
	"github.com/kapu/kokkai-giin-go/internal/util"
	"github.com/kapu/kokkai-giin-go/pkg/errors"
)

const (
	endpointSpeech  = "speech"
	endpointMeeting = "meeting"
)

// ResponseCache is the subset of the Redis cache the client needs.
type ResponseCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Ping(ctx context.Context) error
}

const (
	CacheDisabled    = "disabled"
	CacheOK          = "ok"
	CacheUnavailable = "unavailable"
)

// Health is the proxy's view of its upstream and cache.
type Health struct {
	Breaker util.CircuitBreakerStatus `json:"breaker"`
	Cache   string                    `json:"cache"`
}

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client proxies searches to the Diet proceedings API (国会会議録検索システム).
// Responses are returned as the upstream JSON, unchanged.
type Client struct {
	http     *resty.Client
	cache    ResponseCache
	cacheTTL time.Duration
	breaker  *util.CircuitBreaker
	logger   *zap.Logger
}

// NewClient builds a client. cache may be nil.
func NewClient(cfg Config, responseCache ResponseCache, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.KokkaiAPI.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.KokkaiAPI.RequestTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     client,
		cache:    responseCache,
		cacheTTL: cfg.CacheTTL,
		breaker: util.NewCircuitBreaker("kokkai",
			constants.CircuitBreakerConfig.FailureThreshold,
			constants.CircuitBreakerConfig.ResetTimeout,
			logger),
		logger: logger,
	}
}

func (c *Client) SearchSpeeches(ctx context.Context, query SpeechQuery) (json.RawMessage, error) {
	return c.search(ctx, endpointSpeech, query.Params())
}

func (c *Client) SearchMeetings(ctx context.Context, query MeetingQuery) (json.RawMessage, error) {
	return c.search(ctx, endpointMeeting, query.Params())
}

func (c *Client) Health(ctx context.Context) Health {
	health := Health{
		Breaker: c.breaker.Status(),
		Cache:   CacheDisabled,
	}
	if c.cache == nil {
		return health
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.cache.Ping(pingCtx); err != nil {
		c.logger.Warn("Kokkai cache ping failed", zap.Error(err))
		health.Cache = CacheUnavailable
		return health
	}
	health.Cache = CacheOK
	return health
}

func (c *Client) search(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	key := cacheKey(endpoint, params)

	if c.cache != nil {
		var cached json.RawMessage
		found, err := c.cache.Get(ctx, key, &cached)
		if err != nil {
			c.logger.Warn("Kokkai cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			c.logger.Debug("Kokkai cache hit", zap.String("endpoint", endpoint))
			return cached, nil
		}
	}

	if !c.breaker.CanExecute() {
		return nil, errors.NewAPIError("kokkai API temporarily unavailable", 503, map[string]any{
			"endpoint": endpoint,
		})
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/" + endpoint)
	if err != nil {
		if ctx.Err() == nil {
			c.breaker.RecordFailure()
		} else {
			c.breaker.Release()
		}
		return nil, errors.NewServiceError("kokkai request failed", "kokkai", endpoint, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		if resp.StatusCode() >= 500 {
			c.breaker.RecordFailure()
		} else {
			c.breaker.Release()
		}
		return nil, errors.NewAPIError("kokkai API returned an error", resp.StatusCode(), map[string]any{
			"endpoint": endpoint,
			"body":     util.TruncateString(resp.String(), 200),
		})
	}

	body := resp.Body()
	if !json.Valid(body) {
		c.breaker.RecordFailure()
		return nil, errors.NewAPIError("kokkai API returned invalid JSON", 502, map[string]any{
			"endpoint": endpoint,
			"body":     util.TruncateString(resp.String(), 200),
		})
	}
	c.breaker.RecordSuccess()

	c.logger.Info("Kokkai search",
		zap.String("endpoint", endpoint),
		zap.String("start_record", params["startRecord"]),
		zap.Duration("elapsed", time.Since(start)),
	)

	result := json.RawMessage(body)

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, result, c.cacheTTL); err != nil {
			c.logger.Warn("Kokkai cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return result, nil
}

// cacheKey is stable for equal parameter sets regardless of map order.
func cacheKey(endpoint string, params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	sum := sha256.Sum256([]byte(values.Encode()))
	return cache.Key(endpoint, hex.EncodeToString(sum[:12]))
}
