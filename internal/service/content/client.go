// internal/service/content/client.go
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"lingvo-service/internal/domain/lesson"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Source records which endpoint served a response, so legacy-endpoint usage
// can be tracked while the v2 rollout is in progress.
type Source string

const (
	SourcePrimary  Source = "v2"
	SourceFallback Source = "legacy"
)

type FetchOptions struct {
	Lang   string
	UserID string
}

const listCacheTTL = 5 * time.Minute

// Client fetches lesson content from the content API, preferring the v2
// endpoints and falling back to the legacy ones exactly once per call.
// Requests are sequential; there is no retry beyond the single fallback.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *redis.Client // nil disables caching
	logger  *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, cache *redis.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		cache:   cache,
		logger:  logger,
	}
}

// FetchLessonList returns the raw lesson list for a module as a normalized
// JSON array, together with the endpoint that served it.
func (c *Client) FetchLessonList(ctx context.Context, moduleRef string, opts FetchOptions) (json.RawMessage, Source, error) {
	primary := fmt.Sprintf("%s/content/v2/modules/%s/lessons?%s",
		c.baseURL, url.PathEscape(moduleRef), opts.query(nil))
	legacy := fmt.Sprintf("%s/content/lessons?%s",
		c.baseURL, opts.query(url.Values{"moduleRef": {moduleRef}}))

	body, source, err := c.getWithFallback(ctx, primary, legacy)
	if err != nil {
		return nil, source, err
	}

	normalized, err := normalizeList(body)
	if err != nil {
		return nil, source, err
	}
	return normalized, source, nil
}

// FetchLessonDetail returns the raw lesson detail as a normalized JSON
// object, unwrapping the optional "lesson" envelope.
func (c *Client) FetchLessonDetail(ctx context.Context, lessonRef string, opts FetchOptions) (json.RawMessage, Source, error) {
	primary := fmt.Sprintf("%s/content/v2/lessons/%s?%s",
		c.baseURL, url.PathEscape(lessonRef), opts.query(nil))
	legacy := fmt.Sprintf("%s/content/lessons/%s?%s",
		c.baseURL, url.PathEscape(lessonRef), opts.query(nil))

	body, source, err := c.getWithFallback(ctx, primary, legacy)
	if err != nil {
		return nil, source, err
	}

	normalized, err := normalizeDetail(body)
	if err != nil {
		return nil, source, err
	}
	return normalized, source, nil
}

// cachedList is the redis representation of a lesson list. The serving
// endpoint is stored with the payload so a cache hit reports the provenance
// of the original fetch, not a blanket "v2".
type cachedList struct {
	Source  Source          `json:"source"`
	Lessons json.RawMessage `json:"lessons"`
}

func encodeCachedList(source Source, lessons json.RawMessage) ([]byte, error) {
	return json.Marshal(cachedList{Source: source, Lessons: lessons})
}

func decodeCachedList(b []byte) ([]lesson.LessonSummary, Source, error) {
	var entry cachedList
	if err := json.Unmarshal(b, &entry); err != nil {
		return nil, "", err
	}
	if entry.Source != SourcePrimary && entry.Source != SourceFallback {
		return nil, "", fmt.Errorf("cache entry has no source")
	}

	var out []lesson.LessonSummary
	if err := json.Unmarshal(entry.Lessons, &out); err != nil {
		return nil, "", err
	}
	return out, entry.Source, nil
}

// Lessons is the typed list fetch used by the API proxy, cached in redis.
func (c *Client) Lessons(ctx context.Context, moduleRef string, opts FetchOptions) ([]lesson.LessonSummary, Source, error) {
	cacheKey := fmt.Sprintf("lessons:%s:%s:%s", moduleRef, opts.Lang, opts.UserID)

	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			if out, source, err := decodeCachedList(cached); err == nil {
				return out, source, nil
			}
		}
	}

	raw, source, err := c.FetchLessonList(ctx, moduleRef, opts)
	if err != nil {
		return nil, source, err
	}

	var out []lesson.LessonSummary
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, source, fmt.Errorf("failed to decode lesson list: %w", err)
	}

	if c.cache != nil {
		entry, err := encodeCachedList(source, raw)
		if err == nil {
			err = c.cache.Set(ctx, cacheKey, entry, listCacheTTL).Err()
		}
		if err != nil {
			c.logger.Warn("lesson list cache write failed", zap.Error(err))
		}
	}
	return out, source, nil
}

// Lesson is the typed detail fetch used by the API proxy.
func (c *Client) Lesson(ctx context.Context, lessonRef string, opts FetchOptions) (*lesson.LessonDetail, Source, error) {
	raw, source, err := c.FetchLessonDetail(ctx, lessonRef, opts)
	if err != nil {
		return nil, source, err
	}

	var out lesson.LessonDetail
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, source, fmt.Errorf("failed to decode lesson %s: %w", lessonRef, err)
	}
	return &out, source, nil
}

// getWithFallback performs one GET against the primary URL and, on any
// failure (transport error or non-2xx), exactly one against the legacy URL.
func (c *Client) getWithFallback(ctx context.Context, primary, legacy string) ([]byte, Source, error) {
	body, primaryErr := c.get(ctx, primary)
	if primaryErr == nil {
		return body, SourcePrimary, nil
	}

	c.logger.Warn("primary content endpoint failed, trying legacy",
		zap.String("url", primary),
		zap.Error(primaryErr),
	)

	body, legacyErr := c.get(ctx, legacy)
	if legacyErr == nil {
		return body, SourceFallback, nil
	}

	return nil, SourceFallback, fmt.Errorf("both endpoints failed: primary: %v; legacy: %w", primaryErr, legacyErr)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}

func (o FetchOptions) query(extra url.Values) string {
	q := url.Values{}
	if o.Lang != "" {
		q.Set("lang", o.Lang)
	}
	if o.UserID != "" {
		q.Set("userId", o.UserID)
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return q.Encode()
}

// normalizeList accepts either a bare JSON array or an object wrapping the
// array under "lessons".
func normalizeList(body []byte) (json.RawMessage, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err == nil {
		return body, nil
	}

	var wrapped struct {
		Lessons json.RawMessage `json:"lessons"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped.Lessons) > 0 {
		if err := json.Unmarshal(wrapped.Lessons, &arr); err == nil {
			return wrapped.Lessons, nil
		}
	}
	return nil, fmt.Errorf("response is neither a lesson array nor a {lessons: [...]} object")
}

// normalizeDetail unwraps an optional {"lesson": {...}} envelope.
func normalizeDetail(body []byte) (json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %w", err)
	}
	if inner, ok := envelope["lesson"]; ok {
		return inner, nil
	}
	return body, nil
}
