// Package remote is the HTTP client of the content platform API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"offline_sync/internal/domain"
)

const userAgent = "OfflineSync/1.0"

// Config holds remote API client configuration.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	DeviceID       string
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	deviceID       string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		deviceID:       cfg.DeviceID,
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "remote_api"),
	}
}

func (c *Client) ListNews(ctx context.Context) ([]domain.News, error) {
	var resp ListResponse[APINews]
	if err := c.get(ctx, "/news", &resp); err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}

	news := make([]domain.News, 0, len(resp.Data))
	for _, n := range resp.Data {
		publishedAt, ok := c.parseTime(n.ID, n.PublishedAt)
		if !ok {
			continue
		}
		news = append(news, domain.News{
			ID:          n.ID,
			Title:       n.Title,
			Summary:     n.Summary,
			Body:        n.Body,
			ImageURL:    n.ImageURL,
			AudioURL:    n.AudioURL,
			Likes:       n.Likes,
			Dislikes:    n.Dislikes,
			PublishedAt: publishedAt,
		})
	}
	return news, nil
}

func (c *Client) ListArticles(ctx context.Context) ([]domain.Article, error) {
	var resp ListResponse[APIArticle]
	if err := c.get(ctx, "/articles", &resp); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	articles := make([]domain.Article, 0, len(resp.Data))
	for _, a := range resp.Data {
		publishedAt, ok := c.parseTime(a.ID, a.PublishedAt)
		if !ok {
			continue
		}
		articles = append(articles, domain.Article{
			ID:          a.ID,
			Title:       a.Title,
			Author:      a.Author,
			Body:        a.Body,
			ImageURL:    a.ImageURL,
			AudioURL:    a.AudioURL,
			Likes:       a.Likes,
			Dislikes:    a.Dislikes,
			PublishedAt: publishedAt,
		})
	}
	return articles, nil
}

func (c *Client) ListFeasts(ctx context.Context) ([]domain.Feast, error) {
	var resp ListResponse[APIFeast]
	if err := c.get(ctx, "/feasts", &resp); err != nil {
		return nil, fmt.Errorf("list feasts: %w", err)
	}

	feasts := make([]domain.Feast, 0, len(resp.Data))
	for _, f := range resp.Data {
		feasts = append(feasts, domain.Feast{
			ID:          f.ID,
			Name:        f.Name,
			Date:        f.Date,
			Description: f.Description,
			ImageURL:    f.ImageURL,
		})
	}
	return feasts, nil
}

// GetReading fetches the reading for date (YYYY-MM-DD).
func (c *Client) GetReading(ctx context.Context, date string) (*domain.Reading, error) {
	var r APIReading
	if err := c.get(ctx, "/readings/"+url.PathEscape(date), &r); err != nil {
		return nil, fmt.Errorf("get reading %s: %w", date, err)
	}
	if r.Date == "" {
		r.Date = date
	}
	return &domain.Reading{
		Date:     r.Date,
		Title:    r.Title,
		Passages: r.Passages,
		AudioURL: r.AudioURL,
	}, nil
}

func (c *Client) AddComment(ctx context.Context, entity domain.EntityType, id string, payload domain.CommentPayload) error {
	p, err := entityPath(entity, id, "comments")
	if err != nil {
		return err
	}
	if err := c.post(ctx, p, commentRequest{Text: payload.Text, Author: payload.Author}); err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	return nil
}

func (c *Client) ToggleReaction(ctx context.Context, entity domain.EntityType, id, value string) error {
	p, err := entityPath(entity, id, "reactions")
	if err != nil {
		return err
	}
	if err := c.post(ctx, p, reactionRequest{Value: value}); err != nil {
		return fmt.Errorf("toggle reaction: %w", err)
	}
	return nil
}

func (c *Client) ToggleBookmark(ctx context.Context, entity domain.EntityType, id string) error {
	p, err := entityPath(entity, id, "bookmark")
	if err != nil {
		return err
	}
	if err := c.post(ctx, p, nil); err != nil {
		return fmt.Errorf("toggle bookmark: %w", err)
	}
	return nil
}

func entityPath(entity domain.EntityType, id, action string) (string, error) {
	var collection string
	switch entity {
	case domain.EntityNews:
		collection = "news"
	case domain.EntityArticle:
		collection = "articles"
	default:
		return "", fmt.Errorf("entity type %q has no remote collection", entity)
	}
	return "/" + collection + "/" + url.PathEscape(id) + "/" + action, nil
}

// get retries transient failures with exponential backoff.
func (c *Client) get(ctx context.Context, path string, out any) error {
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err = c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return nil
		}

		if IsPermanent(err) || attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"path", path,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return err
}

// post is sent once. Replay retries belong to the action queue.
func (c *Client) post(ctx context.Context, path string, body any) error {
	return c.do(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.deviceID != "" {
		req.Header.Set("X-Device-ID", c.deviceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method:     method,
			URL:        path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if c.maxBackoff > 0 && backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func (c *Client) parseTime(id, value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		c.logger.Warn("failed to parse date", "id", id, "date", value)
		return time.Time{}, false
	}
	return t, true
}
