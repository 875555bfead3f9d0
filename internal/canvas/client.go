// Package canvas provides a thin client for the Canvas LMS roster API.
package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the hosted Canvas API root.
	DefaultBaseURL = "https://canvas.instructure.com/api/v1"

	defaultTimeout = 30 * time.Second
)

var (
	// ErrMissingToken indicates no API token was configured. Checked before
	// any network call.
	ErrMissingToken = errors.New("canvas API token is required")

	// ErrInvalidResponse indicates the roster API returned a non-2xx status
	// or a body that does not match the expected schema.
	ErrInvalidResponse = errors.New("invalid response from canvas")
)

// Config configures the roster client.
type Config struct {
	// BaseURL is the API root. Defaults to the hosted Canvas instance.
	BaseURL string

	// Token is the bearer credential for roster access.
	Token string

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// Client calls the Canvas roster API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a roster client. The token may be empty; calls made
// without a token fail with ErrMissingToken before any I/O.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchCourses lists the courses visible to the configured token. Unlike
// assignment fetches, roster errors propagate to the caller.
func (c *Client) FetchCourses(ctx context.Context) ([]Course, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	var courses []Course
	if err := c.get(ctx, c.baseURL+"/courses", &courses); err != nil {
		return nil, err
	}

	c.logger.Debug("fetched canvas courses", zap.Int("count", len(courses)))
	return courses, nil
}

// FetchAssignments lists the assignments of one course. Transport failures,
// non-2xx statuses, and undecodable bodies all degrade to an empty list so a
// single broken course cannot fail a multi-course import.
func (c *Client) FetchAssignments(ctx context.Context, courseID int) ([]Assignment, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	var assignments []Assignment
	url := fmt.Sprintf("%s/courses/%d/assignments", c.baseURL, courseID)
	if err := c.get(ctx, url, &assignments); err != nil {
		c.logger.Warn("assignment fetch degraded to empty list",
			zap.Int("course_id", courseID),
			zap.Error(err))
		return nil, nil
	}

	c.logger.Debug("fetched canvas assignments",
		zap.Int("course_id", courseID),
		zap.Int("count", len(assignments)))
	return assignments, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("canvas request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
