// Package firestore provides a key-document backup store client over the
// Firestore REST API, used to push and pull tasks and courses.
package firestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

const (
	defaultBaseURL = "https://firestore.googleapis.com/v1"
	defaultTimeout = 30 * time.Second

	tasksCollection   = "tasks"
	coursesCollection = "courses"
)

var (
	// ErrMissingProject indicates the client was constructed without a
	// project ID.
	ErrMissingProject = errors.New("firestore project ID is required")

	// ErrEncoding indicates a local document could not be constructed.
	ErrEncoding = errors.New("failed to encode firestore document")

	// ErrRequestFailed indicates the store rejected a request.
	ErrRequestFailed = errors.New("firestore request failed")
)

// Config configures the backup store client.
type Config struct {
	// ProjectID selects the Firestore project. Required.
	ProjectID string

	// APIKey authenticates requests.
	APIKey string

	// BaseURL is the API root. Override for testing.
	BaseURL string

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// Client reads and writes task and course documents.
type Client struct {
	documentsURL string
	apiKey       string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewClient creates a backup store client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, ErrMissingProject
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		documentsURL: fmt.Sprintf("%s/projects/%s/databases/(default)/documents", baseURL, cfg.ProjectID),
		apiKey:       cfg.APIKey,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}, nil
}

// SaveTask writes one task document. There is no update-in-place or rollback;
// re-sending the same task creates another document (at-least-once).
func (c *Client) SaveTask(ctx context.Context, t model.Task) error {
	if err := c.post(ctx, tasksCollection, taskToDocument(t)); err != nil {
		return fmt.Errorf("save task %q: %w", t.Title, err)
	}
	c.logger.Debug("task saved to firestore", zap.String("task_id", t.ID))
	return nil
}

// SaveCourse writes one course document.
func (c *Client) SaveCourse(ctx context.Context, course model.Course) error {
	if err := c.post(ctx, coursesCollection, courseToDocument(course)); err != nil {
		return fmt.Errorf("save course %q: %w", course.Name, err)
	}
	c.logger.Debug("course saved to firestore", zap.String("course_id", course.ID))
	return nil
}

// FetchTasks pulls all remote task documents. Documents that fail to decode
// are dropped silently; a partial pull is acceptable.
func (c *Client) FetchTasks(ctx context.Context) ([]model.Task, error) {
	list, err := c.list(ctx, tasksCollection)
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(list.Documents))
	dropped := 0
	for _, doc := range list.Documents {
		t, ok := documentToTask(doc)
		if !ok {
			dropped++
			continue
		}
		tasks = append(tasks, t)
	}
	if dropped > 0 {
		c.logger.Warn("dropped undecodable task documents", zap.Int("count", dropped))
	}
	return tasks, nil
}

// FetchCourses pulls all remote course documents, dropping any that fail to
// decode.
func (c *Client) FetchCourses(ctx context.Context) ([]model.Course, error) {
	list, err := c.list(ctx, coursesCollection)
	if err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(list.Documents))
	dropped := 0
	for _, doc := range list.Documents {
		course, ok := documentToCourse(doc)
		if !ok {
			dropped++
			continue
		}
		courses = append(courses, course)
	}
	if dropped > 0 {
		c.logger.Warn("dropped undecodable course documents", zap.Int("count", dropped))
	}
	return courses, nil
}

func (c *Client) post(ctx context.Context, collection string, doc document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.collectionURL(collection), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("firestore write failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}
	return nil
}

func (c *Client) list(ctx context.Context, collection string) (documentList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.collectionURL(collection), nil)
	if err != nil {
		return documentList{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return documentList{}, fmt.Errorf("firestore read failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return documentList{}, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var list documentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return documentList{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return list, nil
}

func (c *Client) collectionURL(collection string) string {
	url := c.documentsURL + "/" + collection
	if c.apiKey != "" {
		url += "?key=" + c.apiKey
	}
	return url
}
