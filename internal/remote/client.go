// Package remote talks to the remote todo store over its REST contract:
//
//	GET    /todo       list
//	POST   /todo       create
//	PUT    /todo/{id}  partial update
//	DELETE /todo/{id}  delete
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/todo/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// collectionPath is the resource collection under the base URL.
const collectionPath = "/todo"

// maxErrorBody caps how much of a failed response body is kept in a StatusError.
const maxErrorBody = 512

// Config holds connection settings for the remote store.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RatePerSec limits outgoing requests. Zero or negative disables limiting.
	RatePerSec float64
}

// Client implements the todo REST contract.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	limiter  *rate.Limiter
	observer Observer
}

// NewClient creates a Client for cfg. A nil observer discards call events.
func NewClient(cfg Config, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
	if cfg.RatePerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)
	}
	return c
}

// BaseURL returns the normalized base URL requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	if err := c.do(ctx, "list", http.MethodGet, collectionPath, nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return todos, nil
}

// Create posts a new todo and returns the record the store assigned an id to.
func (c *Client) Create(ctx context.Context, t domain.NewTodo) (domain.Todo, error) {
	var created domain.Todo
	if err := c.do(ctx, "create", http.MethodPost, collectionPath, t, &created); err != nil {
		return domain.Todo{}, err
	}
	return created, nil
}

// Update sends a partial update for id and returns the updated record.
func (c *Client) Update(ctx context.Context, id domain.ID, patch domain.TodoPatch) (domain.Todo, error) {
	var updated domain.Todo
	if err := c.do(ctx, "update", http.MethodPut, itemPath(id), patch, &updated); err != nil {
		return domain.Todo{}, err
	}
	return updated, nil
}

// Delete removes id. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id domain.ID) error {
	return c.do(ctx, "delete", http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id domain.ID) string {
	return collectionPath + "/" + url.PathEscape(string(id))
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	start := time.Now()
	requestID := uuid.NewString()
	event := CallEvent{Op: op, Method: method, Path: path, RequestID: requestID}
	defer func() {
		event.LatencyMs = time.Since(start).Milliseconds()
		c.observer.OnCallComplete(ctx, event)
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			event.Err = wrap(op, err)
			return event.Err
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			event.Err = wrap(op, fmt.Errorf("marshaling request: %w", err))
			return event.Err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		event.Err = wrap(op, fmt.Errorf("creating request: %w", err))
		return event.Err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		event.Err = wrap(op, err)
		return event.Err
	}
	defer resp.Body.Close()
	event.StatusCode = resp.StatusCode

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		event.Err = wrap(op, fmt.Errorf("reading response: %w", err))
		return event.Err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		event.Err = &StatusError{Op: op, StatusCode: resp.StatusCode, Body: truncate(respBody)}
		return event.Err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		event.Err = wrap(op, fmt.Errorf("decoding response: %w", err))
		return event.Err
	}
	return nil
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
