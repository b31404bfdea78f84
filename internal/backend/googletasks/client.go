// Package googletasks copies tasks into Google Tasks and manages the
// OAuth credentials needed for it.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	statusCompleted = "completed"
)

var (
	// ErrAuth indicates an expired, revoked or missing token.
	ErrAuth = errors.New("token expired or revoked (run: todo login)")

	// ErrListNotFound indicates no list has the requested name.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList indicates several lists share the requested name.
	ErrAmbiguousList = errors.New("ambiguous list name")
)

// Client implements service.Remote using the Google Tasks API.
type Client struct {
	svc *tasks.Service
}

var _ service.Remote = (*Client)(nil)

// New creates a client from the credentials in the config directory.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oc, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	tok, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuth, err)
	}
	httpClient := oauth2.NewClient(ctx, oc.TokenSource(ctx, tok))
	return NewWithHTTPClient(ctx, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// DefaultList returns the user's default task list.
func (c *Client) DefaultList(ctx context.Context) (service.RemoteList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return service.RemoteList{}, wrapError(err)
	}
	return service.RemoteList{ID: DefaultListID, Title: list.Title, IsDefault: true}, nil
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.RemoteList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	var matches []service.RemoteList
	err := c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, l := range resp.Items {
			if strings.EqualFold(strings.TrimSpace(l.Title), name) {
				matches = append(matches, service.RemoteList{ID: l.Id, Title: l.Title})
			}
		}
		return nil
	})
	if err != nil {
		return service.RemoteList{}, wrapError(err)
	}

	switch len(matches) {
	case 0:
		return service.RemoteList{}, fmt.Errorf("%w: %s", ErrListNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return service.RemoteList{}, fmt.Errorf("%w: %s", ErrAmbiguousList, name)
	}
}

// CreateTask creates a task, marked completed when completed is set.
func (c *Client) CreateTask(ctx context.Context, listID, title string, completed bool) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	t := &tasks.Task{Title: title}
	if completed {
		t.Status = statusCompleted
	}
	if _, err := c.svc.Tasks.Insert(listID, t).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// wrapError maps API errors onto the package sentinels.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", ErrListNotFound, err)
		}
	}
	return err
}
