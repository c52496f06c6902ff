// Package remote implements storage.Storage on top of the registration
// server's JSON API, so the terminal client can run against a shared
// server instead of a local database file.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aanand-mishra/course-registration/internal/storage"
	"github.com/aanand-mishra/course-registration/internal/types"
	"github.com/aanand-mishra/course-registration/internal/utils/response"
)

// Client talks to a registration server.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ storage.Storage = (*Client)(nil)

// New returns a client for the server at baseURL (e.g. http://localhost:8082).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError is an error envelope returned by the server. Its message is the
// server's message unchanged; when Code names a data store rejection,
// errors.Is matches the corresponding storage error.
type APIError struct {
	Status  int
	Code    string
	Message string
	Errors  []string

	sentinel error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

func (e *APIError) Unwrap() error { return e.sentinel }

// Messages returns one message per problem the server reported: the
// per-field messages of a validation failure, otherwise the message.
func (e *APIError) Messages() []string {
	if len(e.Errors) > 0 {
		return e.Errors
	}
	return []string{e.Error()}
}

// ListCourses calls GET /api/courses?session=...
func (c *Client) ListCourses(ctx context.Context, session types.Session) ([]types.Course, error) {
	u := c.baseURL + "/api/courses?" + url.Values{"session": {string(session)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("ListCourses: new request: %w", err)
	}

	var courses []types.Course
	if err := c.do(req, http.StatusOK, &courses); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) || errors.Is(err, storage.ErrCoursesUnavailable) {
			return nil, err
		}
		// Transport failure: the server could not be reached.
		return nil, fmt.Errorf("%w: %v", storage.ErrCoursesUnavailable, err)
	}
	if courses == nil {
		courses = make([]types.Course, 0)
	}
	return courses, nil
}

// RegisterStudent calls POST /api/registrations.
func (c *Client) RegisterStudent(ctx context.Context, form types.RegistrationForm) (types.Registration, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/registrations", bytes.NewReader(body))
	if err != nil {
		return types.Registration{}, fmt.Errorf("RegisterStudent: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var reg types.Registration
	if err := c.do(req, http.StatusCreated, &reg); err != nil {
		return types.Registration{}, err
	}
	return reg, nil
}

// do sends req and decodes a want-status body into out. Error envelopes
// come back as *APIError, or as the bare storage error when the message is
// exactly that error's.
func (c *Client) do(req *http.Request, want int, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == want {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: decode: %w", req.Method, req.URL.Path, err)
		}
		return nil
	}

	var env response.Response
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode}
	}
	sentinel := response.SentinelFor(env.Code)
	if sentinel != nil && (env.Error == "" || env.Error == sentinel.Error()) {
		return sentinel
	}
	return &APIError{
		Status:   resp.StatusCode,
		Code:     env.Code,
		Message:  env.Error,
		Errors:   env.Errors,
		sentinel: sentinel,
	}
}
