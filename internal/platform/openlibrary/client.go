package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://openlibrary.org"

// ErrUnexpectedStatus is wrapped by errors for non-200 upstream responses.
var ErrUnexpectedStatus = errors.New("unexpected status code")

type Options struct {
	BaseURL    string
	UserAgent  string
	RPS        int
	MaxRetries int
	Timeout    time.Duration
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RPS <= 0 {
		opts.RPS = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	opts.MaxRetries = max(opts.MaxRetries, 0)
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent:  opts.UserAgent,
		baseURL:    opts.BaseURL,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(opts.RPS)), 1),
		maxRetries: opts.MaxRetries,
	}
}

// Author is an entry of a work's authors list.
type Author struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Work matches one entry of subjects/{subject}.json works.
type Work struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	Authors          []Author `json:"authors"`
	FirstPublishYear *int     `json:"first_publish_year"`
	Subject          []string `json:"subject"`
	RatingsAverage   *float64 `json:"ratings_average"`
	AuthorBirthDate  *string  `json:"author_birth_date"`
	AuthorTopWork    *string  `json:"author_top_work"`
}

// SubjectResponse matches subjects/{subject}.json
type SubjectResponse struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	WorkCount int    `json:"work_count"`
	Works     []Work `json:"works"`
}

// SubjectURL builds the subjects endpoint for subject, asking for at most limit works.
func (c *Client) SubjectURL(subject string, limit int) string {
	return fmt.Sprintf("%s/subjects/%s.json?limit=%d", c.baseURL, url.PathEscape(subject), limit)
}

func (c *Client) GetSubject(ctx context.Context, subject string, limit int) (*SubjectResponse, error) {
	var res SubjectResponse
	if err := c.get(ctx, c.SubjectURL(subject, limit), &res); err != nil {
		return nil, fmt.Errorf("get subject %s: %w", subject, err)
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		body, retry, err := c.do(ctx, url)
		if err == nil {
			return json.Unmarshal(body, target)
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	if c.maxRetries == 0 {
		return lastErr
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

// do performs one request and reports whether a failure is worth retrying.
func (c *Client) do(ctx context.Context, url string) ([]byte, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}
	return body, false, nil
}
