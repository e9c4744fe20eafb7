// Package client is the single chokepoint between the site and the agency
// REST backend.
//
// Every call resolves to one of three outcomes: a successful Result carrying
// the raw backend body, a fail-soft Result carrying the demo-mode envelope
// when the backend could not be reached, or an *HTTPError when the backend
// answered with a non-2xx status.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sarif-mia/agency-website-sub000/internal/config"
	"github.com/sarif-mia/agency-website-sub000/internal/metrics"
	"github.com/sarif-mia/agency-website-sub000/internal/model"
	"go.uber.org/zap"
)

var errInvalidJSON = errors.New("response body is not valid JSON")

// Client talks to the backend rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.SugaredLogger
	metrics    *metrics.ClientMetrics
	session    session

	Projects     *ProjectsAPI
	Testimonials *TestimonialsAPI
	Services     *ServicesAPI
	Blog         *BlogAPI
	Help         *HelpAPI
	CaseStudies  *CaseStudiesAPI
	Contact      *ContactAPI
	Newsletter   *NewsletterAPI
	Stats        *StatsAPI
	Search       *SearchAPI
	Health       *HealthAPI
	Auth         *AuthAPI
	Meeting      *MeetingAPI
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero keeps the transport default (none).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a client for baseURL. The URL is used as given; endpoints are
// appended to it verbatim.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     config.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.httpClient.Timeout == 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	c.Projects = &ProjectsAPI{c: c}
	c.Testimonials = &TestimonialsAPI{c: c}
	c.Services = &ServicesAPI{c: c}
	c.Blog = &BlogAPI{c: c}
	c.Help = &HelpAPI{c: c}
	c.CaseStudies = &CaseStudiesAPI{c: c}
	c.Contact = &ContactAPI{c: c}
	c.Newsletter = &NewsletterAPI{c: c}
	c.Stats = &StatsAPI{c: c}
	c.Search = &SearchAPI{c: c}
	c.Health = &HealthAPI{c: c}
	c.Auth = &AuthAPI{c: c}
	c.Meeting = &MeetingAPI{c: c}
	return c
}

// NewFromConfig creates a client for the configured base URL and timeout.
func NewFromConfig(opts ...Option) *Client {
	base := []Option{WithTimeout(config.GetAPITimeout())}
	return New(config.GetAPIBaseURL(), append(base, opts...)...)
}

// BaseURL returns the URL every endpoint is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RequestOptions configures a single call. The zero value is a GET.
type RequestOptions struct {
	Method string
	// Body is sent verbatim when it is a string, []byte or json.RawMessage
	// and JSON-encoded otherwise.
	Body    any
	Headers map[string]string
}

// Call issues a request to baseURL+endpoint. The body of a successful result
// is the backend payload, untouched.
func (c *Client) Call(ctx context.Context, endpoint string, opts *RequestOptions) (*Result, error) {
	return c.do(ctx, endpoint, opts, autoShape)
}

func (c *Client) get(ctx context.Context, endpoint string, s shape) (*Result, error) {
	return c.do(ctx, endpoint, nil, s)
}

func (c *Client) post(ctx context.Context, endpoint string, body any, s shape) (*Result, error) {
	return c.do(ctx, endpoint, &RequestOptions{Method: http.MethodPost, Body: body}, s)
}

func (c *Client) do(ctx context.Context, endpoint string, opts *RequestOptions, s shape) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body for %s: %w", endpoint, err)
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return c.failSoft(endpoint, OutcomeUnreachable, err, s, start), nil
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.get(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.observe(endpoint, "canceled", start)
			return nil, ctxErr
		}
		return c.failSoft(endpoint, OutcomeUnreachable, err, s, start), nil
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(endpoint, "http_error", start)
		return nil, newHTTPError(resp.StatusCode, raw)
	}
	if readErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.observe(endpoint, "canceled", start)
			return nil, ctxErr
		}
		return c.failSoft(endpoint, OutcomeUnreachable, readErr, s, start), nil
	}
	if !json.Valid(raw) {
		return c.failSoft(endpoint, OutcomeInvalidBody, errInvalidJSON, s, start), nil
	}

	c.observe(endpoint, OutcomeOK.String(), start)
	return &Result{
		Outcome:    OutcomeOK,
		StatusCode: resp.StatusCode,
		Body:       raw,
		shape:      s,
	}, nil
}

// failSoft logs the failure and returns the demo-mode envelope instead of an error.
func (c *Client) failSoft(endpoint string, outcome Outcome, cause error, s shape, start time.Time) *Result {
	c.logger.Warnw("API call failed", "endpoint", endpoint, "error", cause)
	c.observe(endpoint, outcome.String(), start)

	body, _ := json.Marshal(model.NewFallbackEnvelope())
	return &Result{
		Outcome: outcome,
		Body:    body,
		Cause:   cause,
		shape:   s,
	}
}

func (c *Client) observe(endpoint, outcome string, start time.Time) {
	c.metrics.ObserveCall(resourceLabel(endpoint), outcome, time.Since(start))
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(encoded), nil
	}
}

// resourceLabel turns "/projects/web-app/?x=1" into "projects".
func resourceLabel(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	endpoint = strings.TrimPrefix(endpoint, "/")
	if i := strings.IndexByte(endpoint, '/'); i >= 0 {
		endpoint = endpoint[:i]
	}
	return endpoint
}
