// Package catalog fetches MIoT instance documents from the public
// spec catalog or loads them from local files.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/pkg/miotspec"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/pkg/trace"
)

// DefaultBaseURL is the public instance endpoint of the MIoT spec catalog.
const DefaultBaseURL = "http://miot-spec.org/miot-spec-v2/instance"

// Client fetches instance documents from the catalog.
type Client struct {
	// BaseURL is the instance endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient is the HTTP client used for requests.
	// Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Tracer receives fetch events. Defaults to trace.NoopLogger.
	Tracer trace.Logger

	// RunID stamps trace events; optional.
	RunID string
}

// NewClient returns a Client with default settings.
func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		Tracer:     trace.NoopLogger{},
	}
}

// FetchInstance issues a single GET for the device type URN and decodes the
// JSON body. Any network failure or non-200 status is an error; there are
// no retries.
func (c *Client) FetchInstance(ctx context.Context, urn string) (any, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	query := url.Values{}
	query.Set("type", urn)
	reqURL := base + "?" + query.Encode()

	c.traceRequest(reqURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.traceError(reqURL, 0, err)
		return nil, fmt.Errorf("building request for %s: %w", reqURL, err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.traceError(reqURL, 0, err)
		return nil, fmt.Errorf("requesting %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("requesting %s: HTTP %d", reqURL, resp.StatusCode)
		c.traceError(reqURL, resp.StatusCode, err)
		return nil, err
	}

	doc, err := miotspec.Decode(resp.Body)
	if err != nil {
		c.traceError(reqURL, resp.StatusCode, err)
		return nil, fmt.Errorf("reading response from %s: %w", reqURL, err)
	}

	c.traceResult(reqURL, resp.StatusCode, time.Since(start))
	return doc, nil
}

func (c *Client) traceRequest(url string) {
	c.trace(trace.Event{
		Stage:    trace.StageFetch,
		Category: trace.CategoryRequest,
		URL:      url,
	})
}

func (c *Client) traceResult(url string, status int, elapsed time.Duration) {
	c.trace(trace.Event{
		Stage:    trace.StageFetch,
		Category: trace.CategoryResult,
		URL:      url,
		Status:   status,
		Elapsed:  elapsed,
	})
}

func (c *Client) traceError(url string, status int, err error) {
	c.trace(trace.Event{
		Stage:    trace.StageFetch,
		Category: trace.CategoryError,
		URL:      url,
		Status:   status,
		Error:    err.Error(),
	})
}

func (c *Client) trace(event trace.Event) {
	if c.Tracer == nil {
		return
	}
	event.Timestamp = time.Now()
	event.RunID = c.RunID
	c.Tracer.Log(event)
}
