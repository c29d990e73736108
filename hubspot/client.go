package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const bookEndpointPath = "/meetings-public/v1/book"

// Client talks to the HubSpot public meetings API. It never retries: a
// duplicate booking submission could double-book a slot or send duplicate
// confirmation emails.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchBookInfo retrieves raw availability for a meeting link. Any failure
// mode (transport, non-2xx status, unparsable body) comes back as
// *UpstreamError so callers treat them uniformly as unavailability.
func (c *Client) FetchBookInfo(ctx context.Context, req BookInfoRequest) (*BookInfo, error) {
	params := url.Values{}
	params.Set("slug", req.Slug)
	params.Set("now", strconv.FormatInt(req.NowMillis, 10))
	params.Set("includeInactiveLink", "true")
	params.Set("location", req.Location)
	params.Set("timezone", req.Timezone)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+bookEndpointPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Body: err.Error()}
	}

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var info BookInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, &UpstreamError{StatusCode: http.StatusOK, Body: string(body)}
	}
	return &info, nil
}

// CreateBooking submits a booking and returns the upstream confirmation
// bytes verbatim, so the caller can pass them through opaquely.
func (c *Client) CreateBooking(ctx context.Context, slug string, payload BookingPayload) ([]byte, error) {
	if payload.FormFields == nil {
		payload.FormFields = []any{}
	}
	if payload.GuestEmails == nil {
		payload.GuestEmails = []string{}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, &UpstreamError{Body: err.Error()}
	}

	params := url.Values{}
	params.Set("slug", slug)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+bookEndpointPath+"?"+params.Encode(), bytes.NewReader(encoded))
	if err != nil {
		return nil, &UpstreamError{Body: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
