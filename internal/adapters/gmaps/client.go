// Package gmaps is the request issuer for the map provider's internal review
// listing endpoint.
package gmaps

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"gmaps_reviews/internal/adapters/observability"
)

const (
	defaultBaseURL = "https://www.google.com/maps/rpc/listugcposts"

	// pageSize is the review count requested per page. The endpoint caps it
	// regardless, so it stays a fixed internal constant.
	pageSize = 10
)

type Client struct {
	base    string
	hc      *http.Client
	rotator *Rotator
	rl      *rate.Limiter
}

// New builds a listing client. base overrides the endpoint URL when non-empty
// (tests); proxyURL configures the transport when non-empty; interval is the
// minimum spacing between requests.
func New(base string, rot *Rotator, proxyURL string, interval time.Duration) (*Client, error) {
	if base == "" {
		base = defaultBaseURL
	}
	if rot == nil {
		rot = NewRotator(nil, true, time.Now().UnixNano())
	}
	if interval <= 0 {
		interval = 400 * time.Millisecond
	}

	transport := http.DefaultTransport
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		transport = &http.Transport{Proxy: http.ProxyURL(u)}
	}

	return &Client{
		base:    base,
		hc:      &http.Client{Timeout: 30 * time.Second, Transport: transport},
		rotator: rot,
		rl:      rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// FetchPage issues a single page request carrying the cursor and returns the
// raw response text. One attempt only; the driver owns the retry budget.
func (c *Client) FetchPage(ctx context.Context, featureID, cursor, lang string) (string, error) {
	// client-side pacing, cancellable
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s?authuser=0&hl=%s&gl=us&pb=%s", c.base, lang, pbParam(featureID, cursor, pageSize))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("accept", "*/*")
	req.Header.Set("accept-language", fmt.Sprintf("%s-US,%s;q=0.9", lang, lang))
	req.Header.Set("referer", "https://www.google.com/maps/")
	c.rotator.Next().apply(req.Header)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("listugcposts", 0, time.Since(start))
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("listugcposts", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// pbParam builds the protobuf-style query parameter the endpoint expects,
// matching observed browser traffic.
func pbParam(featureID, cursor string, count int) string {
	return fmt.Sprintf(
		"!1m6!1s%s"+
			"!6m4!4m1!1e1!4m1!1e3"+
			"!2m2!1i%d!2s%s"+
			"!5m2!1stest!7e81"+
			"!8m9!2b1!3b1!5b1!7b1!12m4!1b1!2b1!4m1!1e1"+
			"!11m4!1e3!2e1!6m1!1i2!13m1!1e1",
		url.QueryEscape(featureID), count, cursor,
	)
}
