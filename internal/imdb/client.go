package imdb

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"movie-sentiment-crawler/internal/observability"
)

// Fetcher is what the resolver and extractor consume: fetch a URL and hand
// back a parsed document. Any non-2xx status or network failure is an error.
type Fetcher interface {
	GetDocument(ctx context.Context, rawURL string) (*goquery.Document, error)
}

// Client is the outbound HTTP collaborator for the review source. It owns
// timeouts, a client-side rate limit, response size capping and charset
// normalization, so the scraping components only ever see UTF-8 documents.
type Client struct {
	client    *http.Client
	sizeCap   int64
	userAgent string
	rl        *rate.Limiter
}

func NewClient(timeout time.Duration, sizeCap int64, rps int) *Client {
	if rps <= 0 {
		rps = 2
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		sizeCap:   sizeCap,
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		rl:        rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// GetDocument fetches rawURL and parses the body into a goquery document.
func (c *Client) GetDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		observability.ObserveExternal(u.Path, 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal(u.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}

	data, err := io.ReadAll(io.LimitReader(body, c.sizeCap))
	if err != nil {
		return nil, err
	}

	utf8data, err := decodeToUTF8(data, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
}

// decodeToUTF8 converts the raw bytes to UTF-8 using the declared or sniffed
// charset, passing already-valid UTF-8 through on decoder failure.
func decodeToUTF8(data []byte, contentType string) ([]byte, error) {
	enc, _, _ := charset.DetermineEncoding(data, contentType)
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if utf8.Valid(data) {
			return data, nil
		}
		return nil, err
	}
	return out, nil
}
