package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultAuxTimeout bounds each auxiliary resource fetch.
const DefaultAuxTimeout = 5 * time.Second

// maxAuxBody caps how much of robots.txt or sitemap.xml is read.
const maxAuxBody = 1 << 20

// AuxResult reports whether a well-known resource exists on the target
// origin. Absence (404, timeout, network error) is a normal outcome, not a
// failure.
type AuxResult struct {
	Exists  bool
	Content string
}

// AuxClient fetches robots.txt and sitemap.xml from a target origin.
type AuxClient struct {
	client *http.Client
}

// NewAuxClient builds a client with the per-fetch timeout applied.
func NewAuxClient(timeout time.Duration) *AuxClient {
	if timeout <= 0 {
		timeout = DefaultAuxTimeout
	}
	return &AuxClient{client: &http.Client{Timeout: timeout}}
}

// Check fetches both well-known resources concurrently. The fetches are
// independent: one failing or timing out never affects the other, and neither
// aborts the audit.
func (c *AuxClient) Check(ctx context.Context, origin string) (robots, sitemap AuxResult) {
	g := &errgroup.Group{}
	g.Go(func() error {
		robots = c.fetch(ctx, origin+"/robots.txt")
		return nil
	})
	g.Go(func() error {
		sitemap = c.fetch(ctx, origin+"/sitemap.xml")
		return nil
	})
	_ = g.Wait()
	return robots, sitemap
}

func (c *AuxClient) fetch(ctx context.Context, rawURL string) AuxResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return AuxResult{}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return AuxResult{}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return AuxResult{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAuxBody))
	if err != nil {
		return AuxResult{}
	}

	return AuxResult{Exists: true, Content: string(body)}
}
