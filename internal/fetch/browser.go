package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// DefaultNavigationTimeout bounds the whole navigate-and-capture sequence.
const DefaultNavigationTimeout = 30 * time.Second

// UserAgent identifies audit navigations to target sites.
const UserAgent = "Mozilla/5.0 (compatible; MarketPulse-SEOAudit/1.0)"

// RenderedPage is the captured result of one navigation: the post-JS DOM
// serialization, the HTTP status of the primary document, and the wall-clock
// time from navigation start to content ready.
type RenderedPage struct {
	HTML       string
	StatusCode int
	LoadTime   time.Duration
}

// Error represents a failure to fetch and render the target page.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Renderer renders pages using browsers checked out of the pool.
type Renderer struct {
	pool    *Pool
	timeout time.Duration
}

// NewRenderer wraps a pool with the navigation timeout applied to each render.
func NewRenderer(pool *Pool, timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = DefaultNavigationTimeout
	}
	return &Renderer{pool: pool, timeout: timeout}
}

// Render navigates a fresh tab to the target URL, waits for the DOM to be
// ready (deliberately not for network idle, to bound worst-case latency), and
// captures the rendered HTML. The browser is returned to the pool and the tab
// closed on every exit path.
func (r *Renderer) Render(ctx context.Context, targetURL string) (*RenderedPage, error) {
	b, err := r.pool.acquire(ctx)
	if err != nil {
		return nil, &Error{URL: targetURL, Message: "no browser available", Cause: err}
	}
	defer r.pool.release(b)

	tabCtx, cancelTab := chromedp.NewContext(b.ctx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, r.timeout)
	defer cancelTimeout()

	// The first document response on the tab is the primary navigation.
	var mu sync.Mutex
	statusCode := 0
	chromedp.ListenTarget(tabCtx, func(ev any) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || resp.Type != network.ResourceTypeDocument {
			return
		}
		mu.Lock()
		if statusCode == 0 {
			statusCode = int(resp.Response.Status)
		}
		mu.Unlock()
	})

	var html string
	var loadTime time.Duration
	start := time.Now()

	err = chromedp.Run(tabCtx,
		network.Enable(),
		emulation.SetUserAgentOverride(UserAgent),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(context.Context) error {
			loadTime = time.Since(start)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{URL: targetURL, Message: "navigation failed", Cause: err}
	}

	mu.Lock()
	code := statusCode
	mu.Unlock()

	return &RenderedPage{HTML: html, StatusCode: code, LoadTime: loadTime}, nil
}
