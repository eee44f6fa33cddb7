// Package fetch drives headless browser rendering of audit targets and the
// plain-HTTP auxiliary resource checks.
package fetch

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"
)

// browser is one warm headless browser process owned by the pool.
type browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

func (b *browser) close() {
	b.cancel()
	b.allocCancel()
}

// Pool maintains a bounded set of warm browser processes. Audits check out a
// browser, open a fresh tab in it, and return the browser on every exit path,
// so one crashed audit cannot strand a process.
type Pool struct {
	browsers chan *browser
	size     int
	log      *logrus.Logger

	mu     sync.Mutex
	closed bool
}

// NewPool launches size browser processes eagerly so that launch failures
// surface at startup rather than on the first audit.
func NewPool(size int, log *logrus.Logger) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("browser pool size must be at least 1, got %d", size)
	}

	p := &Pool{
		browsers: make(chan *browser, size),
		size:     size,
		log:      log,
	}

	for i := 0; i < size; i++ {
		b, err := newBrowser()
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to launch browser %d of %d: %w", i+1, size, err)
		}
		p.browsers <- b
	}

	log.WithField("size", size).Info("browser pool ready")
	return p, nil
}

func newBrowser() (*browser, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)

	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser process.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, err
	}

	return &browser{ctx: browserCtx, cancel: cancel, allocCancel: allocCancel}, nil
}

// acquire blocks until a browser is available or ctx is done.
func (p *Pool) acquire(ctx context.Context) (*browser, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("browser pool is closed")
	}
	p.mu.Unlock()

	select {
	case b := <-p.browsers:
		return b, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pool) release(b *browser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		// Pool shut down while the audit held the browser.
		b.close()
		return
	}
	p.browsers <- b
}

// Close shuts down every pooled browser. Browsers checked out at close time
// are closed when released.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	for {
		select {
		case b := <-p.browsers:
			b.close()
		default:
			return
		}
	}
}
