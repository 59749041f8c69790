package webtable

import (
	"context"
	"ezodus-market/internal/components/telemetry"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

type BrowserOptions struct {
	// path to the browser executable, if empty chromedp looks for a
	// chrome installation on its own
	ExecPath string
	// shows the browser window when true
	Visible bool
	// per page timeout, defaults to 30 seconds
	Timeout   time.Duration
	Telemetry telemetry.API
}

// BrowserSource drives a single browser tab through chromedp. Pages are
// rendered by the browser before their tables are read.
type BrowserSource struct {
	ctx         context.Context
	cancel      context.CancelFunc
	cancelAlloc context.CancelFunc
	timeout     time.Duration
	tel         telemetry.API
}

// NewBrowserSource starts the browser immediately, the returned source must
// be closed to shut it down.
func NewBrowserSource(ctx context.Context, opts BrowserOptions) (*BrowserSource, error) {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.SlogAPI{}
	}
	tel := telemetry.NewScopedAPI("webtable_browser", opts.Telemetry)

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.UserAgent(DefaultUserAgent))
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.Visible {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// the first Run launches the browser
	err := chromedp.Run(browserCtx)
	if err != nil {
		cancel()
		cancelAlloc()
		return nil, err
	}
	tel.ReportDebug("browser started", opts.ExecPath)

	return &BrowserSource{
		ctx:         browserCtx,
		cancel:      cancel,
		cancelAlloc: cancelAlloc,
		timeout:     opts.Timeout,
		tel:         tel,
	}, nil
}

func (s *BrowserSource) FetchTable(ctx context.Context, url string, selector string) ([]Row, error) {
	runCtx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	start := time.Now()
	var page string
	err := chromedp.Run(
		runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &page, chromedp.ByQuery),
	)
	if err != nil {
		return nil, err
	}
	s.tel.ReportDebug("page loaded", url, time.Since(start).String())

	return ParseHTML(strings.NewReader(page), selector)
}

func (s *BrowserSource) Close() error {
	s.cancel()
	s.cancelAlloc()
	return nil
}
