package webtable

import (
	"bytes"
	"context"
	"ezodus-market/internal/components/telemetry"
	"fmt"
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type HTTPOptions struct {
	// defaults to 30 seconds
	Timeout time.Duration
	// defaults to DefaultUserAgent
	UserAgent string
	// wraps the transport to look more like a browser to cloudflare
	CloudflareBypass bool
	// if set, every request and response is written to a file in this
	// directory
	DumpDir string
	// defaults to telemetry.SlogAPI
	Telemetry telemetry.API
}

// HTTPSource fetches pages with a plain HTTP client, it keeps cookies
// between requests like a browser session would.
type HTTPSource struct {
	http *resty.Client
}

func NewHTTPSource(opts HTTPOptions) (*HTTPSource, error) {
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.SlogAPI{}
	}

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)

	telemetry.InstrumentResty(client, telemetry.NewScopedAPI("webtable_http", opts.Telemetry))
	if opts.DumpDir != "" {
		dump, err := newMessageDump(opts.DumpDir)
		if err != nil {
			return nil, err
		}
		client.OnAfterResponse(dump.onAfterResponse)
	}

	return &HTTPSource{http: client}, nil
}

func (s *HTTPSource) FetchTable(ctx context.Context, url string, selector string) ([]Row, error) {
	res, err := s.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("unexpected status: %s", res.Status())
	}
	return ParseHTML(bytes.NewReader(res.Body()), selector)
}

func (s *HTTPSource) Close() error {
	s.http.GetClient().CloseIdleConnections()
	return nil
}
