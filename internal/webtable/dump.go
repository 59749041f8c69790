package webtable

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// messageDump writes every http exchange of a client into its own file
// under directory, useful to see what the site actually served.
type messageDump struct {
	directory string
	counter   *atomic.Int64
}

func newMessageDump(dir string) (messageDump, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return messageDump{}, err
	}
	return messageDump{directory: dir, counter: &atomic.Int64{}}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func (d messageDump) filename(url string) string {
	n := d.counter.Add(1)
	name := unsafeFilenameChars.ReplaceAllString(url, "_")
	if len(name) > 100 {
		name = name[:100]
	}
	return fmt.Sprintf("%03d_%s.txt", n, name)
}

func (d messageDump) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	id := d.filename(res.Request.URL)
	err := os.WriteFile(filepath.Join(d.directory, id), []byte(formatHTTPMessage(res)), 0600)
	if err != nil {
		slog.Warn("failed to write http dump", "id", id, "err", err)
	}
	return nil
}

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	for _, k := range keys {
		for _, v := range headers[k] {
			out.WriteString(fmt.Sprintf("%s: %s\n", k, v))
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func formatRequestBody(req *http.Request) string {
	if req.GetBody == nil {
		return ""
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Sprintf("failed to get request body: %s", err.Error())
	}
	readBody, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("failed to read request body: %s", err.Error())
	}
	return string(readBody)
}

// 1: request method
// 2: request url
// 3: request headers in ("Key: Value" format)
// 4: request body
// 5: response status
// 6: response url
// 7: response headers in ("Key: Value" format)
// 8: response body
const messageTemplate = `---- REQUEST ----

%s %s

%s

%s

---- RESPONSE ----

%s %s

%s

%s`

func formatHTTPMessage(res *resty.Response) string {
	var requestHeaders, requestBody string
	if res.Request.RawRequest != nil {
		requestHeaders = formatHeaders(res.Request.RawRequest.Header)
		requestBody = formatRequestBody(res.Request.RawRequest)
	}

	responseURL := res.Request.URL
	if res.RawResponse != nil {
		redirected, err := res.RawResponse.Location()
		if err == nil {
			responseURL = redirected.String()
		}
	}

	return fmt.Sprintf(
		messageTemplate,

		res.Request.Method, res.Request.URL,
		requestHeaders,
		requestBody,

		strconv.Itoa(res.StatusCode()), responseURL,
		formatHeaders(res.Header()),
		res.String(),
	)
}
