package formimport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultFetchTimeout = 15 * time.Second
	DefaultMaxBodyBytes = 10 << 20

	payloadMarker = "var FB_PUBLIC_LOAD_DATA_ = "
	scriptEnd     = "</script>"
)

// FetcherConfig controls how form pages are retrieved.
type FetcherConfig struct {
	UserAgent      string
	AcceptLanguage string
	Timeout        time.Duration
	MaxBodyBytes   int64
}

// Fetcher retrieves form pages. It never retries; a failed fetch is returned
// to the caller as a *FetchError.
type Fetcher struct {
	client *http.Client
	config FetcherConfig
}

// NewFetcher builds a Fetcher. A nil client gets a fresh one bounded by config.Timeout.
func NewFetcher(client *http.Client, config FetcherConfig) *Fetcher {
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultFetchTimeout
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	return &Fetcher{client: client, config: config}
}

// Fetch performs a single GET of url and returns the body as text.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if f.config.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.config.AcceptLanguage)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodyBytes+1))
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	if int64(len(body)) > f.config.MaxBodyBytes {
		return "", &FetchError{URL: url, Err: fmt.Errorf("response body exceeds %d bytes", f.config.MaxBodyBytes)}
	}

	return string(body), nil
}

// ExtractPayload locates the FB_PUBLIC_LOAD_DATA_ assignment in html and decodes
// it. The literal is read in a single pass, so a ';' inside a string never ends
// it. The assignment must be terminated by ';' before the enclosing </script>.
func ExtractPayload(html string) (*RawFormPayload, error) {
	start := strings.Index(html, payloadMarker)
	if start < 0 {
		return nil, ErrPayloadNotFound
	}
	rest := html[start+len(payloadMarker):]
	if end := strings.Index(rest, scriptEnd); end >= 0 {
		rest = rest[:end]
	}

	decoded, consumed, err := decodeJSON(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadMalformed, err)
	}
	if !strings.HasPrefix(strings.TrimLeft(rest[consumed:], " \t\r\n"), ";") {
		return nil, fmt.Errorf("%w: assignment is not terminated", ErrPayloadMalformed)
	}

	root, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is not an array", ErrPayloadMalformed)
	}
	formData, ok := elementAt(root, 1)
	if !ok {
		return nil, fmt.Errorf("%w: form data is missing", ErrPayloadMalformed)
	}
	formArray, ok := formData.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: form data is not an array", ErrPayloadMalformed)
	}

	return &RawFormPayload{data: formArray}, nil
}

// decodeJSON decodes the first JSON value in text and reports how many bytes it
// used. Numbers stay json.Number so integer flags compare exactly.
func decodeJSON(text string) (any, int, error) {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, 0, err
	}
	return value, int(decoder.InputOffset()), nil
}
