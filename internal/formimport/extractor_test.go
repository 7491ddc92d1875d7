package formimport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Run("sends browser headers", func(t *testing.T) {
		var gotUA, gotLang string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.UserAgent()
			gotLang = r.Header.Get("Accept-Language")
			w.Write([]byte("<html>ok</html>"))
		}))
		defer server.Close()

		fetcher := NewFetcher(server.Client(), FetcherConfig{AcceptLanguage: "ja"})
		body, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", body)
		assert.Equal(t, DefaultUserAgent, gotUA)
		assert.Equal(t, "ja", gotLang)
	})

	t.Run("non-2xx is a fetch failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		_, err := NewFetcher(server.Client(), FetcherConfig{}).Fetch(context.Background(), server.URL)

		require.ErrorIs(t, err, ErrFetchFailure)
		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	})

	t.Run("hanging origin times out", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		fetcher := NewFetcher(server.Client(), FetcherConfig{Timeout: 50 * time.Millisecond})
		_, err := fetcher.Fetch(context.Background(), server.URL)

		assert.ErrorIs(t, err, ErrFetchFailure)
	})

	t.Run("oversized body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(strings.Repeat("a", 64)))
		}))
		defer server.Close()

		_, err := NewFetcher(server.Client(), FetcherConfig{MaxBodyBytes: 16}).Fetch(context.Background(), server.URL)

		assert.ErrorIs(t, err, ErrFetchFailure)
	})
}

func TestExtractPayload(t *testing.T) {
	t.Run("decodes embedded form data", func(t *testing.T) {
		payload, err := ExtractPayload(formPage(t, formData("Title", "Desc")))
		require.NoError(t, err)

		title, ok := payload.Title()
		assert.True(t, ok)
		assert.Equal(t, "Title", title)
	})

	t.Run("semicolon inside a string literal", func(t *testing.T) {
		html := `<script>var FB_PUBLIC_LOAD_DATA_ = [null,["a; b",[],null,null,null,null,null,null,"T;itle"]];</script>`
		payload, err := ExtractPayload(html)
		require.NoError(t, err)

		title, _ := payload.Title()
		description, _ := payload.Description()
		assert.Equal(t, "T;itle", title)
		assert.Equal(t, "a; b", description)
	})

	t.Run("many semicolons in string literals", func(t *testing.T) {
		description := strings.Repeat("x;", 200000)
		html := `<script>var FB_PUBLIC_LOAD_DATA_ = [null,["` + description + `",[],null,null,null,null,null,null,"T"]];</script>`

		started := time.Now()
		payload, err := ExtractPayload(html)
		elapsed := time.Since(started)

		require.NoError(t, err)
		got, _ := payload.Description()
		assert.Equal(t, description, got)
		assert.Less(t, elapsed, 2*time.Second)
	})

	t.Run("whitespace before terminator", func(t *testing.T) {
		payload, err := ExtractPayload("<script>var FB_PUBLIC_LOAD_DATA_ = [null,[\"d\"]]\n ;</script>")
		require.NoError(t, err)

		description, _ := payload.Description()
		assert.Equal(t, "d", description)
	})

	t.Run("marker missing", func(t *testing.T) {
		_, err := ExtractPayload("<html><body>Sign in to continue</body></html>")
		assert.ErrorIs(t, err, ErrPayloadNotFound)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ExtractPayload(`<script>var FB_PUBLIC_LOAD_DATA_ = [null, {broken;</script>`)
		assert.ErrorIs(t, err, ErrPayloadMalformed)
	})

	t.Run("unterminated assignment", func(t *testing.T) {
		_, err := ExtractPayload(`<script>var FB_PUBLIC_LOAD_DATA_ = [null,[]]</script>`)
		assert.ErrorIs(t, err, ErrPayloadMalformed)
	})

	t.Run("second element missing", func(t *testing.T) {
		_, err := ExtractPayload(`<script>var FB_PUBLIC_LOAD_DATA_ = [null];</script>`)
		assert.ErrorIs(t, err, ErrPayloadMalformed)
	})

	t.Run("second element not an array", func(t *testing.T) {
		_, err := ExtractPayload(`<script>var FB_PUBLIC_LOAD_DATA_ = [null, "form"];</script>`)
		assert.ErrorIs(t, err, ErrPayloadMalformed)
	})

	t.Run("top level not an array", func(t *testing.T) {
		_, err := ExtractPayload(`<script>var FB_PUBLIC_LOAD_DATA_ = {"a": 1};</script>`)
		assert.ErrorIs(t, err, ErrPayloadMalformed)
	})
}
