package httpx

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveCompressed(t *testing.T, cfg CompressionConfig, acceptEncoding string, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}
	rec := httptest.NewRecorder()
	Compression(cfg)(h).ServeHTTP(rec, req)
	return rec
}

func htmlHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, body)
	}
}

func gunzip(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	b, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(b)
}

func TestCompression_LargeHTMLIsGzipped(t *testing.T) {
	body := strings.Repeat("<li>Barista</li>", 200)

	rec := serveCompressed(t, CompressionConfig{Level: 6}, "gzip, deflate", htmlHandler(body))

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rec.Header().Get("Vary"))
	assert.Equal(t, body, gunzip(t, rec))
}

func TestCompression_SmallFragmentStaysPlain(t *testing.T) {
	rec := serveCompressed(t, CompressionConfig{}, "gzip", htmlHandler("<title>Jobs</title>"))

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "<title>Jobs</title>", rec.Body.String())
}

func TestCompression_NegativeMinSizeCompressesEverything(t *testing.T) {
	rec := serveCompressed(t, CompressionConfig{MinSize: -1}, "gzip", htmlHandler("<p>hi</p>"))

	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "<p>hi</p>", gunzip(t, rec))
}

func TestCompression_Skips(t *testing.T) {
	big := strings.Repeat("x", 4096)

	tests := []struct {
		name           string
		acceptEncoding string
		handler        http.HandlerFunc
	}{
		{name: "no accept-encoding", handler: htmlHandler(big)},
		{name: "gzip disabled by q=0", acceptEncoding: "gzip;q=0, deflate", handler: htmlHandler(big)},
		{
			name:           "binary content",
			acceptEncoding: "gzip",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "image/png")
				_, _ = io.WriteString(w, big)
			},
		},
		{
			name:           "already encoded",
			acceptEncoding: "gzip",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/css")
				w.Header().Set("Content-Encoding", "br")
				_, _ = io.WriteString(w, big)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveCompressed(t, CompressionConfig{}, tt.acceptEncoding, tt.handler)
			assert.NotEqual(t, "gzip", rec.Header().Get("Content-Encoding"))
			assert.Equal(t, big, rec.Body.String())
		})
	}
}

func TestCompression_RedirectWithoutBody(t *testing.T) {
	rec := serveCompressed(t, CompressionConfig{}, "gzip", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", "/?page=jobs")
		w.WriteHeader(http.StatusSeeOther)
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Empty(t, rec.Body.String())
}

func TestCompression_StatusIsPreserved(t *testing.T) {
	body := strings.Repeat("Page Not Found ", 100)
	rec := serveCompressed(t, CompressionConfig{}, "gzip", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, body)
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, body, gunzip(t, rec))
}

func TestAcceptsGzip(t *testing.T) {
	tests := map[string]bool{
		"":                   false,
		"gzip":               true,
		"GZIP":               true,
		"deflate, gzip;q=.5": true,
		"gzip;q=0":           false,
		"gzip; q=0.0":        false,
		"*":                  true,
		"*;q=0":              false,
		"br":                 false,
		"x-gzip":             false,
	}
	for header, want := range tests {
		assert.Equal(t, want, acceptsGzip(header), "Accept-Encoding %q", header)
	}
}
