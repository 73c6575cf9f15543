package httpx

import (
	"compress/gzip"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// defaultMinCompressSize skips gzip for bodies too small to benefit, such as
// the short htmx fragments most transitions return.
const defaultMinCompressSize = 512

// CompressionConfig holds configuration for the compression middleware.
type CompressionConfig struct {
	// Level is the gzip level (1-9). Zero uses gzip.DefaultCompression.
	Level int
	// MinSize is the smallest body that gets compressed. Zero uses 512 bytes;
	// a negative value compresses everything.
	MinSize int
	Logger  *slog.Logger
}

//nolint:gochecknoglobals // static lookup
var compressibleTypes = map[string]bool{
	"text/html":              true,
	"text/css":               true,
	"text/plain":             true,
	"text/javascript":        true,
	"application/javascript": true,
	"application/json":       true,
	"image/svg+xml":          true,
}

// Compression returns a middleware that gzips text responses for clients
// that accept it. The decision is made once MinSize bytes are buffered or the
// handler returns, so small bodies go out uncompressed.
func Compression(cfg CompressionConfig) func(http.Handler) http.Handler {
	level := cfg.Level
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}
	minSize := cfg.MinSize
	switch {
	case minSize == 0:
		minSize = defaultMinCompressSize
	case minSize < 0:
		minSize = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pool := &sync.Pool{New: func() any {
		w, err := gzip.NewWriterLevel(io.Discard, level)
		if err != nil {
			return gzip.NewWriter(io.Discard)
		}
		return w
	}}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Accept-Encoding")

			gw := &gzipResponseWriter{ResponseWriter: w, pool: pool, minSize: minSize}
			next.ServeHTTP(gw, r)
			if err := gw.finish(); err != nil {
				logger.DebugContext(r.Context(), "gzip response failed", "path", r.URL.Path, "error", err)
			}
		})
	}
}

// acceptsGzip reports whether Accept-Encoding allows gzip with a non-zero q-value.
func acceptsGzip(header string) bool {
	for _, part := range strings.Split(header, ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		coding = strings.ToLower(strings.TrimSpace(coding))
		if coding != "gzip" && coding != "*" {
			continue
		}
		q := 1.0
		for _, p := range strings.Split(params, ";") {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if ok && strings.EqualFold(strings.TrimSpace(k), "q") {
				if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
					q = f
				}
			}
		}
		if coding == "gzip" || q > 0 {
			return q > 0
		}
	}
	return false
}

func isCompressible(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return compressibleTypes[mt]
}

// gzipResponseWriter buffers the start of the body until it knows whether
// compression is worthwhile, then commits headers once.
type gzipResponseWriter struct {
	http.ResponseWriter
	pool    *sync.Pool
	minSize int

	status    int
	buf       []byte
	committed bool
	gz        *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(status int) {
	if w.committed || w.status != 0 {
		return
	}
	w.status = status
	if !w.eligible() {
		w.commit(false)
	}
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if w.committed {
		if w.gz != nil {
			return w.gz.Write(b)
		}
		return w.ResponseWriter.Write(b)
	}

	w.buf = append(w.buf, b...)
	if len(w.buf) < w.minSize {
		return len(b), nil
	}
	if err := w.flushBuffer(w.eligible()); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Flush implements http.Flusher. Pending bytes are committed first.
func (w *gzipResponseWriter) Flush() {
	if !w.committed {
		if w.status == 0 {
			w.status = http.StatusOK
		}
		if err := w.flushBuffer(w.eligible()); err != nil {
			return
		}
	}
	if w.gz != nil {
		if err := w.gz.Flush(); err != nil {
			return
		}
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *gzipResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *gzipResponseWriter) eligible() bool {
	switch {
	case w.status < http.StatusOK, w.status == http.StatusNoContent, w.status == http.StatusNotModified:
		return false
	case w.Header().Get("Content-Encoding") != "":
		return false
	}
	ct := w.Header().Get("Content-Type")
	if ct == "" && len(w.buf) > 0 {
		ct = http.DetectContentType(w.buf)
		w.Header().Set("Content-Type", ct)
	}
	return isCompressible(ct)
}

func (w *gzipResponseWriter) flushBuffer(compress bool) error {
	w.commit(compress)
	if len(w.buf) == 0 {
		return nil
	}
	buf := w.buf
	w.buf = nil
	var err error
	if w.gz != nil {
		_, err = w.gz.Write(buf)
	} else {
		_, err = w.ResponseWriter.Write(buf)
	}
	return err
}

func (w *gzipResponseWriter) commit(compress bool) {
	if w.committed {
		return
	}
	w.committed = true
	if compress {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		gz, _ := w.pool.Get().(*gzip.Writer)
		gz.Reset(w.ResponseWriter)
		w.gz = gz
	}
	w.ResponseWriter.WriteHeader(w.status)
}

// finish commits whatever the handler left and returns the gzip writer to the pool.
func (w *gzipResponseWriter) finish() error {
	if w.status == 0 {
		if len(w.buf) == 0 && !w.committed {
			return nil
		}
		w.status = http.StatusOK
	}
	var err error
	if !w.committed {
		// The body never reached minSize.
		err = w.flushBuffer(len(w.buf) >= w.minSize && len(w.buf) > 0 && w.eligible())
	}
	if w.gz != nil {
		if cerr := w.gz.Close(); cerr != nil && err == nil {
			err = cerr
		}
		w.gz.Reset(io.Discard)
		w.pool.Put(w.gz)
		w.gz = nil
	}
	return err
}
