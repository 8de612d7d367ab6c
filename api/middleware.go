package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// GzipRequestMiddleware decompresses gzip-encoded request bodies so the task
// handlers always decode plain JSON. Requests with invalid gzip payloads are
// rejected with a 400 response.
func GzipRequestMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := decompressRequest(c.Request()); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid gzip body")
			}
			return next(c)
		}
	}
}

func decompressRequest(req *http.Request) error {
	if !hasGzipEncoding(req.Header.Get(echo.HeaderContentEncoding)) {
		return nil
	}

	body := req.Body
	gr, err := gzip.NewReader(body)
	if err != nil {
		_ = body.Close()
		return err
	}

	req.Body = &gzipReadCloser{Reader: gr, body: body}
	req.ContentLength = -1
	req.Header.Del(echo.HeaderContentEncoding)
	req.Header.Del(echo.HeaderContentLength)
	return nil
}

func hasGzipEncoding(header string) bool {
	for _, enc := range strings.Split(header, ",") {
		if strings.EqualFold(strings.TrimSpace(enc), "gzip") {
			return true
		}
	}
	return false
}

// gzipReadCloser closes both the gzip reader and the original body.
type gzipReadCloser struct {
	*gzip.Reader
	body io.Closer
}

func (g *gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if cerr := g.body.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
