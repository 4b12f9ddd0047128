package http

import (
	"errors"
	"io/fs"
	nethttp "net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"gist/feedsync/pkg/logger"
)

// registerStatic serves a bundled renderer from dir. Unknown paths fall back
// to index.html so client-side routes survive a reload; /api paths are never
// served from disk.
func registerStatic(e *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	root := os.DirFS(dir)
	if info, err := fs.Stat(root, "index.html"); err != nil || info.IsDir() {
		logger.Warn("static index not found", "module", "http", "action", "static", "resource", dir, "result", "skipped")
		return
	}

	indexPath := filepath.Join(dir, "index.html")
	fileServer := nethttp.FileServerFS(root)
	serveIndex := func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		return c.File(indexPath)
	}

	e.GET("/*", func(c echo.Context) error {
		requestPath := c.Request().URL.Path
		if requestPath == "/api" || strings.HasPrefix(requestPath, "/api/") {
			return echo.ErrNotFound
		}

		name := strings.TrimPrefix(path.Clean("/"+requestPath), "/")
		if name == "" || name == "index.html" {
			return serveIndex(c)
		}
		info, err := fs.Stat(root, name)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
			return serveIndex(c)
		}
		if err != nil {
			return err
		}
		fileServer.ServeHTTP(c.Response(), c.Request())
		return nil
	})
}
