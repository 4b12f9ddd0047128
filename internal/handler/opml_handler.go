package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"gist/feedsync/internal/engine"
	"gist/feedsync/internal/model"
	"gist/feedsync/internal/remote"
	"gist/feedsync/internal/state"
	"gist/feedsync/internal/urlutil"
	"gist/feedsync/pkg/logger"
	"gist/feedsync/pkg/opml"
)

const (
	maxOPMLBytes   = 2 << 20
	opmlExportName = "feedsync.opml"
)

// OPMLHandler exports the loaded subscriptions and imports an OPML file as a
// series of add-feed intents.
type OPMLHandler struct {
	dispatcher engine.Dispatcher
	now        func() time.Time
}

type importResponse struct {
	Status  string   `json:"status"`
	Queued  int      `json:"queued"`
	Skipped []string `json:"skipped"`
}

func NewOPMLHandler(dispatcher engine.Dispatcher) *OPMLHandler {
	return &OPMLHandler{dispatcher: dispatcher, now: time.Now}
}

func (h *OPMLHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/feeds/opml", h.Export)
	g.POST("/feeds/opml", h.Import)
}

func (h *OPMLHandler) Export(c echo.Context) error {
	snapshot := h.dispatcher.Snapshot()
	if snapshot.Feeds.Status() != remote.Loaded {
		return c.JSON(http.StatusConflict, errorResponse{Error: "feeds not loaded"})
	}
	feeds, _ := snapshot.Feeds.Items()
	doc := opml.New("feedsync subscriptions", lo.Map(feeds, func(f model.Feed, _ int) opml.Subscription {
		return opml.Subscription{Title: f.Title, Description: f.Subtitle, XMLURL: f.Link}
	}), h.now())
	body, err := opml.Encode(doc)
	if err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", opmlExportName))
	return c.Blob(http.StatusOK, "text/x-opml; charset=utf-8", body)
}

// Import accepts the OPML document as a multipart "file" field or as the raw
// request body. Each new valid link becomes one RequestAddFeed; the rest are
// reported as skipped.
func (h *OPMLHandler) Import(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response().Writer, req.Body, maxOPMLBytes)

	var reader io.Reader
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), "multipart/") {
		file, err := c.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing file"})
			}
			return invalidRequest(c)
		}
		src, err := file.Open()
		if err != nil {
			return invalidRequest(c)
		}
		defer src.Close()
		reader = io.LimitReader(src, maxOPMLBytes)
	} else {
		reader = io.LimitReader(req.Body, maxOPMLBytes)
	}

	doc, err := opml.Parse(reader)
	if err != nil {
		return invalidRequest(c)
	}

	feeds, _ := h.dispatcher.Snapshot().Feeds.Items()
	seen := lo.SliceToMap(feeds, func(f model.Feed) (string, struct{}) { return f.Link, struct{}{} })
	resp := importResponse{Status: accepted.Status, Skipped: []string{}}
	for _, raw := range doc.FeedURLs() {
		link, err := urlutil.FeedLink(raw)
		if err != nil {
			resp.Skipped = append(resp.Skipped, raw)
			continue
		}
		if _, dup := seen[link]; dup {
			resp.Skipped = append(resp.Skipped, raw)
			continue
		}
		seen[link] = struct{}{}
		if err := h.dispatcher.Dispatch(c.Request().Context(), state.RequestAddFeed{Link: link}); err != nil {
			return writeError(c, err)
		}
		resp.Queued++
	}

	logger.Info("opml import", "module", "handler", "action", "import", "resource", "feed", "result", "ok", "queued", resp.Queued, "skipped", len(resp.Skipped))
	return c.JSON(http.StatusAccepted, resp)
}
