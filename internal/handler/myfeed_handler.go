package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"

	"gist/feedsync/pkg/sanitizer"
)

// MyFeedSource fetches the server's aggregated Atom feed.
type MyFeedSource interface {
	MyFeed(ctx context.Context) (*gofeed.Feed, error)
}

type MyFeedHandler struct {
	source MyFeedSource
}

type myFeedItemResponse struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Author    string `json:"author,omitempty"`
	Published string `json:"published,omitempty"`
}

type myFeedResponse struct {
	Title   string               `json:"title"`
	Link    string               `json:"link,omitempty"`
	Updated string               `json:"updated,omitempty"`
	Items   []myFeedItemResponse `json:"items"`
}

func NewMyFeedHandler(source MyFeedSource) *MyFeedHandler {
	return &MyFeedHandler{source: source}
}

func (h *MyFeedHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/myfeed", h.Get)
}

func (h *MyFeedHandler) Get(c echo.Context) error {
	feed, err := h.source.MyFeed(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toMyFeedResponse(feed))
}

func toMyFeedResponse(feed *gofeed.Feed) myFeedResponse {
	return myFeedResponse{
		Title:   sanitizer.StripTags(feed.Title),
		Link:    sanitizer.URL(feed.Link),
		Updated: formatTime(feed.UpdatedParsed),
		Items: lo.Map(feed.Items, func(item *gofeed.Item, _ int) myFeedItemResponse {
			out := myFeedItemResponse{
				Title:     sanitizer.StripTags(item.Title),
				Link:      sanitizer.URL(item.Link),
				Published: formatTime(item.PublishedParsed),
			}
			if out.Published == "" {
				out.Published = formatTime(item.UpdatedParsed)
			}
			if item.Author != nil {
				out.Author = sanitizer.Author(item.Author.Name)
			}
			return out
		}),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
