package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"gist/feedsync/internal/engine"
	"gist/feedsync/internal/hashutil"
	"gist/feedsync/internal/model"
	"gist/feedsync/internal/remote"
	"gist/feedsync/internal/state"
	"gist/feedsync/pkg/sanitizer"
)

const summaryExcerptRunes = 280

// StateHandler serves the read-only projection of the snapshot.
type StateHandler struct {
	dispatcher engine.Dispatcher
}

type feedResponse struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Link     string `json:"link"`
	Active   bool   `json:"active"`
}

type entryResponse struct {
	ID       int64          `json:"id"`
	Title    string         `json:"title"`
	Summary  string         `json:"summary"`
	Content  string         `json:"content"`
	Flagged  bool           `json:"flagged"`
	Seen     bool           `json:"seen"`
	Bookmark bool           `json:"bookmark"`
	Image    string         `json:"image,omitempty"`
	Link     string         `json:"link"`
	Updated  string         `json:"updated"`
	Sources  []feedResponse `json:"sources"`
	Selected bool           `json:"selected"`
}

type collectionResponse[T any] struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Items  []T    `json:"items"`
}

type selectionResponse struct {
	Feed       *feedResponse `json:"feed,omitempty"`
	EntryIndex *int          `json:"entryIndex,omitempty"`
}

type syncResponse struct {
	InProgress bool    `json:"inProgress"`
	Progress   float64 `json:"progress"`
}

type editResponse struct {
	Original feedResponse `json:"original"`
	Live     feedResponse `json:"live"`
}

type stateResponse struct {
	Route         string                            `json:"route"`
	Filter        string                            `json:"filter"`
	TimeZone      string                            `json:"timeZone"`
	Refreshing    bool                              `json:"refreshing"`
	Entries       collectionResponse[entryResponse] `json:"entries"`
	Feeds         collectionResponse[feedResponse]  `json:"feeds"`
	Selection     selectionResponse                 `json:"selection"`
	Sync          syncResponse                      `json:"sync"`
	Editing       *editResponse                     `json:"editing,omitempty"`
	Notifications []string                          `json:"notifications"`
}

func NewStateHandler(dispatcher engine.Dispatcher) *StateHandler {
	return &StateHandler{dispatcher: dispatcher}
}

func (h *StateHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/state", h.Get)
}

// Get returns the derived view, not the raw entry list: filter and feed
// selection are already applied and entry HTML is sanitised. Renderers that
// poll send If-None-Match and get 304 while nothing visible changed.
func (h *StateHandler) Get(c echo.Context) error {
	body, err := json.Marshal(toStateResponse(h.dispatcher.Snapshot()))
	if err != nil {
		return writeError(c, err)
	}
	etag := hashutil.ETag(body)
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSONBlob(http.StatusOK, body)
}

func toStateResponse(s state.Snapshot) stateResponse {
	loc := s.Location()
	resp := stateResponse{
		Route:         s.Route.String(),
		Filter:        s.Filter.String(),
		TimeZone:      loc.String(),
		Refreshing:    s.Refreshing,
		Sync:          syncResponse{InProgress: s.Sync.InProgress, Progress: s.Sync.Progress},
		Notifications: lo.Ternary(s.Notifications == nil, []string{}, s.Notifications),
		Selection:     selectionResponse{EntryIndex: s.Selection.EntryIndex},
	}

	resp.Entries = collectionResponse[entryResponse]{
		Status: s.Entries.Status().String(),
		Error:  errString(s.Entries.Err()),
		Items:  []entryResponse{},
	}
	if s.Entries.Status() == remote.Loaded {
		selected := -1
		if s.Selection.EntryIndex != nil {
			selected = *s.Selection.EntryIndex
		}
		resp.Entries.Items = lo.Map(s.View(), func(e model.Entry, i int) entryResponse {
			out := toEntryResponse(e, loc)
			out.Selected = i == selected
			return out
		})
	}

	feeds, _ := s.Feeds.Items()
	resp.Feeds = collectionResponse[feedResponse]{
		Status: s.Feeds.Status().String(),
		Error:  errString(s.Feeds.Err()),
		Items:  lo.Map(feeds, func(f model.Feed, _ int) feedResponse { return toFeedResponse(f) }),
	}

	if s.Selection.Feed != nil {
		f := toFeedResponse(*s.Selection.Feed)
		resp.Selection.Feed = &f
	}
	if s.Editing != nil {
		resp.Editing = &editResponse{
			Original: toFeedResponse(s.Editing.Original.Feed),
			Live:     toFeedResponse(s.Editing.Live),
		}
	}
	return resp
}

func toFeedResponse(f model.Feed) feedResponse {
	return feedResponse{
		Title:    sanitizer.StripTags(f.Title),
		Subtitle: sanitizer.StripTags(f.Subtitle),
		Link:     f.Link,
		Active:   f.Active,
	}
}

func toEntryResponse(e model.Entry, loc *time.Location) entryResponse {
	return entryResponse{
		ID:       e.ID,
		Title:    sanitizer.StripTags(e.Title),
		Summary:  sanitizer.Excerpt(e.Summary, summaryExcerptRunes),
		Content:  sanitizer.HTML(e.Content),
		Flagged:  e.Flagged,
		Seen:     e.Seen,
		Bookmark: e.Bookmark,
		Image:    sanitizer.URL(e.Image),
		Link:     e.Link,
		Updated:  e.Updated.In(loc).Format(time.RFC3339),
		Sources:  lo.Map(e.Sources, func(f model.Feed, _ int) feedResponse { return toFeedResponse(f) }),
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
