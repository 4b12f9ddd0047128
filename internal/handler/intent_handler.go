package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"gist/feedsync/internal/engine"
	"gist/feedsync/internal/model"
	"gist/feedsync/internal/state"
	"gist/feedsync/internal/urlutil"
)

// IntentHandler turns renderer intents into engine messages. Targets are
// resolved against the current snapshot; the reducer still re-checks every
// precondition when the message is applied.
type IntentHandler struct {
	dispatcher engine.Dispatcher
}

type filterRequest struct {
	Filter string `json:"filter"`
}

type linkRequest struct {
	Link string `json:"link"`
}

type editFieldRequest struct {
	Field string `json:"field"`
	Text  string `json:"text"`
	Flag  bool   `json:"flag"`
}

type toggleRequest struct {
	Link  string `json:"link"`
	Field string `json:"field"`
}

func NewIntentHandler(dispatcher engine.Dispatcher) *IntentHandler {
	return &IntentHandler{dispatcher: dispatcher}
}

func (h *IntentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/filter", h.ChangeFilter)
	g.POST("/feeds", h.AddFeed)
	g.POST("/feeds/select", h.SelectFeed)
	g.POST("/feeds/edit", h.OpenEdit)
	g.PATCH("/feeds/edit", h.EditField)
	g.POST("/feeds/edit/submit", h.SubmitEdit)
	g.POST("/entries/:index/select", h.SelectEntry)
	g.POST("/entries/toggle", h.ToggleEntry)
	g.POST("/sync", h.Sync)
	g.POST("/refresh", h.Refresh)
	g.DELETE("/notifications/:index", h.DiscardNotification)
}

func (h *IntentHandler) dispatch(c echo.Context, msg state.Msg) error {
	if err := h.dispatcher.Dispatch(c.Request().Context(), msg); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusAccepted, accepted)
}

func (h *IntentHandler) ChangeFilter(c echo.Context) error {
	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}
	filter, err := model.ParseFilter(req.Filter)
	if err != nil {
		return invalidRequest(c)
	}
	return h.dispatch(c, state.ChangeFilter{Filter: filter})
}

func (h *IntentHandler) AddFeed(c echo.Context) error {
	var req linkRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}
	link, err := urlutil.FeedLink(req.Link)
	if err != nil {
		return invalidRequest(c)
	}
	return h.dispatch(c, state.RequestAddFeed{Link: link})
}

func (h *IntentHandler) SelectFeed(c echo.Context) error {
	feed, ok, err := h.bindFeed(c)
	if err != nil {
		return invalidRequest(c)
	}
	if !ok {
		return notFound(c)
	}
	return h.dispatch(c, state.SelectFeed{Feed: feed})
}

func (h *IntentHandler) OpenEdit(c echo.Context) error {
	feed, ok, err := h.bindFeed(c)
	if err != nil {
		return invalidRequest(c)
	}
	if !ok {
		return notFound(c)
	}
	return h.dispatch(c, state.OpenEditFeed{Feed: feed})
}

func (h *IntentHandler) EditField(c echo.Context) error {
	var req editFieldRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}
	field, err := model.ParseFeedField(req.Field)
	if err != nil {
		return invalidRequest(c)
	}
	edit := h.dispatcher.Snapshot().Editing
	if edit == nil {
		return notFound(c)
	}
	return h.dispatch(c, state.RequestEditField{
		Original: edit.Original,
		Field:    field,
		Value:    model.FeedFieldValue{Text: req.Text, Flag: req.Flag},
	})
}

func (h *IntentHandler) SubmitEdit(c echo.Context) error {
	edit := h.dispatcher.Snapshot().Editing
	if edit == nil {
		return notFound(c)
	}
	return h.dispatch(c, state.SubmitEdit{Original: edit.Original, Edited: edit.Live})
}

func (h *IntentHandler) SelectEntry(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return invalidRequest(c)
	}
	return h.dispatch(c, state.SelectEntry{Index: index})
}

func (h *IntentHandler) ToggleEntry(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}
	field, err := model.ParseEntryField(req.Field)
	if err != nil {
		return invalidRequest(c)
	}
	entries, _ := h.dispatcher.Snapshot().Entries.Items()
	entry, ok := lo.Find(entries, func(e model.Entry) bool { return e.Link == req.Link })
	if !ok {
		return notFound(c)
	}
	return h.dispatch(c, state.ToggleEntry{Entry: entry, Field: field})
}

func (h *IntentHandler) Sync(c echo.Context) error {
	return h.dispatch(c, state.RequestSync{})
}

func (h *IntentHandler) Refresh(c echo.Context) error {
	return h.dispatch(c, state.Refresh{})
}

func (h *IntentHandler) DiscardNotification(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return invalidRequest(c)
	}
	if index < 0 || index >= len(h.dispatcher.Snapshot().Notifications) {
		return notFound(c)
	}
	return h.dispatch(c, state.DiscardNotification{Index: index})
}

// bindFeed reads {"link": ...} and finds the feed with that link in the
// loaded feed list.
func (h *IntentHandler) bindFeed(c echo.Context) (model.Feed, bool, error) {
	var req linkRequest
	if err := c.Bind(&req); err != nil {
		return model.Feed{}, false, err
	}
	if req.Link == "" {
		return model.Feed{}, false, echo.ErrBadRequest
	}
	feeds, _ := h.dispatcher.Snapshot().Feeds.Items()
	feed, ok := lo.Find(feeds, func(f model.Feed) bool { return f.Link == req.Link })
	return feed, ok, nil
}
