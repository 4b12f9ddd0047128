package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gist/feedsync/internal/engine/mock"
	"gist/feedsync/internal/handler"
	"gist/feedsync/internal/model"
	"gist/feedsync/internal/state"
)

func TestStateHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock.NewMockDispatcher(ctrl)
	dispatcher.EXPECT().Snapshot().Return(loadedSnapshot(t))

	e := newTestEcho()
	c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/api/state", nil))
	require.NoError(t, handler.NewStateHandler(dispatcher).Get(c))

	var resp handler.StateResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "home", resp.Route)
	require.Equal(t, "all", resp.Filter)
	require.Equal(t, "UTC", resp.TimeZone)
	require.Equal(t, "loaded", resp.Entries.Status)
	require.Equal(t, "loaded", resp.Feeds.Status)
	require.Len(t, resp.Feeds.Items, 2)
	require.Empty(t, resp.Notifications)
	require.NotNil(t, resp.Notifications)

	require.Len(t, resp.Entries.Items, 2)
	first := resp.Entries.Items[0]
	require.Equal(t, "One", first.Title)
	require.Equal(t, "Summary one", first.Summary)
	require.Contains(t, first.Content, "<p>Body</p>")
	require.NotContains(t, first.Content, "script")
	require.Empty(t, first.Image)
	require.Equal(t, "2023-11-14T22:13:20Z", first.Updated)
	require.Equal(t, "https://a.example/rss", first.Sources[0].Link)
}

func TestStateHandler_GetDerivedView(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock.NewMockDispatcher(ctrl)
	snapshot := loadedSnapshot(t,
		state.ChangeFilter{Filter: model.FilterBookmarked},
		state.SelectEntry{Index: 0},
		state.OpenEditFeed{Feed: feedB},
	)
	dispatcher.EXPECT().Snapshot().Return(snapshot)

	e := newTestEcho()
	c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/api/state", nil))
	require.NoError(t, handler.NewStateHandler(dispatcher).Get(c))

	var resp handler.StateResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "bookmarked", resp.Filter)
	require.Equal(t, "edit-feed", resp.Route)
	require.Len(t, resp.Entries.Items, 1)
	require.Equal(t, int64(2), resp.Entries.Items[0].ID)
	require.True(t, resp.Entries.Items[0].Selected)
	require.NotNil(t, resp.Selection.EntryIndex)
	require.Equal(t, 0, *resp.Selection.EntryIndex)
	require.NotNil(t, resp.Editing)
	require.Equal(t, "https://b.example/rss", resp.Editing.Original.Link)
}

func TestStateHandler_GetPendingAndFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock.NewMockDispatcher(ctrl)
	s, _ := state.Update(state.Snapshot{}, state.FeedsFetchFailed{Err: errors.New("502")})
	dispatcher.EXPECT().Snapshot().Return(s)

	e := newTestEcho()
	c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/api/state", nil))
	require.NoError(t, handler.NewStateHandler(dispatcher).Get(c))

	var resp handler.StateResponse
	assertJSONResponse(t, rec, http.StatusOK, &resp)
	require.Equal(t, "pending", resp.Entries.Status)
	require.Empty(t, resp.Entries.Items)
	require.Equal(t, "failed", resp.Feeds.Status)
	require.Equal(t, "502", resp.Feeds.Error)
	require.Equal(t, []string{"load feeds failed: 502"}, resp.Notifications)
}

func TestStateHandler_GetNotModified(t *testing.T) {
	ctrl := gomock.NewController(t)
	dispatcher := mock.NewMockDispatcher(ctrl)
	snapshot := loadedSnapshot(t)
	dispatcher.EXPECT().Snapshot().Return(snapshot).Times(3)
	h := handler.NewStateHandler(dispatcher)
	e := newTestEcho()

	c, rec := newTestContext(e, newJSONRequest(http.MethodGet, "/api/state", nil))
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := newJSONRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("If-None-Match", etag)
	c, rec = newTestContext(e, req)
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusNotModified, rec.Code)
	require.Empty(t, rec.Body.String())

	req = newJSONRequest(http.MethodGet, "/api/state", nil)
	req.Header.Set("If-None-Match", `"stale"`)
	c, rec = newTestContext(e, req)
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, etag, rec.Header().Get("ETag"))
}
