package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gist/feedsync/internal/engine/mock"
	"gist/feedsync/internal/handler"
	gh "gist/feedsync/internal/http"
	"gist/feedsync/internal/state"
)

func newRouter(t *testing.T) (*echo.Echo, *mock.MockDispatcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	dispatcher := mock.NewMockDispatcher(ctrl)
	e := gh.NewRouter(
		handler.NewStateHandler(dispatcher),
		handler.NewIntentHandler(dispatcher),
		handler.NewMyFeedHandler(nil),
		handler.NewOPMLHandler(dispatcher),
		"",
	)
	return e, dispatcher
}

func hasRoute(e *echo.Echo, method, path string) bool {
	for _, r := range e.Routes() {
		if r.Method == method && r.Path == path {
			return true
		}
	}
	return false
}

func TestNewRouter_RegistersRoutes(t *testing.T) {
	e, _ := newRouter(t)
	require.True(t, hasRoute(e, http.MethodGet, "/api/state"))
	require.True(t, hasRoute(e, http.MethodGet, "/api/myfeed"))
	require.True(t, hasRoute(e, http.MethodPost, "/api/sync"))
	require.True(t, hasRoute(e, http.MethodGet, "/api/feeds/opml"))
	require.False(t, hasRoute(e, http.MethodGet, "/*"))
}

func TestNewRouter_ServesState(t *testing.T) {
	e, dispatcher := newRouter(t)
	dispatcher.EXPECT().Snapshot().Return(state.Snapshot{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"route":"home"`)
}

func TestNewRouter_DispatchesIntent(t *testing.T) {
	e, dispatcher := newRouter(t)
	dispatcher.EXPECT().Dispatch(gomock.Any(), state.Refresh{}).Return(nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	e, _ := newRouter(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
