package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"gist/feedsync/internal/model"
	"gist/feedsync/internal/state"
)

var (
	feedA = model.Feed{Title: "A", Subtitle: "first", Link: "https://a.example/rss", Active: true}
	feedB = model.Feed{Title: "B", Subtitle: "second", Link: "https://b.example/rss"}

	entry1 = model.Entry{
		ID: 1, Title: "<b>One</b>", Summary: "<p>Summary one</p>",
		Content: `<p>Body</p><script>alert(1)</script>`, Image: "javascript:x",
		Link: "https://a.example/1", Updated: time.Unix(1700000000, 0), Sources: []model.Feed{feedA},
	}
	entry2 = model.Entry{
		ID: 2, Title: "Two", Bookmark: true, Seen: true,
		Link: "https://b.example/2", Updated: time.Unix(1700000100, 0), Sources: []model.Feed{feedB},
	}
)

// loadedSnapshot is a snapshot with both collections loaded in UTC.
func loadedSnapshot(t *testing.T, msgs ...state.Msg) state.Snapshot {
	t.Helper()
	s := state.Snapshot{}
	all := append([]state.Msg{
		state.FeedsFetched{Feeds: []model.Feed{feedA, feedB}},
		state.EntriesFetched{Entries: []model.Entry{entry1, entry2}},
		state.ZoneResolved{Location: time.UTC},
	}, msgs...)
	for _, m := range all {
		s, _ = state.Update(s, m)
	}
	return s
}

// newTestEcho creates a new Echo instance for testing.
func newTestEcho() *echo.Echo {
	return echo.New()
}

// newJSONRequest creates a new HTTP request with JSON body.
func newJSONRequest(method, target string, body interface{}) *http.Request {
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(jsonBytes)
	}
	req := httptest.NewRequest(method, target, bodyReader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

// newJSONRequestRaw creates a new HTTP request with raw string body.
func newJSONRequestRaw(method, target string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// newTestContext creates a new Echo context for testing.
func newTestContext(e *echo.Echo, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// setPathParams sets path parameters on the Echo context.
func setPathParams(c echo.Context, params map[string]string) {
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
}

// assertJSONResponse asserts the response status code and parses the JSON body.
func assertJSONResponse(t *testing.T, rec *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	require.Equal(t, expectedStatus, rec.Code, "unexpected status code: %s", rec.Body.String())
	if target != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target), "failed to parse JSON response")
	}
}

// echoCtx builds one request context per test case.
type echoCtx struct {
	e   *echo.Echo
	rec *httptest.ResponseRecorder
}

func newEchoCtx() *echoCtx {
	return &echoCtx{e: newTestEcho()}
}

func (x *echoCtx) json(method, target string, body interface{}) echo.Context {
	c, rec := newTestContext(x.e, newJSONRequest(method, target, body))
	x.rec = rec
	return c
}

func (x *echoCtx) raw(method, target, body string) echo.Context {
	c, rec := newTestContext(x.e, newJSONRequestRaw(method, target, body))
	x.rec = rec
	return c
}

func (x *echoCtx) path(method, target, name, value string) echo.Context {
	c, rec := newTestContext(x.e, newJSONRequest(method, target, nil))
	setPathParams(c, map[string]string{name: value})
	x.rec = rec
	return c
}
