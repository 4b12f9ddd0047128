package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gist/feedsync/internal/model"
)

func TestFeed_StructuralEquality(t *testing.T) {
	a := model.Feed{Title: "Go", Subtitle: "news", Link: "https://go.dev/feed", Active: true}
	b := a
	require.True(t, a == b)

	b.Active = false
	require.False(t, a == b, "feeds differing only in Active are different feeds")
}

func TestFeed_With(t *testing.T) {
	f := model.Feed{Title: "A", Link: "l"}

	require.Equal(t, "B", f.With(model.FeedFieldTitle, model.FeedFieldValue{Text: "B"}).Title)
	require.Equal(t, "sub", f.With(model.FeedFieldSubtitle, model.FeedFieldValue{Text: "sub"}).Subtitle)
	require.Equal(t, "l2", f.With(model.FeedFieldLink, model.FeedFieldValue{Text: "l2"}).Link)
	require.True(t, f.With(model.FeedFieldActive, model.FeedFieldValue{Flag: true}).Active)
	require.Equal(t, "A", f.Title, "With must not mutate the receiver")
}

func TestEntry_Equal(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	f1 := model.Feed{Title: "F1", Link: "f1"}
	a := model.Entry{ID: 1, Link: "a", Updated: ts, Sources: []model.Feed{f1}}
	b := model.Entry{ID: 1, Link: "a", Updated: ts.UTC(), Sources: []model.Feed{f1}}
	require.True(t, a.Equal(b))

	b.Sources = []model.Feed{{Title: "F1", Link: "f1", Active: true}}
	require.False(t, a.Equal(b))

	c := a
	c.Seen = true
	require.False(t, a.Equal(c))

	require.True(t, model.Entry{}.Equal(model.Entry{Sources: []model.Feed{}}))
}

func TestEntry_CitesFeed(t *testing.T) {
	f1 := model.Feed{Title: "F1", Link: "f1"}
	e := model.Entry{Sources: []model.Feed{f1}}
	require.True(t, e.CitesFeed(f1))
	require.False(t, e.CitesFeed(model.Feed{Title: "F1 renamed", Link: "f1"}))
	require.False(t, model.Entry{}.CitesFeed(f1))
}

func TestEntry_Toggle(t *testing.T) {
	e := model.Entry{Flagged: true, Seen: false, Bookmark: true}
	require.Equal(t, model.EntryPatch{Field: model.EntryFieldFlagged, Value: false}, e.Toggle(model.EntryFieldFlagged))
	require.Equal(t, model.EntryPatch{Field: model.EntryFieldSeen, Value: true}, e.Toggle(model.EntryFieldSeen))
	require.Equal(t, model.EntryPatch{Field: model.EntryFieldBookmark, Value: false}, e.Toggle(model.EntryFieldBookmark))
}

func TestParseFilter(t *testing.T) {
	for _, f := range []model.Filter{model.FilterAll, model.FilterUnseen, model.FilterBookmarked, model.FilterTrending} {
		parsed, err := model.ParseFilter(f.String())
		require.NoError(t, err)
		require.Equal(t, f, parsed)
	}
	_, err := model.ParseFilter("popular")
	require.Error(t, err)
}

func TestParseFields(t *testing.T) {
	ef, err := model.ParseEntryField("bookmark")
	require.NoError(t, err)
	require.Equal(t, model.EntryFieldBookmark, ef)
	_, err = model.ParseEntryField("read")
	require.Error(t, err)

	ff, err := model.ParseFeedField("active")
	require.NoError(t, err)
	require.Equal(t, model.FeedFieldActive, ff)
	_, err = model.ParseFeedField("folder")
	require.Error(t, err)
}
