// Package state is the reconciliation core: one immutable Snapshot and a pure
// reducer that turns messages into the next snapshot plus outbound effects.
package state

import (
	"time"

	"gist/feedsync/internal/model"
	"gist/feedsync/internal/remote"
	"gist/feedsync/internal/view"
)

// Route is the screen the renderer should show.
type Route int

const (
	RouteHome Route = iota
	RouteAddFeed
	RouteEditFeed
)

func (r Route) String() string {
	switch r {
	case RouteAddFeed:
		return "add-feed"
	case RouteEditFeed:
		return "edit-feed"
	default:
		return "home"
	}
}

// Selection is the view selection. EntryIndex is positional into the
// filtered view; EntryID anchors it so the index can be re-derived whenever
// the view changes underneath it.
type Selection struct {
	Feed       *model.Feed
	EntryIndex *int
	EntryID    *int64
}

// SyncState tracks the single background sync.
type SyncState struct {
	InProgress bool
	Progress   float64
}

// Snapshot is everything the renderer can observe. Treat it as a value:
// Update never mutates the slices or pointees of a snapshot it was given.
type Snapshot struct {
	Entries       remote.Collection[model.Entry]
	Feeds         remote.Collection[model.Feed]
	Zone          remote.Value[*time.Location]
	Filter        model.Filter
	Selection     Selection
	Sync          SyncState
	Refreshing    bool
	Editing       *model.FeedEdit
	Route         Route
	Notifications []string
}

// View is the filtered entry list currently on screen.
func (s Snapshot) View() []model.Entry {
	entries, _ := s.Entries.Items()
	return view.Derive(entries, s.Filter, s.Selection.Feed)
}

// SelectedEntry resolves the selection against the current view.
func (s Snapshot) SelectedEntry() (model.Entry, bool) {
	if s.Selection.EntryIndex == nil {
		return model.Entry{}, false
	}
	return view.SelectedEntry(s.View(), *s.Selection.EntryIndex)
}

// Location is the resolved zone, or UTC until it loads.
func (s Snapshot) Location() *time.Location {
	if loc, ok := s.Zone.Get(); ok && loc != nil {
		return loc
	}
	return time.UTC
}

// Init is the starting snapshot and the effects that populate it.
func Init(zone string) (Snapshot, []Effect) {
	return Snapshot{}, []Effect{FetchEntries{}, FetchFeeds{}, ResolveZone{Name: zone}}
}
