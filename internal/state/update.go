package state

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"gist/feedsync/internal/model"
	"gist/feedsync/internal/remote"
	"gist/feedsync/internal/replace"
	"gist/feedsync/internal/view"
)

// Update applies msg to s. It is pure: the returned snapshot shares no
// mutated memory with s, and all I/O is expressed as returned effects.
// Messages whose precondition does not hold leave the snapshot unchanged.
func Update(s Snapshot, msg Msg) (Snapshot, []Effect) {
	switch m := msg.(type) {
	case EntriesFetched:
		s.Entries = s.Entries.Received(m.Entries)
		return s.reanchored(), nil
	case EntriesFetchFailed:
		s.Entries = s.Entries.Failed(m.Err)
		return s.notify("load entries", m.Err).reanchored(), nil
	case FeedsFetched:
		s.Feeds = s.Feeds.Received(m.Feeds)
		return s, nil
	case FeedsFetchFailed:
		s.Feeds = s.Feeds.Failed(m.Err)
		return s.notify("load feeds", m.Err), nil
	case ZoneResolved:
		s.Zone = remote.Received(m.Location)
		return s, nil
	case ZoneFailed:
		s.Zone = remote.Fail[*time.Location](m.Err)
		return s.notify("resolve time zone", m.Err), nil
	case Refresh:
		return s, []Effect{FetchEntries{}, FetchFeeds{}}

	case RequestAddFeed:
		link := strings.TrimSpace(m.Link)
		if link == "" {
			return s, nil
		}
		return s, []Effect{CreateFeed{Link: link}}
	case AddFeedConfirmed:
		s.Feeds, _ = s.Feeds.AppendUnique(m.Feed, func(a, b model.Feed) bool { return a == b })
		return s, []Effect{Navigate{Route: RouteHome}}
	case AddFeedFailed:
		return s.notify("add feed", m.Err), nil

	case OpenEditFeed:
		s.Editing = &model.FeedEdit{Original: model.OriginalFeed{Feed: m.Feed}, Live: m.Feed}
		s.Route = RouteEditFeed
		return s, nil
	case RequestEditField:
		if s.Editing == nil || s.Editing.Original != m.Original {
			return s, nil
		}
		s.Editing = &model.FeedEdit{
			Original: s.Editing.Original,
			Live:     s.Editing.Live.With(m.Field, m.Value),
		}
		return s, nil
	case SubmitEdit:
		if s.Editing == nil || s.Editing.Original != m.Original {
			return s, nil
		}
		return s, []Effect{SaveFeed{Original: m.Original, Edited: m.Edited}}
	case EditConfirmed:
		return s.feedReplaced(m.Original.Feed, m.Updated, m.Original), []Effect{Navigate{Route: RouteHome}}
	case EditFailed:
		return s.notify("save feed", m.Err), nil

	case ToggleEntry:
		if s.Entries.Status() != remote.Loaded {
			return s, nil
		}
		s.Refreshing = true
		return s, []Effect{UpdateEntry{Entry: m.Entry, Patch: m.Entry.Toggle(m.Field)}}
	case EntryUpdateConfirmed:
		s.Entries = s.Entries.Map(func(entries []model.Entry) []model.Entry {
			next, _ := replace.Entry(entries, m.Original, m.Updated)
			return next
		})
		s.Refreshing = false
		return s.reanchored(), nil
	case EntryUpdateFailed:
		s.Refreshing = false
		return s.notify("update entry", m.Err), nil

	case RequestSync:
		if s.Sync.InProgress {
			s.Sync.Progress = 0
			return s, nil
		}
		s.Refreshing = true
		s.Sync = SyncState{InProgress: true}
		return s, []Effect{OpenSync{}}
	case SyncProgress:
		if !s.Sync.InProgress {
			return s, nil
		}
		s.Sync.Progress = clamp01(m.Progress)
		return s, nil
	case SyncDone:
		if !s.Sync.InProgress {
			return s, nil
		}
		s.Sync = SyncState{}
		s.Refreshing = false
		return s, []Effect{FetchEntries{}, FetchFeeds{}}
	case SyncFailed:
		if !s.Sync.InProgress {
			return s, nil
		}
		s.Sync = SyncState{}
		s.Refreshing = false
		return s.notify("sync", m.Err), nil

	case ChangeFilter:
		s.Filter = m.Filter
		return s.reanchored(), nil
	case SelectFeed:
		if s.Selection.Feed != nil && *s.Selection.Feed == m.Feed {
			s.Selection.Feed = nil
		} else {
			f := m.Feed
			s.Selection.Feed = &f
		}
		return s.reanchored(), nil
	case SelectEntry:
		idx := m.Index
		s.Selection.EntryIndex = &idx
		s.Selection.EntryID = nil
		return s.reanchored(), nil
	case DiscardNotification:
		if m.Index < 0 || m.Index >= len(s.Notifications) {
			return s, nil
		}
		s.Notifications = slices.Concat(s.Notifications[:m.Index], s.Notifications[m.Index+1:])
		return s, nil
	case Navigated:
		s.Route = m.Route
		if m.Route != RouteEditFeed {
			s.Editing = nil
		}
		return s, nil
	}
	return s, nil
}

// feedReplaced swaps original for updated in feeds, entry sources and the
// feed selection in one step, and closes the edit form it came from.
func (s Snapshot) feedReplaced(original, updated model.Feed, form model.OriginalFeed) Snapshot {
	feeds, feedsLoaded := s.Feeds.Items()
	entries, entriesLoaded := s.Entries.Items()
	feeds, entries = replace.Everywhere(original, updated, feeds, entries)
	if feedsLoaded {
		s.Feeds = s.Feeds.Received(feeds)
	}
	if entriesLoaded {
		s.Entries = s.Entries.Received(entries)
	}
	if s.Selection.Feed != nil && *s.Selection.Feed == original {
		f := updated
		s.Selection.Feed = &f
	}
	if s.Editing != nil && s.Editing.Original == form {
		s.Editing = nil
	}
	return s.reanchored()
}

// reanchored re-derives the selected index from the anchored entry id after
// anything that can change the view. A selection whose entry left the view
// is cleared, and so is an index past the end of a loaded view. Before
// entries load the index is kept until it can be anchored.
func (s Snapshot) reanchored() Snapshot {
	sel := s.Selection
	if sel.EntryIndex == nil {
		return s
	}
	derived := s.View()
	if sel.EntryID == nil {
		if e, ok := view.SelectedEntry(derived, *sel.EntryIndex); ok {
			id := e.ID
			sel.EntryID = &id
		} else if s.Entries.Status() == remote.Loaded {
			sel.EntryIndex = nil
		}
		s.Selection = sel
		return s
	}
	if idx, ok := view.Reanchor(derived, *sel.EntryID); ok {
		sel.EntryIndex = &idx
	} else {
		sel.EntryIndex = nil
		sel.EntryID = nil
	}
	s.Selection = sel
	return s
}

func (s Snapshot) notify(op string, err error) Snapshot {
	text := fmt.Sprintf("%s failed", op)
	if err != nil {
		text = fmt.Sprintf("%s failed: %v", op, err)
	}
	s.Notifications = append(slices.Clip(s.Notifications), text)
	return s
}

func clamp01(p float64) float64 {
	switch {
	case math.IsNaN(p) || p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}
