// Package view derives what the renderer shows from the snapshot lists.
// Everything here is a pure function of its arguments.
package view

import (
	"github.com/samber/lo"

	"gist/feedsync/internal/model"
)

// Derive applies the filter tab and then, if a feed is selected, keeps only
// entries citing a feed equal to it. Input order is preserved. The result
// never aliases entries.
func Derive(entries []model.Entry, filter model.Filter, selectedFeed *model.Feed) []model.Entry {
	return lo.Filter(entries, func(e model.Entry, _ int) bool {
		if !matchesFilter(e, filter) {
			return false
		}
		return selectedFeed == nil || e.CitesFeed(*selectedFeed)
	})
}

func matchesFilter(e model.Entry, filter model.Filter) bool {
	switch filter {
	case model.FilterUnseen:
		return !e.Seen
	case model.FilterBookmarked:
		return e.Bookmark
	default:
		return true
	}
}

// SelectedEntry returns the entry at index in an already derived view.
func SelectedEntry(derived []model.Entry, index int) (model.Entry, bool) {
	if index < 0 || index >= len(derived) {
		return model.Entry{}, false
	}
	return derived[index], true
}

// Reanchor finds the position of the entry with the given id in a freshly
// derived view.
func Reanchor(derived []model.Entry, id int64) (int, bool) {
	_, idx, ok := lo.FindIndexOf(derived, func(e model.Entry) bool {
		return e.ID == id
	})
	return idx, ok
}
