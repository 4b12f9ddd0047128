// Package replace swaps one value for another wherever it occurs in the
// snapshot lists. Matching is by value, never by position or pointer.
package replace

import (
	"github.com/samber/lo"

	"gist/feedsync/internal/model"
)

// Everywhere replaces every feed equal to original with updated, both in the
// feed list and inside each entry's sources. Entries that do not cite
// original come back untouched, sharing their Sources slice with the input.
// Neither input slice is modified.
func Everywhere(original, updated model.Feed, feeds []model.Feed, entries []model.Entry) ([]model.Feed, []model.Entry) {
	return Feeds(original, updated, feeds), Sources(original, updated, entries)
}

// Feeds replaces every feed equal to original.
func Feeds(original, updated model.Feed, feeds []model.Feed) []model.Feed {
	if feeds == nil {
		return nil
	}
	return lo.Map(feeds, func(f model.Feed, _ int) model.Feed {
		if f == original {
			return updated
		}
		return f
	})
}

// Sources rewrites the source lists of the entries that cite original.
func Sources(original, updated model.Feed, entries []model.Entry) []model.Entry {
	if entries == nil {
		return nil
	}
	return lo.Map(entries, func(e model.Entry, _ int) model.Entry {
		if !e.CitesFeed(original) {
			return e
		}
		e.Sources = Feeds(original, updated, e.Sources)
		return e
	})
}

// Entry replaces every entry structurally equal to original with updated.
// When nothing matches by value (a concurrent edit already rewrote the entry's
// sources, say) it falls back to the Link key, which is unique per entry.
// It reports whether any element was replaced.
func Entry(entries []model.Entry, original, updated model.Entry) ([]model.Entry, bool) {
	if lo.ContainsBy(entries, original.Equal) {
		return lo.Map(entries, func(e model.Entry, _ int) model.Entry {
			if e.Equal(original) {
				return updated
			}
			return e
		}), true
	}
	_, idx, found := lo.FindIndexOf(entries, func(e model.Entry) bool {
		return e.Link == original.Link
	})
	if !found {
		return entries, false
	}
	next := make([]model.Entry, len(entries))
	copy(next, entries)
	next[idx] = updated
	return next, true
}
