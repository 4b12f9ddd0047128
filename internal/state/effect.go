package state

import "gist/feedsync/internal/model"

// Effect is work Update asks the runtime to perform. Its outcome comes back
// as a Msg.
type Effect interface {
	isEffect()
}

// FetchEntries -> EntriesFetched | EntriesFetchFailed
type FetchEntries struct{}

// FetchFeeds -> FeedsFetched | FeedsFetchFailed
type FetchFeeds struct{}

// ResolveZone -> ZoneResolved | ZoneFailed. An empty Name means the local zone.
type ResolveZone struct{ Name string }

// CreateFeed -> AddFeedConfirmed | AddFeedFailed
type CreateFeed struct{ Link string }

// SaveFeed posts Edited to the endpoint keyed by the original link.
// -> EditConfirmed | EditFailed
type SaveFeed struct {
	Original model.OriginalFeed
	Edited   model.Feed
}

// UpdateEntry -> EntryUpdateConfirmed | EntryUpdateFailed
type UpdateEntry struct {
	Entry model.Entry
	Patch model.EntryPatch
}

// OpenSync starts the sync channel.
// -> SyncProgress* then SyncDone | SyncFailed
type OpenSync struct{}

// Navigate -> Navigated
type Navigate struct{ Route Route }

func (FetchEntries) isEffect() {}
func (FetchFeeds) isEffect()   {}
func (ResolveZone) isEffect()  {}
func (CreateFeed) isEffect()   {}
func (SaveFeed) isEffect()     {}
func (UpdateEntry) isEffect()  {}
func (OpenSync) isEffect()     {}
func (Navigate) isEffect()     {}
