package state

import (
	"time"

	"gist/feedsync/internal/model"
)

// Msg is an event fed to Update: a user intent, a network response or a sync
// channel message.
type Msg interface {
	isMsg()
}

type EntriesFetched struct{ Entries []model.Entry }

type EntriesFetchFailed struct{ Err error }

type FeedsFetched struct{ Feeds []model.Feed }

type FeedsFetchFailed struct{ Err error }

type ZoneResolved struct{ Location *time.Location }

type ZoneFailed struct{ Err error }

// Refresh re-fetches both collections without a sync.
type Refresh struct{}

type RequestAddFeed struct{ Link string }

type AddFeedConfirmed struct{ Feed model.Feed }

type AddFeedFailed struct{ Err error }

// OpenEditFeed opens the edit form on a copy of feed.
type OpenEditFeed struct{ Feed model.Feed }

// RequestEditField changes one field of the live copy. It never touches the
// network.
type RequestEditField struct {
	Original model.OriginalFeed
	Field    model.FeedField
	Value    model.FeedFieldValue
}

type SubmitEdit struct {
	Original model.OriginalFeed
	Edited   model.Feed
}

type EditConfirmed struct {
	Original model.OriginalFeed
	Updated  model.Feed
}

type EditFailed struct{ Err error }

type ToggleEntry struct {
	Entry model.Entry
	Field model.EntryField
}

type EntryUpdateConfirmed struct {
	Original model.Entry
	Updated  model.Entry
}

type EntryUpdateFailed struct{ Err error }

type RequestSync struct{}

type SyncProgress struct{ Progress float64 }

type SyncDone struct{}

type SyncFailed struct{ Err error }

type ChangeFilter struct{ Filter model.Filter }

type SelectFeed struct{ Feed model.Feed }

type SelectEntry struct{ Index int }

type DiscardNotification struct{ Index int }

type Navigated struct{ Route Route }

func (EntriesFetched) isMsg()       {}
func (EntriesFetchFailed) isMsg()   {}
func (FeedsFetched) isMsg()         {}
func (FeedsFetchFailed) isMsg()     {}
func (ZoneResolved) isMsg()         {}
func (ZoneFailed) isMsg()           {}
func (Refresh) isMsg()              {}
func (RequestAddFeed) isMsg()       {}
func (AddFeedConfirmed) isMsg()     {}
func (AddFeedFailed) isMsg()        {}
func (OpenEditFeed) isMsg()         {}
func (RequestEditField) isMsg()     {}
func (SubmitEdit) isMsg()           {}
func (EditConfirmed) isMsg()        {}
func (EditFailed) isMsg()           {}
func (ToggleEntry) isMsg()          {}
func (EntryUpdateConfirmed) isMsg() {}
func (EntryUpdateFailed) isMsg()    {}
func (RequestSync) isMsg()          {}
func (SyncProgress) isMsg()         {}
func (SyncDone) isMsg()             {}
func (SyncFailed) isMsg()           {}
func (ChangeFilter) isMsg()         {}
func (SelectFeed) isMsg()           {}
func (SelectEntry) isMsg()          {}
func (DiscardNotification) isMsg()  {}
func (Navigated) isMsg()            {}
