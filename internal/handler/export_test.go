package handler

import "time"

// Export for testing
type StateResponse = stateResponse
type EntryResponse = entryResponse
type FeedResponse = feedResponse
type MyFeedResponse = myFeedResponse
type ImportResponse = importResponse

var WriteError = writeError

// SetOPMLClock fixes the export timestamp.
func SetOPMLClock(h *OPMLHandler, now func() time.Time) {
	h.now = now
}
