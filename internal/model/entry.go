package model

import (
	"fmt"
	"slices"
	"time"
)

// Entry is one item of a feed. ID is server-assigned; Link is unique and is
// the key of the update endpoint.
type Entry struct {
	ID       int64
	Title    string
	Summary  string
	Content  string
	Flagged  bool
	Seen     bool
	Bookmark bool
	Image    string
	Link     string
	Updated  time.Time
	Sources  []Feed
}

// Equal reports structural equality across every field, Sources included.
func (e Entry) Equal(other Entry) bool {
	return e.ID == other.ID &&
		e.Title == other.Title &&
		e.Summary == other.Summary &&
		e.Content == other.Content &&
		e.Flagged == other.Flagged &&
		e.Seen == other.Seen &&
		e.Bookmark == other.Bookmark &&
		e.Image == other.Image &&
		e.Link == other.Link &&
		e.Updated.Equal(other.Updated) &&
		slices.Equal(e.Sources, other.Sources)
}

// CitesFeed reports whether f is one of the entry's sources.
func (e Entry) CitesFeed(f Feed) bool {
	return slices.Contains(e.Sources, f)
}

// EntryField is one of the three booleans an entry toggle can flip.
type EntryField int

const (
	EntryFieldFlagged EntryField = iota
	EntryFieldBookmark
	EntryFieldSeen
)

func (f EntryField) String() string {
	switch f {
	case EntryFieldFlagged:
		return "flagged"
	case EntryFieldBookmark:
		return "bookmark"
	case EntryFieldSeen:
		return "seen"
	default:
		return fmt.Sprintf("EntryField(%d)", int(f))
	}
}

// ParseEntryField is the inverse of EntryField.String.
func ParseEntryField(s string) (EntryField, error) {
	switch s {
	case "flagged":
		return EntryFieldFlagged, nil
	case "bookmark":
		return EntryFieldBookmark, nil
	case "seen":
		return EntryFieldSeen, nil
	}
	return 0, fmt.Errorf("unknown entry field %q", s)
}

// EntryPatch is the single-field body sent to the entry update endpoint.
type EntryPatch struct {
	Field EntryField
	Value bool
}

// Toggle returns the patch that inverts field on e.
func (e Entry) Toggle(field EntryField) EntryPatch {
	var current bool
	switch field {
	case EntryFieldFlagged:
		current = e.Flagged
	case EntryFieldBookmark:
		current = e.Bookmark
	case EntryFieldSeen:
		current = e.Seen
	}
	return EntryPatch{Field: field, Value: !current}
}
