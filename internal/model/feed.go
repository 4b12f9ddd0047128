package model

import "fmt"

// Feed is a subscription. It has no server id: Link addresses the edit
// endpoint, but identity inside the snapshot is the whole value, so two Feeds
// are the same feed only when every field matches (Go == on the struct).
type Feed struct {
	Title    string
	Subtitle string
	Link     string
	Active   bool
}

// OriginalFeed is the pre-edit snapshot of a Feed. It stays fixed while the
// live copy is edited and is the key used to replace the feed everywhere once
// the server confirms the edit.
type OriginalFeed struct {
	Feed Feed
}

// FeedEdit is the open edit form.
type FeedEdit struct {
	Original OriginalFeed
	Live     Feed
}

// FeedField names an editable Feed field.
type FeedField int

const (
	FeedFieldTitle FeedField = iota
	FeedFieldSubtitle
	FeedFieldLink
	FeedFieldActive
)

func (f FeedField) String() string {
	switch f {
	case FeedFieldTitle:
		return "title"
	case FeedFieldSubtitle:
		return "subtitle"
	case FeedFieldLink:
		return "link"
	case FeedFieldActive:
		return "active"
	default:
		return fmt.Sprintf("FeedField(%d)", int(f))
	}
}

// ParseFeedField is the inverse of FeedField.String.
func ParseFeedField(s string) (FeedField, error) {
	switch s {
	case "title":
		return FeedFieldTitle, nil
	case "subtitle":
		return FeedFieldSubtitle, nil
	case "link":
		return FeedFieldLink, nil
	case "active":
		return FeedFieldActive, nil
	}
	return 0, fmt.Errorf("unknown feed field %q", s)
}

// FeedFieldValue is the new value of a single field. Text is used for the
// string fields and Flag for Active.
type FeedFieldValue struct {
	Text string
	Flag bool
}

// With returns a copy of f with one field replaced.
func (f Feed) With(field FeedField, v FeedFieldValue) Feed {
	switch field {
	case FeedFieldTitle:
		f.Title = v.Text
	case FeedFieldSubtitle:
		f.Subtitle = v.Text
	case FeedFieldLink:
		f.Link = v.Text
	case FeedFieldActive:
		f.Active = v.Flag
	}
	return f
}
