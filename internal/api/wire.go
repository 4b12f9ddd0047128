package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"gist/feedsync/internal/model"
)

// TimestampUnit is the epoch unit of EntryWire.Updated.
type TimestampUnit int

const (
	Seconds TimestampUnit = iota
	Milliseconds
)

// ParseTimestampUnit accepts "s", "ms" and their long forms. Empty means seconds.
func ParseTimestampUnit(s string) (TimestampUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "s", "sec", "seconds":
		return Seconds, nil
	case "ms", "milliseconds":
		return Milliseconds, nil
	}
	return 0, fmt.Errorf("unknown timestamp unit %q", s)
}

func (u TimestampUnit) toTime(v int64) time.Time {
	if u == Milliseconds {
		return time.UnixMilli(v)
	}
	return time.Unix(v, 0)
}

type FeedWire struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Link     string `json:"link"`
	Active   bool   `json:"active"`
}

type EntryWire struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Summary  string     `json:"summary"`
	Content  string     `json:"content,omitempty"`
	Flagged  bool       `json:"flagged"`
	Seen     bool       `json:"seen"`
	Bookmark bool       `json:"bookmark"`
	Image    string     `json:"image,omitempty"`
	Link     string     `json:"link"`
	Updated  int64      `json:"updated"`
	Sources  []FeedWire `json:"sources"`
}

type entriesResponse struct {
	Entries []EntryWire `json:"entries"`
}

type feedsResponse struct {
	Feeds []FeedWire `json:"feeds"`
}

type addFeedRequest struct {
	Link string `json:"link"`
}

func feedFromWire(w FeedWire) model.Feed {
	return model.Feed{Title: w.Title, Subtitle: w.Subtitle, Link: w.Link, Active: w.Active}
}

func feedToWire(f model.Feed) FeedWire {
	return FeedWire{Title: f.Title, Subtitle: f.Subtitle, Link: f.Link, Active: f.Active}
}

func (u TimestampUnit) entryFromWire(w EntryWire) model.Entry {
	return model.Entry{
		ID:       w.ID,
		Title:    w.Title,
		Summary:  w.Summary,
		Content:  w.Content,
		Flagged:  w.Flagged,
		Seen:     w.Seen,
		Bookmark: w.Bookmark,
		Image:    w.Image,
		Link:     w.Link,
		Updated:  u.toTime(w.Updated),
		Sources: lo.Map(w.Sources, func(f FeedWire, _ int) model.Feed {
			return feedFromWire(f)
		}),
	}
}

// entryPatchBody encodes the single-field toggle body, e.g. {"seen":true}.
func entryPatchBody(p model.EntryPatch) map[string]bool {
	return map[string]bool{p.Field.String(): p.Value}
}
