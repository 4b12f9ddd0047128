package model

import "fmt"

// Filter selects the entries tab. It is view state only.
type Filter int

const (
	FilterAll Filter = iota
	FilterUnseen
	FilterBookmarked
	// FilterTrending has no signal of its own yet and shows every entry.
	FilterTrending
)

func (f Filter) String() string {
	switch f {
	case FilterAll:
		return "all"
	case FilterUnseen:
		return "unseen"
	case FilterBookmarked:
		return "bookmarked"
	case FilterTrending:
		return "trending"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

func ParseFilter(s string) (Filter, error) {
	switch s {
	case "all", "":
		return FilterAll, nil
	case "unseen":
		return FilterUnseen, nil
	case "bookmarked":
		return FilterBookmarked, nil
	case "trending":
		return FilterTrending, nil
	}
	return 0, fmt.Errorf("unknown filter %q", s)
}
