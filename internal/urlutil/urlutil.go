package urlutil

import (
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidFeedLink = errors.New("feed link must be an absolute http or https URL")

// FeedLink normalises a subscription link: surrounding space and the
// fragment are dropped, and only absolute http(s) URLs with a host pass.
func FeedLink(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidFeedLink
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", ErrInvalidFeedLink
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return "", ErrInvalidFeedLink
	}
	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String(), nil
}
