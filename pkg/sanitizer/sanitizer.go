// Package sanitizer cleans server-provided HTML before it is projected to a
// renderer.
package sanitizer

import (
	"io"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func contentPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		policy = p
	})
	return policy
}

// HTML removes scripts, event handlers and other unsafe markup from entry
// content while keeping formatting, links and images.
func HTML(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	return contentPolicy().Sanitize(input)
}

// URL returns rawURL when it is an absolute http(s) URL and "" otherwise.
// Entry images and links pass through here before being rendered as attributes.
func URL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	lower := strings.ToLower(rawURL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return rawURL
	}
	return ""
}

// atomNameRegex matches the Atom-style <name> element.
var atomNameRegex = regexp.MustCompile(`<name>([^<]+)</name>`)

// Author cleans an author field that may carry nested Atom markup such as
// "<name>Jane</name><title>Editor</title>", preferring the <name> text.
func Author(author string) string {
	author = strings.TrimSpace(author)
	if !strings.Contains(author, "<") {
		return author
	}
	if matches := atomNameRegex.FindStringSubmatch(author); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	return StripTags(author)
}

// StripTags keeps only the text nodes of input. It is for display text, not
// a security boundary; use HTML for that.
func StripTags(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	tokenizer := html.NewTokenizer(strings.NewReader(input))
	var buf strings.Builder
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			if tokenizer.Err() == io.EOF {
				break
			}
			return ""
		}
		if tt == html.TextToken {
			buf.WriteString(tokenizer.Token().Data)
		}
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}

// Excerpt is StripTags cut to at most limit runes, with an ellipsis when cut.
func Excerpt(input string, limit int) string {
	text := StripTags(input)
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
