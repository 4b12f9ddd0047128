package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gist/feedsync/pkg/sanitizer"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:        "script removed",
			input:       `<p>Hello</p><script>alert(1)</script>`,
			contains:    []string{"<p>Hello</p>"},
			notContains: []string{"script", "alert"},
		},
		{
			name:        "event handler removed",
			input:       `<img src="https://a.example/i.png" onerror="steal()">`,
			contains:    []string{`src="https://a.example/i.png"`},
			notContains: []string{"onerror"},
		},
		{
			name:        "javascript link dropped",
			input:       `<a href="javascript:alert(1)">x</a>`,
			notContains: []string{"javascript"},
		},
		{
			name:     "external link hardened",
			input:    `<a href="https://a.example/post">post</a>`,
			contains: []string{"nofollow", `target="_blank"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.HTML(tt.input)
			for _, s := range tt.contains {
				require.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				require.NotContains(t, got, s)
			}
		})
	}

	require.Equal(t, "", sanitizer.HTML("   "))
}

func TestURL(t *testing.T) {
	require.Equal(t, "https://a.example/i.png", sanitizer.URL(" https://a.example/i.png "))
	require.Equal(t, "HTTP://A.EXAMPLE", sanitizer.URL("HTTP://A.EXAMPLE"))
	require.Equal(t, "", sanitizer.URL("javascript:alert(1)"))
	require.Equal(t, "", sanitizer.URL("/relative.png"))
	require.Equal(t, "", sanitizer.URL(""))
}

func TestAuthor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<name>Daniel Roggen</name><title>Staff Research Scientist</title><company/>", "Daniel Roggen"},
		{"John Doe", "John Doe"},
		{"john@example.com (John Doe)", "john@example.com (John Doe)"},
		{"<author>Jane Smith</author>", "Jane Smith"},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, sanitizer.Author(tt.input), tt.input)
	}
}

func TestStripTags(t *testing.T) {
	require.Equal(t, "Hello World", sanitizer.StripTags("<p>Hello <strong>World</strong></p>"))
	require.Equal(t, "a b", sanitizer.StripTags("<p>a</p>\n\n<p>b</p>"))
	require.Equal(t, "Plain text", sanitizer.StripTags("Plain text"))
	require.Equal(t, "", sanitizer.StripTags(""))
}

func TestExcerpt(t *testing.T) {
	require.Equal(t, "Hello World", sanitizer.Excerpt("<p>Hello World</p>", 20))
	require.Equal(t, "Hello…", sanitizer.Excerpt("<p>Hello World</p>", 6))
	require.Equal(t, "héllo…", sanitizer.Excerpt("héllo wörld", 5))
	require.Equal(t, "Hello World", sanitizer.Excerpt("Hello World", 0))
}
