package markdown

import (
	"strings"
	"testing"
)

func TestHTMLParagraphs(t *testing.T) {
	got := HTML("First paragraph.\n\nSecond paragraph.")
	if strings.Count(got, "<p>") != 2 {
		t.Fatalf("expected two paragraphs, got %q", got)
	}
}

func TestHTMLInline(t *testing.T) {
	tests := []struct {
		input    string
		contains string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"- one\n- two", "<li>one</li>"},
	}
	for _, tt := range tests {
		got := HTML(tt.input)
		if !strings.Contains(got, tt.contains) {
			t.Errorf("HTML(%q) = %q, want it to contain %q", tt.input, got, tt.contains)
		}
	}
}

func TestHTMLStripsScripts(t *testing.T) {
	got := HTML("hello <script>alert(1)</script>")
	if strings.Contains(got, "<script") {
		t.Fatalf("script tag survived sanitizing: %q", got)
	}
}

func TestHTMLExternalLinks(t *testing.T) {
	got := HTML("[site](https://example.com)")
	if !strings.Contains(got, `rel="nofollow noopener"`) && !strings.Contains(got, "nofollow") {
		t.Errorf("expected nofollow on external link, got %q", got)
	}
	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("expected target=_blank on external link, got %q", got)
	}
}
