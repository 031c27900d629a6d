package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"`a *b* c`", "<code>a *b* c</code>"},
		{"[home](/)", `<a href="/">home</a>`},
		{"[x](javascript:void)", "x"},
		{"![cat](/media/cat.png)", `<img src="/media/cat.png" alt="cat" loading="lazy"/>`},
		{"<script>", "&lt;script&gt;"},
	}
	for _, tt := range tests {
		if got := Inline(tt.input); got != tt.expected {
			t.Errorf("Inline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestInlineEmphasisSkipsAttributes(t *testing.T) {
	got := Inline("[link](https://example.com/*path*)")
	if strings.Contains(got, "<em>") {
		t.Fatalf("emphasis applied inside href: %q", got)
	}
}

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"heading", "# Title", "<h1>Title</h1>"},
		{"h3", "### Sub", "<h3>Sub</h3>"},
		{"paragraph joins lines", "one\ntwo", "<p>one two</p>"},
		{"paragraphs", "one\n\ntwo", "<p>one</p><p>two</p>"},
		{"bullets", "- a\n- b", "<ul><li>a</li><li>b</li></ul>"},
		{"numbers", "1. a\n2. b", "<ol><li>a</li><li>b</li></ol>"},
		{"quote", "> a\n> b", "<blockquote>a b</blockquote>"},
		{"rule", "---", "<hr/>"},
		{"list then para", "- a\ntext", "<ul><li>a</li></ul><p>text</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.input); got != tt.want {
				t.Fatalf("Render(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderCodeFence(t *testing.T) {
	got := Render("```go\nx := <-ch\n**not bold**\n```\nafter")
	want := `<pre><code class="language-go">x := &lt;-ch` + "\n" + `**not bold**` + "\n" + `</code></pre><p>after</p>`
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderUnterminatedFence(t *testing.T) {
	got := Render("```\ncode")
	if !strings.HasSuffix(got, "</code></pre>") {
		t.Fatalf("fence not closed: %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := map[string]string{
		"https://example.com": "https://example.com",
		"mailto:a@b.c":        "mailto:a@b.c",
		"/admin/":             "/admin/",
		"#top":                "#top",
		"javascript:void(0)":  "",
		"data:text/html,x":    "",
		"relative/path":       "",
		"":                    "",
	}
	for in, want := range tests {
		if got := SafeURL(in); got != want {
			t.Errorf("SafeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Component("# Hi").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.String() != "<h1>Hi</h1>" {
		t.Fatalf("got %q", buf.String())
	}
}
