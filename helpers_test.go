package webie

import (
	"encoding/json"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":       "hello-world",
		"  Go 1.24 is out ": "go-1-24-is-out",
		"---":               "",
		"Ünïcode & stuff!":  "n-code-stuff",
	}
	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"http://example.com", nil, "http://example.com/"},
		{"http://example.com/", []string{"blog", "x"}, "http://example.com/blog/x/"},
		{"http://example.com/sub", []string{"/about/"}, "http://example.com/sub/about/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func TestFilterRelatedPosts(t *testing.T) {
	cur := BlogPost{Slug: "a", Tags: []string{"Go"}}
	posts := []BlogPost{
		{Slug: "a", Tags: []string{"go"}},
		{Slug: "b", Tags: []string{"go", "web"}},
		{Slug: "c", Tags: []string{"rust"}},
	}
	got := FilterRelatedPosts(cur, posts)
	if len(got) != 1 || got[0].Slug != "b" {
		t.Fatalf("related = %+v", got)
	}
}

func TestBlogPostingJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Site", URL: "https://example.com", Author: "Sam"}
	raw := BlogPostingJsonLD(BlogPost{Title: "T", Slug: "t", Tags: []string{"go", "web"}, Date: "2026-01-02"}, cfg)

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("invalid JSON-LD %q: %v", raw, err)
	}
	if doc["@type"] != "BlogPosting" || doc["url"] != "https://example.com/blog/t/" {
		t.Errorf("doc = %v", doc)
	}
	if doc["keywords"] != "go, web" {
		t.Errorf("keywords = %v", doc["keywords"])
	}
	if a, _ := doc["author"].(map[string]any); a["name"] != "Sam" {
		t.Errorf("author = %v", doc["author"])
	}
}

func TestWebsiteJsonLDOmitsEmptyAuthor(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(WebsiteJsonLD(SiteConfig{Name: "S", URL: "http://x"})), &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["author"]; ok {
		t.Errorf("author present: %v", doc)
	}
}

func TestAdminSegment(t *testing.T) {
	tests := map[string]string{
		"/admin/":            "",
		"/admin/posts/":      "posts",
		"/admin/posts/x/":    "posts",
		"/admin/taxonomies/": "taxonomies",
		"/about/":            "",
	}
	for in, want := range tests {
		if got := adminSegment(in); got != want {
			t.Errorf("adminSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
