package webie

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gjc14/webie/plugin"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustSave(t *testing.T, s *Store, p BlogPost) {
	t.Helper()
	if err := s.SavePost(p); err != nil {
		t.Fatalf("SavePost(%s) failed: %v", p.Slug, err)
	}
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, BlogPost{
		Slug:      "test-post",
		Title:     "Test Post",
		Date:      "2024-01-15",
		Tags:      []string{"Go", " testing "},
		Summary:   "A test post summary",
		Content:   "# Test Content",
		Published: true,
	})

	got, err := s.GetPost("test-post")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Test Post" || got.Date != "2024-01-15" || got.Content != "# Test Content" {
		t.Errorf("unexpected post: %+v", got)
	}
	if got.Link != "/blog/test-post/" {
		t.Errorf("Link = %q, want %q", got.Link, "/blog/test-post/")
	}
	if !reflect.DeepEqual(got.Tags, []string{"go", "testing"}) {
		t.Errorf("Tags = %v, want [go testing]", got.Tags)
	}
}

func TestDraftsAreHiddenFromPublicQueries(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, BlogPost{Slug: "draft", Title: "Draft", Date: "2024-02-01", Tags: []string{"wip"}})
	mustSave(t, s, BlogPost{Slug: "live", Title: "Live", Date: "2024-01-01", Published: true})

	if _, err := s.GetPost("draft"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetPost(draft) err = %v, want ErrNotFound", err)
	}
	if p, err := s.GetPostAny("draft"); err != nil || p.Published {
		t.Fatalf("GetPostAny(draft) = %+v, %v", p, err)
	}
	posts, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "live" {
		t.Fatalf("ListPosts = %+v, want only live", posts)
	}
	all, err := s.ListAllPosts()
	if err != nil {
		t.Fatalf("ListAllPosts failed: %v", err)
	}
	if len(all) != 2 || all[0].Slug != "draft" {
		t.Fatalf("ListAllPosts order = %+v, want draft first", all)
	}
}

func TestListPostsByTag(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, BlogPost{Slug: "a", Date: "2024-01-03", Tags: []string{"go", "web"}, Published: true})
	mustSave(t, s, BlogPost{Slug: "b", Date: "2024-01-02", Tags: []string{"golang"}, Published: true})
	mustSave(t, s, BlogPost{Slug: "c", Date: "2024-01-01", Tags: []string{"go"}, Published: true})

	posts, err := s.ListPosts(" GO ")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	if !reflect.DeepEqual(slugs, []string{"a", "c"}) {
		t.Fatalf("slugs = %v, want [a c]", slugs)
	}
}

func TestTagCountsAndListTags(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, BlogPost{Slug: "a", Date: "2024-01-01", Tags: []string{"go", "web"}, Published: true})
	mustSave(t, s, BlogPost{Slug: "b", Date: "2024-01-02", Tags: []string{"go"}, Published: true})
	mustSave(t, s, BlogPost{Slug: "c", Date: "2024-01-03", Tags: []string{"secret"}})

	terms, err := s.TagCounts(context.Background())
	if err != nil {
		t.Fatalf("TagCounts failed: %v", err)
	}
	want := []plugin.Term{{Name: "go", Count: 2}, {Name: "web", Count: 1}}
	if !reflect.DeepEqual(terms, want) {
		t.Fatalf("TagCounts = %+v, want %+v", terms, want)
	}

	tags, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"go", "web"}) {
		t.Fatalf("ListTags = %v", tags)
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, BlogPost{Slug: "gone", Date: "2024-01-01", Published: true})
	if err := s.DeletePost("gone"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetPostAny("gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("post still present: %v", err)
	}
}

func TestImages(t *testing.T) {
	s := setupTestStore(t)
	img := Image{Filename: "cat.jpg", OriginalName: "Cat.PNG", Width: 800, Height: 600, Size: 1234, UploadedAt: "2024-01-01T00:00:00Z"}
	if err := s.SaveImage(img); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}
	if ok, err := s.ImageExists("cat.jpg"); err != nil || !ok {
		t.Fatalf("ImageExists = %v, %v", ok, err)
	}
	images, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}
	if len(images) != 1 || images[0] != img {
		t.Fatalf("ListImages = %+v", images)
	}
	if err := s.DeleteImage("cat.jpg"); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}
	if ok, _ := s.ImageExists("cat.jpg"); ok {
		t.Fatal("image still recorded")
	}
}

func TestParseTags(t *testing.T) {
	tests := map[string][]string{
		"":         nil,
		",,":       nil,
		",go,":     {"go"},
		",go,web,": {"go", "web"},
	}
	for in, want := range tests {
		if got := ParseTags(in); !reflect.DeepEqual(got, want) {
			t.Errorf("ParseTags(%q) = %v, want %v", in, got, want)
		}
	}
}
