package webie

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/gjc14/webie/plugin"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// snapshot is one consistent read of the published content.
type snapshot struct {
	posts   []BlogPost
	terms   []plugin.Term
	tags    []string
	fetched time.Time
}

// PostCache keeps published posts and their tag counts in memory for ttl.
type PostCache struct {
	mu    sync.RWMutex
	snap  *snapshot
	ttl   time.Duration
	store *Store
	now   func() time.Time
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl, now: time.Now}
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func (c *PostCache) fresh() bool {
	return c.snap != nil && c.now().Sub(c.snap.fetched) < c.ttl
}

// get returns a fresh snapshot, reloading under the write lock if needed.
func (c *PostCache) get(ctx context.Context) (*snapshot, error) {
	c.mu.RLock()
	if c.fresh() {
		s := c.snap
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fresh() {
		return c.snap, nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return nil, err
	}
	terms, err := c.store.TagCounts(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return nil, err
	}
	c.snap = &snapshot{posts: posts, terms: terms, tags: tags, fetched: c.now()}
	return c.snap, nil
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *PostCache) ListPosts(tag string) ([]BlogPost, error) {
	s, err := c.get(context.Background())
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return s.posts, nil
	}
	want := normalizeTag(tag)
	var filtered []BlogPost
	for _, p := range s.posts {
		for _, t := range p.Tags {
			if normalizeTag(t) == want {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// ListTags returns all unique tags of published posts, sorted.
func (c *PostCache) ListTags() ([]string, error) {
	s, err := c.get(context.Background())
	if err != nil {
		return nil, err
	}
	return s.tags, nil
}

// Terms returns the tag counts of published posts, most used first.
func (c *PostCache) Terms(ctx context.Context) ([]plugin.Term, error) {
	s, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	return s.terms, nil
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(slug string) (BlogPost, error) {
	s, err := c.get(context.Background())
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range s.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return BlogPost{}, ErrNotFound
}
