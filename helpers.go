package webie

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, segments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(segments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty trims every value and drops the empty ones.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FilterRelatedPosts finds posts that share at least one tag with current.
func FilterRelatedPosts(current BlogPost, posts []BlogPost) []BlogPost {
	tags := make(map[string]bool, len(current.Tags))
	for _, t := range current.Tags {
		if t = normalizeTag(t); t != "" {
			tags[t] = true
		}
	}
	var related []BlogPost
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			if tags[normalizeTag(t)] {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// JoinTags joins tags with ", " for form fields.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// PathEscape escapes a string for use in a URL path.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

type ldThing struct {
	Type string `json:"@type"`
	Name string `json:"name,omitempty"`
	ID   string `json:"@id,omitempty"`
}

type ldDoc struct {
	Context          string   `json:"@context"`
	Type             string   `json:"@type"`
	Name             string   `json:"name,omitempty"`
	Headline         string   `json:"headline,omitempty"`
	URL              string   `json:"url"`
	Description      string   `json:"description,omitempty"`
	DatePublished    string   `json:"datePublished,omitempty"`
	Keywords         string   `json:"keywords,omitempty"`
	Author           *ldThing `json:"author,omitempty"`
	Publisher        *ldThing `json:"publisher,omitempty"`
	MainEntityOfPage *ldThing `json:"mainEntityOfPage,omitempty"`
}

func (d ldDoc) String() string {
	b, err := json.Marshal(d)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func author(cfg SiteConfig) *ldThing {
	if cfg.Author == "" {
		return nil
	}
	return &ldThing{Type: "Person", Name: cfg.Author}
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	return ldDoc{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        cfg.Name,
		URL:         BuildURL(cfg.URL),
		Description: cfg.Description,
		Author:      author(cfg),
	}.String()
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post BlogPost, cfg SiteConfig) string {
	postURL := BuildURL(cfg.URL, "blog", post.Slug)
	doc := ldDoc{
		Context:          "https://schema.org",
		Type:             "BlogPosting",
		Headline:         post.Title,
		URL:              postURL,
		Description:      post.Summary,
		DatePublished:    post.Date,
		Keywords:         strings.Join(post.Tags, ", "),
		Author:           author(cfg),
		MainEntityOfPage: &ldThing{Type: "WebPage", ID: postURL},
	}
	if cfg.Name != "" {
		doc.Publisher = &ldThing{Type: "Organization", Name: cfg.Name}
	}
	return doc.String()
}
