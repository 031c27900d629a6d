package views

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/gjc14/webie"
	"github.com/gjc14/webie/markdown"
)

// Home lists published posts with the tag filter.
func Home(site webie.SiteConfig, meta webie.PageMeta, posts []webie.BlogPost, activeTag string, tags []string) templ.Component {
	return document(site, meta, "", component(func(p *page) {
		p.comp(siteHeader(site))
		p.raw(`<main>`)
		if len(tags) > 0 {
			p.raw(`<nav class="tags"><a`)
			p.attr("class", TagClass(activeTag == ""))
			p.raw(` href="/">all</a>`)
			for _, t := range tags {
				p.raw(`<a`)
				p.attr("class", TagClass(t == activeTag))
				p.href("/?tag=" + url.QueryEscape(t))
				p.raw(`>#`)
				p.text(t)
				p.raw(`</a>`)
			}
			p.raw(`</nav>`)
		}
		if len(posts) == 0 {
			p.raw(`<p class="empty">No posts yet.</p>`)
		}
		for _, post := range posts {
			p.comp(postCard(post))
		}
		p.raw(`</main>`)
	}))
}

func postCard(post webie.BlogPost) templ.Component {
	return component(func(p *page) {
		p.raw(`<article class="card"><h2><a`)
		p.href(post.Link)
		p.raw(`>`)
		p.text(post.Title)
		p.raw(`</a></h2><time>`)
		p.text(post.Date)
		p.raw(`</time>`)
		if post.Summary != "" {
			p.raw(`<p>`)
			p.text(post.Summary)
			p.raw(`</p>`)
		}
		p.raw(`</article>`)
	})
}

// Post renders a single post with related posts.
func Post(site webie.SiteConfig, meta webie.PageMeta, post webie.BlogPost, related []webie.BlogPost) templ.Component {
	return document(site, meta, "", component(func(p *page) {
		p.comp(siteHeader(site))
		p.raw(`<main><article><h1>`)
		p.text(post.Title)
		p.raw(`</h1><time>`)
		p.text(post.Date)
		p.raw(`</time>`)
		for _, t := range post.Tags {
			p.raw(`<a class="tag"`)
			p.href("/?tag=" + url.QueryEscape(t))
			p.raw(`>#`)
			p.text(t)
			p.raw(`</a>`)
		}
		p.comp(markdown.Component(post.Content))
		p.raw(`</article>`)
		if len(related) > 0 {
			p.raw(`<aside><h2>Related</h2>`)
			for _, r := range related {
				p.comp(postCard(r))
			}
			p.raw(`</aside>`)
		}
		p.raw(`</main>`)
	}))
}

// Page renders a markdown page inside the public layout.
func Page(site webie.SiteConfig, meta webie.PageMeta, body templ.Component) templ.Component {
	return document(site, meta, "", component(func(p *page) {
		p.comp(siteHeader(site))
		p.raw(`<main class="page">`)
		p.comp(body)
		p.raw(`</main>`)
	}))
}

// NotFound is the 404 page.
func NotFound() templ.Component {
	return document(webie.SiteConfig{}, webie.PageMeta{Title: "Not found"}, "", component(func(p *page) {
		p.raw(`<main><h1>Not found</h1><p>The page you asked for does not exist.</p><a href="/">Home</a></main>`)
	}))
}

// ServerError is the 5xx page.
func ServerError() templ.Component {
	return document(webie.SiteConfig{}, webie.PageMeta{Title: "Server error"}, "", component(func(p *page) {
		p.raw(`<main><h1>Something went wrong</h1><p>Please try again later.</p></main>`)
	}))
}
