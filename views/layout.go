package views

import (
	"github.com/a-h/templ"

	"github.com/gjc14/webie"
)

// document renders the full HTML page around body.
func document(site webie.SiteConfig, meta webie.PageMeta, stylesheet string, body templ.Component) templ.Component {
	return component(func(p *page) {
		title := meta.Title
		if title == "" {
			title = site.Name
		}
		p.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8"/>`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		p.raw(`<title>`)
		p.text(title)
		p.raw(`</title>`)
		if meta.Description != "" {
			p.raw(`<meta name="description"`)
			p.attr("content", meta.Description)
			p.raw(`/>`)
		}
		if meta.URL != "" {
			p.raw(`<link rel="canonical"`)
			p.href(meta.URL)
			p.raw(`/><meta property="og:url"`)
			p.attr("content", meta.URL)
			p.raw(`/>`)
		}
		p.raw(`<meta property="og:title"`)
		p.attr("content", title)
		p.raw(`/>`)
		if meta.OGType != "" {
			p.raw(`<meta property="og:type"`)
			p.attr("content", meta.OGType)
			p.raw(`/>`)
		}
		p.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"/>`)
		if stylesheet != "" {
			p.raw(`<link rel="stylesheet"`)
			p.href(stylesheet)
			p.raw(`/>`)
		}
		if meta.JSONLD != "" {
			// JSON-LD comes from json.Marshal, which escapes <, > and &.
			p.raw(`<script type="application/ld+json">` + meta.JSONLD + `</script>`)
		}
		p.raw(`</head><body>`)
		p.comp(body)
		p.raw(`</body></html>`)
	})
}

func siteHeader(site webie.SiteConfig) templ.Component {
	return component(func(p *page) {
		p.raw(`<header class="site"><a href="/">`)
		p.text(site.Name)
		p.raw(`</a>`)
		if site.Description != "" {
			p.raw(`<p>`)
			p.text(site.Description)
			p.raw(`</p>`)
		}
		p.raw(`</header>`)
	})
}
