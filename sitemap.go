package webie

import (
	"encoding/xml"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gjc14/webie/routes"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// buildSitemap lists the home page, every published post and the public
// pages that take no parameters.
func buildSitemap(base string, posts []BlogPost, pages []routes.Page) sitemapURLSet {
	urls := []sitemapURL{{Loc: BuildURL(base)}}
	for _, p := range posts {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "blog", p.Slug), LastMod: p.Date})
	}
	for _, p := range pages {
		if p.Admin() || p.Path == "/" || strings.Contains(p.Path, ":") {
			continue
		}
		urls = append(urls, sitemapURL{Loc: BuildURL(base, p.Path)})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func (a *App) renderSitemap(c echo.Context, posts []BlogPost) error {
	return writeXML(c, "application/xml; charset=utf-8", buildSitemap(a.Config.URL, posts, a.pages))
}
