package webie

import (
	"github.com/a-h/templ"

	"github.com/gjc14/webie/plugin"
)

// BlogPost is the core content type stored in SQLite and rendered by templates.
type BlogPost struct {
	Title     string
	Date      string
	Tags      []string
	Summary   string
	Link      string
	Slug      string
	Content   string
	Published bool
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// Image is an uploaded media file.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// URL is the public path of the image.
func (i Image) URL() string {
	return "/public/" + uploadsSubdir + "/" + i.Filename
}

// AdminLayout is everything the admin shell needs around a screen.
type AdminLayout struct {
	Site      SiteConfig
	Title     string
	Active    string // URL segment of the current screen, "" for the dashboard
	Nav       []plugin.AdminRoute
	CSRFToken string
	Body      templ.Component
}
