package views

import (
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/gjc14/webie"
	"github.com/gjc14/webie/icons"
	"github.com/gjc14/webie/plugin"
)

const adminCSS = "/public/admin.css"

// NoPluginsText is shown in the sidebar when no plugin contributes a route.
const NoPluginsText = "You have no plugins."

// NavHref is the admin path of a plugin route.
func NavHref(r plugin.AdminRoute) string {
	return "/admin/" + strings.Trim(r.URL, "/") + "/"
}

// AdminShell renders the admin layout: plugin sidebar plus the screen.
func AdminShell(l webie.AdminLayout) templ.Component {
	meta := webie.PageMeta{Title: l.Title + " - " + l.Site.Name + " admin"}
	return document(l.Site, meta, adminCSS, component(func(p *page) {
		p.raw(`<div class="admin"><nav class="admin-nav"><h1><a href="/admin/">`)
		p.text(l.Site.Name)
		p.raw(`</a></h1>`)
		if len(l.Nav) == 0 {
			p.raw(`<p class="empty">`)
			p.text(NoPluginsText)
			p.raw(`</p>`)
		} else {
			p.raw(`<ul>`)
			for _, r := range l.Nav {
				p.raw(`<li><a`)
				p.href(NavHref(r))
				if strings.Trim(r.URL, "/") == l.Active && l.Active != "" {
					p.raw(` class="active"`)
				}
				p.raw(`>`)
				p.comp(icons.Icon(r.IconName, "icon"))
				p.raw(`<span>`)
				p.text(r.Title)
				p.raw(`</span></a></li>`)
			}
			p.raw(`</ul>`)
		}
		p.raw(`<form method="post" action="/admin/logout/">`)
		p.csrf(l.CSRFToken)
		p.raw(`<button class="link" type="submit">Log out</button></form></nav><main class="admin-main"><h1>`)
		p.text(l.Title)
		p.raw(`</h1>`)
		p.comp(l.Body)
		p.raw(`</main></div>`)
	}))
}

// AdminLogin renders the password form.
func AdminLogin(site webie.SiteConfig, showError bool, csrfToken string) templ.Component {
	meta := webie.PageMeta{Title: "Log in - " + site.Name}
	return document(site, meta, adminCSS, component(func(p *page) {
		p.raw(`<main class="admin-main"><h1>Log in</h1>`)
		if showError {
			p.raw(`<p class="msg">Wrong password.</p>`)
		}
		p.raw(`<form method="post" action="/admin/login/">`)
		p.csrf(csrfToken)
		p.raw(`<label>Password <input type="password" name="password" autofocus required/></label> <button type="submit">Log in</button></form></main>`)
	}))
}

// AdminHome is the dashboard body: one card per plugin route.
func AdminHome(nav []plugin.AdminRoute) templ.Component {
	return component(func(p *page) {
		if len(nav) == 0 {
			p.raw(`<p>Install a plugin under the plugin directory to extend the admin.</p>`)
			return
		}
		p.raw(`<div class="grid">`)
		for _, r := range nav {
			p.raw(`<a class="card"`)
			p.href(NavHref(r))
			p.raw(`>`)
			p.comp(icons.Icon(r.IconName, "icon"))
			p.raw(` `)
			p.text(r.Title)
			p.raw(`</a>`)
		}
		p.raw(`</div>`)
	})
}

func message(p *page, msg string) {
	if msg != "" {
		p.raw(`<p class="msg">`)
		p.text(msg)
		p.raw(`</p>`)
	}
}

// AdminPosts lists every post, drafts included.
func AdminPosts(posts []webie.BlogPost, msg, csrfToken string) templ.Component {
	return component(func(p *page) {
		message(p, msg)
		p.raw(`<p><a href="/admin/posts/new/">New post</a></p>`)
		if len(posts) == 0 {
			p.raw(`<p class="empty">No posts yet.</p>`)
			return
		}
		p.raw(`<table><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, post := range posts {
			slug := url.PathEscape(post.Slug)
			p.raw(`<tr><td><a`)
			p.href("/admin/posts/" + slug + "/")
			p.raw(`>`)
			p.text(post.Title)
			p.raw(`</a></td><td>`)
			p.text(post.Date)
			p.raw(`</td><td>`)
			if post.Published {
				p.raw(`published`)
			} else {
				p.raw(`draft`)
			}
			p.raw(`</td><td><form method="post"`)
			p.attr("action", "/admin/posts/"+slug+"/delete/")
			p.raw(`>`)
			p.csrf(csrfToken)
			p.raw(`<button class="link" type="submit">Delete</button></form></td></tr>`)
		}
		p.raw(`</tbody></table>`)
	})
}

// AdminPostForm edits one post. An empty slug means a new post.
func AdminPostForm(post webie.BlogPost, csrfToken string) templ.Component {
	return component(func(p *page) {
		p.raw(`<form method="post" action="/admin/posts/">`)
		p.csrf(csrfToken)
		field := func(label, name, value string) {
			p.raw(`<p><label>` + label + ` <input`)
			p.attr("name", name)
			p.attr("value", value)
			p.raw(`/></label></p>`)
		}
		field("Title", "title", post.Title)
		field("Slug", "slug", post.Slug)
		field("Date", "date", post.Date)
		field("Tags", "tags", webie.JoinTags(post.Tags))
		field("Summary", "summary", post.Summary)
		p.raw(`<p><label>Content <textarea name="content">`)
		p.text(post.Content)
		p.raw(`</textarea></label></p><p><label><input type="checkbox" name="published" value="1"`)
		if post.Published {
			p.raw(` checked`)
		}
		p.raw(`/> Published</label></p><button type="submit">Save</button></form>`)
	})
}

// AdminMedia shows the upload form and the media library.
func AdminMedia(images []webie.Image, msg, csrfToken string) templ.Component {
	return component(func(p *page) {
		message(p, msg)
		p.raw(`<form method="post" action="/admin/media/" enctype="multipart/form-data">`)
		p.csrf(csrfToken)
		p.raw(`<input type="file" name="image" accept="image/*" required/> <button type="submit">Upload</button></form>`)
		if len(images) == 0 {
			p.raw(`<p class="empty">No images yet.</p>`)
			return
		}
		p.raw(`<div class="grid">`)
		for _, img := range images {
			p.raw(`<figure><img loading="lazy"`)
			p.attr("src", img.URL())
			p.attr("alt", img.OriginalName)
			p.raw(`/><figcaption><code>`)
			p.text(img.URL())
			p.raw(`</code> `)
			p.num(img.Width)
			p.raw(`x`)
			p.num(img.Height)
			p.raw(`<form method="post"`)
			p.attr("action", "/admin/media/"+url.PathEscape(img.Filename)+"/delete/")
			p.raw(`>`)
			p.csrf(csrfToken)
			p.raw(`<button class="link" type="submit">Delete</button></form></figcaption></figure>`)
		}
		p.raw(`</div>`)
	})
}
