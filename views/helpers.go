package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// page accumulates HTML and remembers the first write error.
type page struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

// attr writes name="value" with value escaped.
func (p *page) attr(name, value string) {
	p.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

// href writes a sanitized link attribute.
func (p *page) href(u string) {
	p.attr("href", string(templ.URL(u)))
}

func (p *page) num(n int) {
	p.raw(strconv.Itoa(n))
}

func (p *page) comp(c templ.Component) {
	if p.err == nil && c != nil {
		p.err = c.Render(p.ctx, p.w)
	}
}

// csrf writes the hidden CSRF field expected by the server.
func (p *page) csrf(token string) {
	p.raw(`<input type="hidden" name="_csrf"`)
	p.attr("value", token)
	p.raw(`/>`)
}

// component adapts a page-writing func to templ.Component.
func component(fn func(p *page)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{ctx: ctx, w: w}
		fn(p)
		return p.err
	})
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	if active {
		return "tag tag-active"
	}
	return "tag"
}
