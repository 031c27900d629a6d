// Package markdown renders the small markdown dialect used by pages and
// post bodies into HTML.
package markdown

import (
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*([^*]+)\*`)
	reCode       = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	reImage      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)
	reOrdered    = regexp.MustCompile(`^\d+\.\s`)
	reHeading    = regexp.MustCompile(`^(#{1,4})\s+(.*)$`)
	codeSentinel = "\x00C"
)

// Component returns a templ component rendering src.
func Component(src string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Render(src))
		return err
	})
}

type block int

const (
	none block = iota
	para
	bullets
	numbers
	quote
	fence
)

var closers = map[block]string{
	para:    "</p>",
	bullets: "</ul>",
	numbers: "</ol>",
	quote:   "</blockquote>",
	fence:   "</code></pre>",
}

type renderer struct {
	out strings.Builder
	cur block
}

func (r *renderer) open(b block, tag string) {
	if r.cur == b {
		return
	}
	r.close()
	r.out.WriteString(tag)
	r.cur = b
}

func (r *renderer) close() {
	r.out.WriteString(closers[r.cur])
	r.cur = none
}

// Render converts src to HTML. Raw HTML in src is escaped.
func Render(src string) string {
	var r renderer
	for _, line := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, "```") {
			if r.cur == fence {
				r.close()
				continue
			}
			lang := strings.TrimSpace(line[3:])
			if lang != "" {
				r.open(fence, `<pre><code class="language-`+html.EscapeString(lang)+`">`)
			} else {
				r.open(fence, "<pre><code>")
			}
			continue
		}
		if r.cur == fence {
			r.out.WriteString(html.EscapeString(line))
			r.out.WriteByte('\n')
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			r.close()
		case trimmed == "---":
			r.close()
			r.out.WriteString("<hr/>")
		case reHeading.MatchString(trimmed):
			r.close()
			m := reHeading.FindStringSubmatch(trimmed)
			n := strconv.Itoa(len(m[1]))
			r.out.WriteString("<h" + n + ">" + Inline(m[2]) + "</h" + n + ">")
		case strings.HasPrefix(trimmed, "- "):
			r.open(bullets, "<ul>")
			r.out.WriteString("<li>" + Inline(trimmed[2:]) + "</li>")
		case reOrdered.MatchString(trimmed):
			r.open(numbers, "<ol>")
			r.out.WriteString("<li>" + Inline(reOrdered.ReplaceAllString(trimmed, "")) + "</li>")
		case strings.HasPrefix(trimmed, "> "):
			if r.cur == quote {
				r.out.WriteByte(' ')
			}
			r.open(quote, "<blockquote>")
			r.out.WriteString(Inline(trimmed[2:]))
		default:
			if r.cur == para {
				r.out.WriteByte(' ')
			}
			r.open(para, "<p>")
			r.out.WriteString(Inline(trimmed))
		}
	}
	r.close()
	return r.out.String()
}

// Inline escapes s and applies images, links, code spans and emphasis.
func Inline(s string) string {
	s = html.EscapeString(s)

	var spans []string
	s = reCode.ReplaceAllStringFunc(s, func(m string) string {
		spans = append(spans, "<code>"+reCode.FindStringSubmatch(m)[1]+"</code>")
		return codeSentinel + strconv.Itoa(len(spans)-1) + codeSentinel
	})

	s = reImage.ReplaceAllStringFunc(s, func(m string) string {
		g := reImage.FindStringSubmatch(m)
		src := SafeURL(g[2])
		if src == "" {
			return g[1]
		}
		return `<img src="` + src + `" alt="` + g[1] + `" loading="lazy"/>`
	})
	s = reLink.ReplaceAllStringFunc(s, func(m string) string {
		g := reLink.FindStringSubmatch(m)
		href := SafeURL(g[2])
		if href == "" {
			return g[1]
		}
		return `<a href="` + href + `">` + g[1] + `</a>`
	})
	s = outsideTags(s, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		return reItalic.ReplaceAllString(seg, "<em>$1</em>")
	})

	for i, span := range spans {
		s = strings.Replace(s, codeSentinel+strconv.Itoa(i)+codeSentinel, span, 1)
	}
	return s
}

// outsideTags applies fn to the text between HTML tags only, so emphasis
// never rewrites attribute values.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for s != "" {
		lt := strings.IndexByte(s, '<')
		if lt < 0 {
			b.WriteString(fn(s))
			break
		}
		b.WriteString(fn(s[:lt]))
		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return b.String()
}

// SafeURL returns raw escaped for an attribute, or "" when its scheme is
// not one of http, https, mailto. Relative and fragment URLs pass.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	u, err := url.Parse(val)
	if err != nil || u.Scheme == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(val)
	}
	return ""
}
