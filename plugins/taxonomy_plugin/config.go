// Package taxonomy lists the tags of published posts with their counts.
package taxonomy

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gjc14/webie/plugin"
)

func Config() (plugin.Config, error) {
	return plugin.Config{
		PluginName: "Taxonomy",
		AdminRoutes: []plugin.AdminRoute{
			{Title: "Taxonomies", URL: "taxonomies", IconName: "tag"},
		},
		Dependencies: []string{"blog_plugin"},
	}, nil
}

func Routes(g *echo.Group, h plugin.Host) {
	g.GET("/taxonomies/", func(c echo.Context) error {
		terms, err := h.Terms(c.Request().Context())
		if err != nil {
			h.Logger().Error("load terms", zap.Error(err))
			return err
		}
		return h.RenderAdmin(c, "Taxonomies", termTable(terms))
	})
}

func termTable(terms []plugin.Term) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(terms) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No tags yet.</p>`)
			return err
		}
		out := `<table><thead><tr><th>Tag</th><th>Posts</th></tr></thead><tbody>`
		for _, t := range terms {
			out += `<tr><td><a href="/?tag=` + templ.EscapeString(url.QueryEscape(t.Name)) + `">` +
				templ.EscapeString(t.Name) + `</a></td><td>` + strconv.Itoa(t.Count) + `</td></tr>`
		}
		out += `</tbody></table>`
		_, err := io.WriteString(w, out)
		return err
	})
}
