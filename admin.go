package webie

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.Config, false, CsrfToken(c)))
	}
	nav := a.AdminNav(c.Request().Context())
	return Render(c, a.Views.AdminShell(AdminLayout{
		Site:      a.Config,
		Title:     "Dashboard",
		Nav:       nav,
		CSRFToken: CsrfToken(c),
		Body:      a.Views.AdminHome(nav),
	}))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) != 1 {
		a.loginLimiter.Record(ip)
		a.log.Warn("admin login failed", zap.String("ip", ip))
		return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(a.Config, true, CsrfToken(c)))
	}
	if err := setAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminPosts(c echo.Context) error {
	return a.renderAdminPosts(c, c.QueryParam("msg"))
}

func (a *App) handleAdminNewPost(c echo.Context) error {
	post := BlogPost{Date: time.Now().Format(dateLayout)}
	return a.RenderAdmin(c, "New post", a.Views.AdminPostForm(post, CsrfToken(c)))
}

func (a *App) handleAdminEditPost(c echo.Context) error {
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return a.RenderAdmin(c, "Edit: "+post.Title, a.Views.AdminPostForm(post, CsrfToken(c)))
}

func (a *App) handleAdminSave(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	slug := Slugify(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return redirectPosts(c, "Slug is required. Add a title or slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return redirectPosts(c, "Invalid date format. Use YYYY-MM-DD.")
	}
	post := BlogPost{
		Slug:      slug,
		Title:     title,
		Date:      date,
		Tags:      FilterEmpty(strings.Split(c.FormValue("tags"), ",")),
		Summary:   c.FormValue("summary"),
		Content:   c.FormValue("content"),
		Published: c.FormValue("published") != "",
	}
	if err := a.Store.SavePost(post); err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.log.Info("post saved", zap.String("slug", slug), zap.Bool("published", post.Published))
	return redirectPosts(c, "Saved.")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	slug := c.Param("slug")
	if err := a.Store.DeletePost(slug); err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.log.Info("post deleted", zap.String("slug", slug))
	return redirectPosts(c, "Deleted.")
}

func (a *App) renderAdminPosts(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	return a.RenderAdmin(c, "Posts", a.Views.AdminPosts(posts, msg, CsrfToken(c)))
}

func redirectPosts(c echo.Context, msg string) error {
	return c.Redirect(http.StatusSeeOther, "/admin/posts/?msg="+url.QueryEscape(msg))
}
