// Package blog adds the post editor and the media library to the admin.
// The screens themselves are served by the host.
package blog

import "github.com/gjc14/webie/plugin"

func Config() (plugin.Config, error) {
	return plugin.Config{
		PluginName: "Blog",
		AdminRoutes: []plugin.AdminRoute{
			{Title: "Posts", URL: "posts", IconName: "pen"},
			{Title: "Media", URL: "media", IconName: "image"},
		},
	}, nil
}
