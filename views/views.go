// Package views provides the default templ components for a webie site.
// Sites that want their own look pass a custom webie.ViewFuncs instead.
package views

import "github.com/gjc14/webie"

// Default returns the built-in view set.
func Default() webie.ViewFuncs {
	return webie.ViewFuncs{
		Home:          Home,
		Post:          Post,
		Page:          Page,
		AdminLogin:    AdminLogin,
		AdminShell:    AdminShell,
		AdminHome:     AdminHome,
		AdminPosts:    AdminPosts,
		AdminPostForm: AdminPostForm,
		AdminMedia:    AdminMedia,
		NotFound:      NotFound,
		ServerError:   ServerError,
	}
}
