// Package router resolves location fragments and request paths to views.
package router

import "strings"

// View identifies one of the four main view regions.
type View int

const (
	ViewHome View = iota
	ViewCreate
	ViewEdit
	ViewPublicProfile
)

func (v View) String() string {
	switch v {
	case ViewCreate:
		return "create"
	case ViewEdit:
		return "edit"
	case ViewPublicProfile:
		return "profile"
	default:
		return "home"
	}
}

// Route is a resolved destination. Username is set for the edit and public
// profile views.
type Route struct {
	View     View
	Username string
}

// Resolve maps a location fragment ("#/edit/jane") or a bare request path
// ("/edit/jane") to a route. The resolver is stateless: everything is
// re-derived from the input on every call, and anything unmatched falls back
// to Home.
func Resolve(fragment string) Route {
	f := strings.TrimPrefix(fragment, "#")
	if f == "" || f == "/" {
		return Route{View: ViewHome}
	}
	if !strings.HasPrefix(f, "/") {
		return Route{View: ViewHome}
	}

	rest := f[1:]
	switch {
	case rest == "create":
		return Route{View: ViewCreate}
	case strings.HasPrefix(rest, "edit/"):
		username := strings.TrimPrefix(rest, "edit/")
		if strings.Contains(username, "/") {
			return Route{View: ViewHome}
		}
		return Route{View: ViewEdit, Username: username}
	default:
		// Usernames are single slug segments; anything with a further
		// slash is not an address (and a leading slash would make Path
		// a protocol-relative redirect target).
		if strings.Contains(rest, "/") {
			return Route{View: ViewHome}
		}
		return Route{View: ViewPublicProfile, Username: rest}
	}
}

// Path returns the canonical request path for a route, used for redirects.
func (r Route) Path() string {
	switch r.View {
	case ViewCreate:
		return "/create"
	case ViewEdit:
		return "/edit/" + r.Username
	case ViewPublicProfile:
		return "/" + r.Username
	default:
		return "/"
	}
}
