// Package nav decides which page a path resolves to given whether a
// session exists. The "where was I going" state travels as an explicit
// Intent value.
package nav

import "slices"

const (
	PathHome  = "/"
	PathUsers = "/users"
	PathRoles = "/roles"
	PathLogin = "/login"
)

var protected = []string{PathHome, PathUsers, PathRoles}

type Page int

const (
	PageNone Page = iota
	PageDashboard
	PageLogin
)

func (p Page) String() string {
	switch p {
	case PageDashboard:
		return "dashboard"
	case PageLogin:
		return "login"
	default:
		return "none"
	}
}

// Intent is the protected path a viewer was heading to before being sent
// to the login page.
type Intent struct {
	From string
}

// Decision is the outcome of Resolve: either render Page at Path, or
// redirect to Path carrying Intent.
type Decision struct {
	Path     string
	Page     Page
	Redirect bool
	Intent   Intent
}

func IsProtected(path string) bool {
	return slices.Contains(protected, path)
}

// Resolve routes path for a viewer.
func Resolve(path string, authenticated bool, intent Intent) Decision {
	switch {
	case IsProtected(path):
		if !authenticated {
			return Decision{Path: PathLogin, Page: PageLogin, Redirect: true, Intent: Intent{From: path}}
		}
		return Decision{Path: path, Page: PageDashboard}

	case path == PathLogin:
		if authenticated {
			to := PathHome
			if IsProtected(intent.From) {
				to = intent.From
			}
			return Decision{Path: to, Page: PageDashboard, Redirect: true}
		}
		return Decision{Path: PathLogin, Page: PageLogin, Intent: intent}
	}

	if authenticated {
		return Decision{Path: PathHome, Page: PageDashboard, Redirect: true}
	}
	return Decision{Path: PathLogin, Page: PageLogin, Redirect: true, Intent: Intent{From: PathHome}}
}
