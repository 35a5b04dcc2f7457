package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler. Pattern is relative
// to the enclosing group's prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// under returns the ServeMux pattern for r mounted below prefix.
func (r Route) under(prefix string) string {
	return r.Method + " " + prefix + r.Pattern
}
