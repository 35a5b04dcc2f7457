package routes

import "net/http"

// Group nests routes under a shared path prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route of groups, children included, to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		g.register(mux, "")
	}
}

// Wrap returns a copy of g with mw applied to every handler, children
// included. g is not modified.
func Wrap(g Group, mw func(http.HandlerFunc) http.HandlerFunc) Group {
	out := Group{Prefix: g.Prefix}
	if len(g.Routes) > 0 {
		out.Routes = make([]Route, len(g.Routes))
		for i, rt := range g.Routes {
			rt.Handler = mw(rt.Handler)
			out.Routes[i] = rt
		}
	}
	for _, child := range g.Children {
		out.Children = append(out.Children, Wrap(child, mw))
	}
	return out
}

func (g Group) register(mux *http.ServeMux, parent string) {
	prefix := parent + g.Prefix
	for _, rt := range g.Routes {
		mux.HandleFunc(rt.under(prefix), rt.Handler)
	}
	for _, child := range g.Children {
		child.register(mux, prefix)
	}
}
