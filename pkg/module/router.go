package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Router sends each request to the module mounted at its first path
// segment. Paths no module claims go to the router's own mux, which serves
// the probes and the metrics endpoint.
type Router struct {
	modules map[string]*Module
	mux     *http.ServeMux
}

func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		mux:     http.NewServeMux(),
	}
}

// Handle registers h on the fallback mux.
func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) HandleFunc(pattern string, fn http.HandlerFunc) {
	r.mux.HandleFunc(pattern, fn)
}

// Mount claims m's prefix. Mounting two modules at one prefix panics,
// the same way ServeMux treats conflicting patterns.
func (r *Router) Mount(m *Module) {
	if _, ok := r.modules[m.prefix]; ok {
		panic(fmt.Sprintf("module: prefix %s mounted twice", m.prefix))
	}
	r.modules[m.prefix] = m
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req = trimSlash(req)

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}

	r.mux.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	rest := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return "/" + rest
}

// trimSlash drops one trailing slash from the path. The caller's request
// is left untouched.
func trimSlash(req *http.Request) *http.Request {
	path := req.URL.Path
	if len(path) <= 1 || !strings.HasSuffix(path, "/") {
		return req
	}

	r2 := new(http.Request)
	*r2 = *req
	u := *req.URL
	u.Path = strings.TrimSuffix(path, "/")
	if u.RawPath != "" {
		u.RawPath = strings.TrimSuffix(u.RawPath, "/")
	}
	r2.URL = &u
	return r2
}
