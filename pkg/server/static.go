package server

import (
	"net/http"
	"strings"
)

// staticCacheControl applies to the public images and videos. Asset names
// are not fingerprinted, so the lifetime stays short.
const staticCacheControl = "public, max-age=3600"

// staticHandler serves files under dir by request path. Directory listings
// are not exposed.
func staticHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", staticCacheControl)
		fs.ServeHTTP(w, r)
	})
}
