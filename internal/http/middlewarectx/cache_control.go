package middlewarectx

import (
	"net/http"
	"regexp"
	"strings"
)

var staticAsset = regexp.MustCompile(`\.(js|css|png|jpg|jpeg|gif|ico|svg|woff|woff2|ttf|eot)$`)

// CacheControl выставляет заголовок Cache-Control: статика кешируется на год,
// html на час, ответы API не кешируются.
func CacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case staticAsset.MatchString(path):
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case strings.HasSuffix(path, ".html"):
			w.Header().Set("Cache-Control", "public, max-age=3600")
		case strings.HasPrefix(path, "/api"):
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		next.ServeHTTP(w, r)
	})
}
