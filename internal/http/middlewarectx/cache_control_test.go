package middlewarectx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/studio-portfolio/internal/http/middlewarectx"
)

func TestCacheControl(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/assets/index-3f9a.js", want: "public, max-age=31536000, immutable"},
		{path: "/fonts/inter.woff2", want: "public, max-age=31536000, immutable"},
		{path: "/index.html", want: "public, max-age=3600"},
		{path: "/api/projects", want: "no-cache, no-store, must-revalidate"},
		{path: "/about", want: ""},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			middlewarectx.CacheControl(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, rec.Header().Get("Cache-Control"))
		})
	}
}
