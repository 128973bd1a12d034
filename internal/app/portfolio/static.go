package portfolio

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// spaHandler отдает собранный фронтенд из dir. Неизвестные пути без расширения получают index.html.
func spaHandler(dir string) http.HandlerFunc {
	fs := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		clean := path.Clean("/" + r.URL.Path)
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean)))
		if err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		if path.Ext(clean) != "" && !strings.HasSuffix(clean, ".html") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, index)
	}
}
