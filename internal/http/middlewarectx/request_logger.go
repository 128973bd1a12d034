package middlewarectx

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
)

// RequestLogger пишет одну строку на каждый запрос к /api: метод, путь, статус и длительность.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api") {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				elapsed := time.Since(start)
				log.Info(fmt.Sprintf("%s %s %d in %dms", r.Method, r.URL.Path, status, elapsed.Milliseconds()),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("duration", elapsed),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
