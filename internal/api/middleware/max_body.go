package middleware

import (
	"net/http"

	"github.com/cloo-solutions/relicguide/internal/api"
	"github.com/cloo-solutions/relicguide/internal/domain"
)

// MaxBodyBytes caps request bodies at limit. A declared Content-Length over
// the cap is refused here; chunked bodies are cut off by http.MaxBytesReader
// and reported as 413 by api.DecodeJSON.
func MaxBodyBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 || r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > limit {
				api.HandleError(w, domain.ErrBodyTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
