package middleware

import (
	"fmt"
	"net/http"
)

// RequestSizeLimitMiddleware rejects oversized bodies with 413 before the
// handler reads them. Declared Content-Length is checked up front; bodies
// that lie about their length are cut off by MaxBytesReader inside the
// handler's decode.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				respondWithError(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("Request too large. Maximum size is %dMB.", maxBytes/(1024*1024)))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
