// CLAUDE:SUMMARY Request body cap for upload endpoints.
package shield

import "net/http"

// MaxUploadBody returns middleware that limits the request body size.
// The limit covers the whole multipart envelope, not individual files;
// per-file limits are enforced downstream by the extractor.
func MaxUploadBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
