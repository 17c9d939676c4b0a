package http

import (
	"net/http"
)

// Request shape limits. The API surface is small: the longest legitimate URL
// is a content listing with a search query.
const (
	maxPathLength  = 2048
	maxQueryLength = 2048
)

// InputValidation returns middleware that rejects structurally unreasonable
// requests before they reach routing. Body size is limited separately by
// LimitRequestBody.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength {
				writeValidationError(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			// 検索クエリ q= を含めても2KBを超えることはない
			if len(r.URL.RawQuery) > maxQueryLength {
				writeValidationError(w, http.StatusRequestURITooLong, "query string too long")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeValidationError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
