// Package respond writes JSON responses and keeps internal error detail out
// of what the frontend sees.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// ヘッダー送信済みのためエラーレスポンスは返せない
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// safeFragments marks error messages that originate from input validation
// and may be shown to the submitter verbatim.
var safeFragments = []string{
	"required",
	"invalid",
	"must be",
	"at least",
	"too large",
	"too many",
	"not found",
}

// SafeError returns validation-style errors as-is and collapses everything
// else to an opaque "internal server error". The original error is logged
// with credentials masked.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	isSafe := false
	lowerMsg := strings.ToLower(msg)
	for _, fragment := range safeFragments {
		if strings.Contains(lowerMsg, fragment) {
			isSafe = true
			break
		}
	}

	// 500番台は常に内部エラー扱い
	if code >= 500 {
		isSafe = false
	}

	if isSafe {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}
