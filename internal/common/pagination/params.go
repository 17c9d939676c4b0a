package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Shown int // Number of items the client wants visible
}

// ParseQueryParams parses pagination parameters from HTTP request query string.
// Returns Params with defaults if parameters are missing.
//
// Query parameters:
//   - shown: number of items to return (must be between 1 and config.MaxShown)
//   - page, limit: legacy page window, mapped onto the load-more model as
//     shown = page * limit (the first N pages form a prefix)
//
// Returns an error if parameters are invalid.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Shown: config.DefaultShown,
	}

	q := r.URL.Query()

	if shownStr := q.Get("shown"); shownStr != "" {
		shown, err := strconv.Atoi(shownStr)
		if err != nil || shown < 1 || shown > config.MaxShown {
			return params, fmt.Errorf("invalid query parameter: shown must be between 1 and %d", config.MaxShown)
		}
		params.Shown = shown
		return params, nil
	}

	// ページ指定はプレフィックス表示に変換する
	if pageStr, limitStr := q.Get("page"), q.Get("limit"); pageStr != "" || limitStr != "" {
		page, limit := 1, config.Step
		if pageStr != "" {
			p, err := strconv.Atoi(pageStr)
			if err != nil || p < 1 {
				return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
			}
			page = p
		}
		if limitStr != "" {
			l, err := strconv.Atoi(limitStr)
			if err != nil || l < 1 || l > config.MaxShown {
				return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxShown)
			}
			limit = l
		}
		shown := page * limit
		if shown > config.MaxShown {
			shown = config.MaxShown
		}
		params.Shown = shown
	}

	return params, nil
}
