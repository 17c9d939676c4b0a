package middleware

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// EnvConfigSource loads CORS settings from environment variables.
//
//	CORS_ALLOWED_ORIGINS=http://localhost:3000,https://portfolio.example.com
//	CORS_ALLOWED_METHODS=GET,POST,OPTIONS
//	CORS_ALLOWED_HEADERS=Content-Type,X-Request-ID
//	CORS_MAX_AGE=86400
type EnvConfigSource struct{}

// LoadOrigins parses CORS_ALLOWED_ORIGINS. The variable is required and
// every entry must be a bare http(s) origin: no path, query, fragment, or
// trailing slash. A misconfigured origin aborts startup rather than
// silently narrowing the whitelist.
func (s *EnvConfigSource) LoadOrigins() ([]string, error) {
	originsStr := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if originsStr == "" {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS environment variable is required")
	}

	originList := strings.Split(originsStr, ",")
	origins := make([]string, 0, len(originList))
	for _, originStr := range originList {
		originStr = strings.TrimSpace(originStr)
		if originStr == "" {
			continue
		}
		if err := validateOrigin(originStr); err != nil {
			return nil, err
		}
		origins = append(origins, originStr)
	}

	if len(origins) == 0 {
		return nil, fmt.Errorf("at least one valid origin must be configured in CORS_ALLOWED_ORIGINS")
	}
	return origins, nil
}

func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin URL '%s': %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", origin)
	}
	if u.Path != "" && u.Path != "/" {
		return fmt.Errorf("origin must not include path: %s", origin)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("origin must not include query string: %s", origin)
	}
	if u.Fragment != "" {
		return fmt.Errorf("origin must not include fragment: %s", origin)
	}
	if strings.HasSuffix(origin, "/") {
		return fmt.Errorf("origin must not have trailing slash: %s", origin)
	}
	return nil
}

// LoadMethods parses CORS_ALLOWED_METHODS, defaulting to the full verb set
// when unset. Unknown verbs are configuration errors.
func (s *EnvConfigSource) LoadMethods() ([]string, error) {
	methodsStr := strings.TrimSpace(os.Getenv("CORS_ALLOWED_METHODS"))
	if methodsStr == "" {
		return []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}, nil
	}

	validMethods := map[string]bool{
		"GET": true, "POST": true, "PUT": true,
		"DELETE": true, "PATCH": true, "OPTIONS": true,
	}

	methodList := strings.Split(methodsStr, ",")
	methods := make([]string, 0, len(methodList))
	for _, method := range methodList {
		method = strings.ToUpper(strings.TrimSpace(method))
		if method == "" {
			continue
		}
		if !validMethods[method] {
			return nil, fmt.Errorf("invalid HTTP method '%s': must be one of GET, POST, PUT, DELETE, PATCH, OPTIONS", method)
		}
		methods = append(methods, method)
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("at least one valid HTTP method must be configured in CORS_ALLOWED_METHODS")
	}
	return methods, nil
}

// LoadHeaders parses CORS_ALLOWED_HEADERS. The default covers the headers
// the frontend actually sends: Content-Type for form submissions plus the
// request and trace ID headers.
func (s *EnvConfigSource) LoadHeaders() ([]string, error) {
	headersStr := strings.TrimSpace(os.Getenv("CORS_ALLOWED_HEADERS"))
	if headersStr == "" {
		return []string{"Content-Type", "X-Request-ID", "X-Trace-ID"}, nil
	}

	headerList := strings.Split(headersStr, ",")
	headers := make([]string, 0, len(headerList))
	for _, header := range headerList {
		if header = strings.TrimSpace(header); header != "" {
			headers = append(headers, header)
		}
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("at least one valid header must be configured in CORS_ALLOWED_HEADERS")
	}
	return headers, nil
}

// LoadMaxAge parses CORS_MAX_AGE as seconds, defaulting to 24 hours.
func (s *EnvConfigSource) LoadMaxAge() (int, error) {
	maxAgeStr := strings.TrimSpace(os.Getenv("CORS_MAX_AGE"))
	if maxAgeStr == "" {
		return 86400, nil
	}

	maxAge, err := strconv.Atoi(maxAgeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid CORS_MAX_AGE '%s': must be a valid integer", maxAgeStr)
	}
	if maxAge < 0 {
		return 0, fmt.Errorf("CORS_MAX_AGE must be non-negative, got: %d", maxAge)
	}
	return maxAge, nil
}

// LoadCORSConfig loads configuration from environment variables. The
// Logger field is left nil for the caller to inject.
func LoadCORSConfig() (*CORSConfig, error) {
	return LoadCORSConfigFromSource(&EnvConfigSource{}, nil)
}

// LoadCORSConfigFromSource builds a CORSConfig from any ConfigSource,
// wiring a WhitelistValidator over the loaded origins.
func LoadCORSConfigFromSource(source ConfigSource, logger CORSLogger) (*CORSConfig, error) {
	origins, err := source.LoadOrigins()
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed origins: %w", err)
	}
	methods, err := source.LoadMethods()
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed methods: %w", err)
	}
	headers, err := source.LoadHeaders()
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed headers: %w", err)
	}
	maxAge, err := source.LoadMaxAge()
	if err != nil {
		return nil, fmt.Errorf("failed to load max age: %w", err)
	}

	return &CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		AllowCredentials: true,
		MaxAge:           maxAge,
		Validator:        NewWhitelistValidator(origins),
		Logger:           logger,
	}, nil
}
