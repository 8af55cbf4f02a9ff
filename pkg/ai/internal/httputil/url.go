// ABOUTME: URL normalization for API base URLs to prevent double-path issues
// ABOUTME: Strips trailing /v1 suffix so providers can append their own versioned paths

package httputil

import (
	"net/url"
	"strings"
)

// NormalizeBaseURL strips a trailing "/v1" (and any trailing slash) from a base URL.
// Providers append their own versioned paths (e.g. "/v1/chat/completions"), so a
// configured "http://host:8000/v1" would otherwise produce "/v1/v1/...".
// Only the sole top-level "/v1" is stripped; nested paths like "/api/v1" stay intact.
func NormalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return ""
	}
	trimmed := strings.TrimRight(baseURL, "/")

	u, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	if u.Path != "/v1" {
		return trimmed
	}

	u.Path = ""
	return strings.TrimRight(u.String(), "/")
}
