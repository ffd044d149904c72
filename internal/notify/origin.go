package notify

import "strings"

// Environment modes recognized by the admission policy.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Allowed decides whether a connection with the given Origin header may
// proceed. The check order is deliberate: exact match first, then the
// scheme-normalized match (tolerates allow-lists written with http/https while
// the socket speaks ws/wss), and the permissive localhost fallback last,
// development only.
func Allowed(origin string, allowed []string, env string) bool {
	if origin == "" {
		// Postman and friends send no Origin header.
		return env == EnvDevelopment
	}
	for _, a := range allowed {
		if origin == a {
			return true
		}
	}
	norm := normalizeScheme(origin)
	for _, a := range allowed {
		if norm == normalizeScheme(a) {
			return true
		}
	}
	if env == EnvDevelopment {
		if strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1") {
			return true
		}
	}
	return false
}

func normalizeScheme(origin string) string {
	origin = strings.Replace(origin, "http://", "ws://", 1)
	return strings.Replace(origin, "https://", "wss://", 1)
}
