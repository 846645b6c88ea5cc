package srv

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"regexp"
	"strings"
)

const (
	apiKeyPrefix      = "qr_"
	bearerTokenPrefix = "br_"
	bearerTokenHexLen = 32
)

var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// Credentials is the (API key, bearer token) pair that authorizes a
// request. Both halves must match a stored account exactly.
type Credentials struct {
	APIKey      string
	BearerToken string
}

// GenerateAPIKey derives the API key for an email address. The key is
// deterministic: the lowercased, trimmed email in unpadded URL-safe
// base64 behind a fixed prefix.
func GenerateAPIKey(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return apiKeyPrefix + base64.RawURLEncoding.EncodeToString([]byte(normalized))
}

// GenerateBearerToken returns a fresh random token. Tokens are
// rotatable; nothing is derived from them.
func GenerateBearerToken() string {
	b := make([]byte, bearerTokenHexLen/2)
	rand.Read(b)
	return bearerTokenPrefix + hex.EncodeToString(b)
}

// DecodeAPIKey recovers the owner email embedded in an API key, or ""
// if the key is malformed. Decoding is advisory only: a key that
// decodes is still not authorized until it matches a stored account.
func DecodeAPIKey(apiKey string) string {
	if !strings.HasPrefix(apiKey, apiKeyPrefix) {
		return ""
	}
	raw := strings.TrimPrefix(apiKey, apiKeyPrefix)
	raw = strings.ReplaceAll(raw, "-", "+")
	raw = strings.ReplaceAll(raw, "_", "/")
	if pad := len(raw) % 4; pad != 0 {
		raw += strings.Repeat("=", 4-pad)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return ""
	}
	email := strings.TrimSpace(string(decoded))
	if !emailShape.MatchString(email) {
		return ""
	}
	return email
}

// extractCredentials pulls the credential pair from the dedicated
// X-API-Key / X-Bearer-Token headers, falling back to a combined
// Authorization header. Returns nil when neither form yields both halves.
func extractCredentials(r *http.Request) *Credentials {
	apiKey := strings.TrimSpace(r.Header.Get("X-API-Key"))
	bearer := strings.TrimSpace(r.Header.Get("X-Bearer-Token"))
	if apiKey != "" && bearer != "" {
		return &Credentials{APIKey: apiKey, BearerToken: bearer}
	}
	return parseAuthorizationHeader(r.Header.Get("Authorization"))
}

// parseAuthorizationHeader handles the combined form
//
//	Authorization: ApiKey <key>; Bearer <token>
//
// Segment order is irrelevant and tags match case-insensitively, but
// both segments must be present.
func parseAuthorizationHeader(value string) *Credentials {
	if value == "" {
		return nil
	}
	var apiKey, bearer string
	for _, segment := range strings.Split(value, ";") {
		segment = strings.TrimSpace(segment)
		lower := strings.ToLower(segment)
		if strings.HasPrefix(lower, "apikey ") {
			apiKey = strings.TrimSpace(segment[len("apikey "):])
		}
		if strings.HasPrefix(lower, "bearer ") {
			bearer = strings.TrimSpace(segment[len("bearer "):])
		}
	}
	if apiKey == "" || bearer == "" {
		return nil
	}
	return &Credentials{APIKey: apiKey, BearerToken: bearer}
}
