package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxVideoIDLen    = 16  // videos.video_id VARCHAR(16)
	MaxChannelIDLen  = 32  // channels.channel_id VARCHAR(32)
	MaxKeywordLen    = 200 // search_logs.query VARCHAR(200)
	MaxKeyNameLen    = 100 // api_credentials.name VARCHAR(100)
	MaxKeySecretLen  = 100 // api_credentials.api_key VARCHAR(100)
	MinKeySecretLen  = 20
	RegionCodeLen    = 2
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// channelIDRe matches YouTube channel IDs and handles.
	channelIDRe = regexp.MustCompile(`^@?[A-Za-z0-9._-]+$`)
	// keySecretRe matches provider API key secrets.
	keySecretRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// regionCodeRe matches ISO 3166-1 alpha-2 region codes.
	regionCodeRe = regexp.MustCompile(`^[A-Za-z]{2}$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video ID is well-formed and within DB limits.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 16 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateChannelID checks that a channel ID or handle is well-formed.
func ValidateChannelID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "channelId is required"
	}
	if len(id) > MaxChannelIDLen {
		return "", "channelId must be at most 32 characters"
	}
	if !channelIDRe.MatchString(id) {
		return "", "channelId contains invalid characters"
	}
	return id, ""
}

// ValidateKeyword trims a search keyword and enforces the length limit.
func ValidateKeyword(q string) (string, string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", "keyword is required"
	}
	if len(q) > MaxKeywordLen {
		return "", "keyword must be at most 200 characters"
	}
	return q, ""
}

// ValidateRegionCode checks the optional ISO region code and upper-cases it.
// An empty code is valid (the provider picks a default).
func ValidateRegionCode(code string) (string, string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ""
	}
	if !regionCodeRe.MatchString(code) {
		return "", "regionCode must be a 2-letter ISO code"
	}
	return strings.ToUpper(code), ""
}

// ValidateKeyName checks a credential display name.
func ValidateKeyName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "name is required"
	}
	if len(name) > MaxKeyNameLen {
		return "", "name must be at most 100 characters"
	}
	return name, ""
}

// ValidateKeySecret checks a credential secret's shape without calling the
// provider. Real acceptance is only known once a request is made.
func ValidateKeySecret(secret string) (string, string) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", "apiKey is required"
	}
	if len(secret) < MinKeySecretLen || len(secret) > MaxKeySecretLen {
		return "", "apiKey length is out of range"
	}
	if !keySecretRe.MatchString(secret) {
		return "", "apiKey contains invalid characters"
	}
	return secret, ""
}
