package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema constraints.
const (
	MaxVoterIDLen  = 64  // votes.voter_id VARCHAR(64)
	MaxNameLen     = 128 // hosts.full_name VARCHAR(128)
	MaxEmailLen    = 128 // hosts.email VARCHAR(128)
	MaxTitleLen    = 256 // events.title VARCHAR(256)
	MaxLocationLen = 256 // venues.location VARCHAR(256)
)

// voterIDRe matches voter ids as issued by the session layer: hex hashes
// or opaque tokens of alphanumerics, dash and underscore.
var voterIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// emailRe is a light shape check; the directory is not an email verifier.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateEntityID checks that an id is a well-formed UUID. Hosts, events,
// venues and votes all carry UUID identifiers.
func ValidateEntityID(id, field string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", field + " is required"
	}
	if uuid.Validate(id) != nil {
		return "", field + " must be a UUID"
	}
	return id, ""
}

// ValidateVoterID checks that a voter id is a well-formed opaque token.
func ValidateVoterID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "voterId is required"
	}
	if len(id) > MaxVoterIDLen {
		return "", "voterId must be at most 64 characters"
	}
	if !voterIDRe.MatchString(id) {
		return "", "voterId contains invalid characters"
	}
	return id, ""
}

// ValidateVoteValue checks the vote value is +1 or -1.
func ValidateVoteValue(value int) string {
	if value != 1 && value != -1 {
		return "value must be +1 or -1"
	}
	return ""
}

// ValidateRole checks the host role token.
func ValidateRole(role string) (string, string) {
	role = strings.TrimSpace(strings.ToLower(role))
	switch role {
	case "organizer", "provider":
		return role, ""
	case "":
		return "", "role is required"
	default:
		return "", "role must be organizer or provider"
	}
}

// ValidateName trims and bounds a display name.
func ValidateName(name, field string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", field + " is required"
	}
	if len(name) > MaxNameLen {
		return "", field + " must be at most 128 characters"
	}
	return name, ""
}

// ValidateEmail checks the basic shape of an email address.
func ValidateEmail(email string) (string, string) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", "email is required"
	}
	if len(email) > MaxEmailLen {
		return "", "email must be at most 128 characters"
	}
	if !emailRe.MatchString(email) {
		return "", "email is not valid"
	}
	return email, ""
}
