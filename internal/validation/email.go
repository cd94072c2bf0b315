package validation

import (
	"net/mail"
	"strings"
)

const (
	EmailInvalid     = "Please enter a valid email address"
	EmailWrongDomain = "Only college email IDs are allowed for registration"
)

// ValidateEmail checks the address syntax and, when domain is non-empty, that it
// belongs to that domain. Returns "" when valid.
func ValidateEmail(email, domain string) string {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, "@") {
		return EmailInvalid
	}
	if domain == "" {
		return ""
	}
	at := strings.LastIndex(email, "@")
	if !strings.EqualFold(email[at+1:], domain) {
		return EmailWrongDomain
	}
	return ""
}
