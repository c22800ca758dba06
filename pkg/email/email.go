// Package email validates and normalizes contact email addresses.
package email

import (
	"net/mail"
	"strings"
)

// Normalize trims whitespace and lowercases the address.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Valid reports whether the address parses as a bare RFC 5322 address.
// Display names are rejected; the contact form collects names separately.
func Valid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}
