package domain

import "strings"

// NormalizeEmail lowercases and trims an email address. Invitation emails
// and user emails are always stored normalized so that case-insensitive
// matching is a plain equality comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
