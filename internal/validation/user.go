// Package validation contiene reglas de formato reutilizables en los DTOs.
package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Username rules:
// - Length 3..50 (runes).
// - No leading/trailing whitespace, no control characters.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
)

// ValidUsername returns true if the username length is within bounds and it
// has no surrounding spaces or control characters.
func ValidUsername(name string) bool {
	if name != strings.TrimSpace(name) {
		return false
	}
	n := utf8.RuneCountInString(name)
	if n < UsernameMinLen || n > UsernameMaxLen {
		return false
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

// Email rules: a bare RFC 5322 addr-spec (no display name, no angle brackets)
// whose domain has at least one dot and a TLD of 2+ letters.
var emailDomainRe = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,63}$`)

// ValidEmail returns true if s is a plain email address.
func ValidEmail(s string) bool {
	if s == "" || len(s) > 320 || s != strings.TrimSpace(s) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 {
		return false
	}
	return emailDomainRe.MatchString(s[at+1:])
}
