package util

import (
	"fmt"
	"net/mail"
	"strings"
)

const maxEmailLen = 254

// NormalizeEmail lowercases and validates a bare address ("a@b.c").
// Display names ("Ann <a@b.c>") are rejected.
func NormalizeEmail(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("email is required")
	}
	if len(s) > maxEmailLen {
		return "", fmt.Errorf("email is too long")
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return "", fmt.Errorf("email is invalid")
	}
	at := strings.LastIndexByte(s, '@')
	if !strings.Contains(s[at+1:], ".") {
		return "", fmt.Errorf("email is invalid")
	}
	return s, nil
}
