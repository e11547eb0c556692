// Package alias validates user-chosen aliases for short links.
package alias

import (
	"regexp"
	"strings"
)

var aliasRe = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)

// Reserved words can never be claimed as aliases; they collide with
// routes and pages the application itself serves.
var reserved = map[string]bool{
	"about":     true,
	"admin":     true,
	"api":       true,
	"app":       true,
	"auth":      true,
	"blog":      true,
	"contact":   true,
	"dashboard": true,
	"docs":      true,
	"docs-api":  true,
	"ftp":       true,
	"help":      true,
	"login":     true,
	"logout":    true,
	"mail":      true,
	"privacy":   true,
	"profile":   true,
	"register":  true,
	"settings":  true,
	"shop":      true,
	"support":   true,
	"terms":     true,
	"www":       true,
}

// Normalize trims and lowercases an alias. Aliases are stored and
// compared in this form.
func Normalize(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

// Valid reports whether the normalized alias is 3-30 characters of
// lowercase letters, digits, hyphens and underscores.
func Valid(a string) bool {
	return aliasRe.MatchString(Normalize(a))
}

// Reserved reports whether the alias is on the reserved list.
func Reserved(a string) bool {
	return reserved[Normalize(a)]
}
