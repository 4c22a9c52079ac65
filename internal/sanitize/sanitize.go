// Package sanitize provides functions for turning project names into Docker-safe tokens.
package sanitize

import (
	"strings"
	"unicode/utf16"
)

// Name converts a project name into a token usable in a Docker container name.
//
// Every UTF-16 code unit outside [a-zA-Z0-9_.-] becomes "_" and the result is
// lowercased, so a character outside the Basic Multilingual Plane yields "__".
// Each invalid UTF-8 byte yields a single "_". The output always matches
// ^[a-z0-9_.-]*$ and has the input's UTF-16 length.
// Docker also requires a leading alphanumeric; that is not enforced here.
func Name(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	// Invalid UTF-8 bytes decode as U+FFFD, one code unit each.
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteString(strings.Repeat("_", utf16.RuneLen(r)))
		}
	}
	return b.String()
}

// ContainerName returns the container name the bundled start scripts use
// for the given project and provider.
func ContainerName(projectName, provider string) string {
	return Name(projectName) + "-" + provider
}
