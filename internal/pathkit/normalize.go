// Package pathkit parses, decomposes, relates, and fuzzy-matches path
// strings. Every function is pure and safe for concurrent use; none of them
// touch the filesystem or return errors.
package pathkit

import (
	"regexp"
	"strings"
)

// RootPath is the canonical form of the POSIX root.
const RootPath = "/"

var (
	// driveArtifact matches the "/C:" left behind by stripping "file://"
	// from "file:///C:/...".
	driveArtifact = regexp.MustCompile(`^/[A-Za-z]:(?:/|$)`)

	// drivePrefix matches a drive-qualified path: "C:" or "C:/...".
	drivePrefix = regexp.MustCompile(`^[A-Za-z]:(?:/|$)`)

	// driveToken matches a bare drive token with nothing after it.
	driveToken = regexp.MustCompile(`^[A-Za-z]:$`)
)

const fileScheme = "file://"

// NormalizedPath is the canonical form of a user-supplied path string.
type NormalizedPath struct {
	Path     string `json:"path"`
	Absolute bool   `json:"absolute"`
}

// Normalize converts a POSIX, Windows drive, UNC, backslash-delimited, or
// file:// path into canonical slash-separated form and reports whether it
// is absolute. Normalize never fails: empty or whitespace-only input yields
// the zero NormalizedPath.
//
// The single-pass rules are re-applied until the path stops changing, so
// Normalize(Normalize(s).Path) == Normalize(s) holds for every string,
// including oddities like "file://file://a" or "a /".
func Normalize(raw string) NormalizedPath {
	current := raw
	for {
		next := normalizeOnce(current)
		if next.Path == current {
			return next
		}
		current = next.Path
	}
}

func normalizeOnce(raw string) NormalizedPath {
	p := strings.TrimSpace(raw)
	if p == "" {
		return NormalizedPath{}
	}

	if hasFoldPrefix(p, fileScheme) {
		p = p[len(fileScheme):]
	}

	p = strings.ReplaceAll(p, `\`, "/")

	p = strings.TrimRight(p, "/")
	if p == "" {
		return NormalizedPath{Path: RootPath, Absolute: true}
	}

	switch {
	case driveArtifact.MatchString(p):
		return NormalizedPath{Path: p[1:], Absolute: true}
	case drivePrefix.MatchString(p):
		return NormalizedPath{Path: p, Absolute: true}
	case strings.HasPrefix(p, "//"):
		return NormalizedPath{Path: p, Absolute: true}
	case strings.HasPrefix(p, "/"):
		return NormalizedPath{Path: p, Absolute: true}
	default:
		return NormalizedPath{Path: p, Absolute: false}
	}
}

// IsUNC reports whether a canonical path starts with a "//server" header.
func IsUNC(path string) bool {
	return strings.HasPrefix(path, "//")
}

// IsDrive reports whether a canonical path is drive-qualified ("C:" or "C:/...").
func IsDrive(path string) bool {
	return drivePrefix.MatchString(path)
}

// hasFoldPrefix is strings.HasPrefix with ASCII case folding.
func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
