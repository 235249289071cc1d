package pathkit

import "strings"

// IsDirectChild reports whether child is exactly one segment below parent.
// Both inputs are trimmed first. A path is never its own child, and a shared
// string prefix without a separator boundary does not count
// ("/Users/johnny" is not a child of "/Users/john").
//
// The root "/" never has direct children here: the check is "parent + /"
// as a prefix, and root has no such form. Callers that need root-level
// children must special-case it themselves.
func IsDirectChild(parent, child string) bool {
	parent = strings.TrimSpace(parent)
	child = strings.TrimSpace(child)
	if parent == "" || parent == RootPath {
		return false
	}

	prefix := parent + "/"
	if !strings.HasPrefix(child, prefix) {
		return false
	}
	rest := child[len(prefix):]
	return rest != "" && !strings.Contains(rest, "/")
}

// IsDescendant reports whether p lies strictly below ancestor at any depth.
// Unlike IsDirectChild, the root "/" is treated as the ancestor of every
// other POSIX absolute path.
func IsDescendant(ancestor, p string) bool {
	ancestor = strings.TrimSpace(ancestor)
	p = strings.TrimSpace(p)
	switch ancestor {
	case "":
		return false
	case RootPath:
		return p != RootPath && strings.HasPrefix(p, "/") && !IsUNC(p)
	}
	prefix := ancestor + "/"
	return len(p) > len(prefix) && strings.HasPrefix(p, prefix)
}

// LastSegment returns the final non-empty "/"-separated component of path,
// or "" for the root and for empty input. A bare drive token such as "C:"
// is returned unchanged.
func LastSegment(path string) string {
	parts := strings.Split(strings.TrimSpace(path), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}
