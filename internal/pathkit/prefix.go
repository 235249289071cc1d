package pathkit

import "strings"

// Prefixes returns the ancestor chain of a canonical path, outermost first,
// ending with the path itself. Empty input yields nil.
//
//	Prefixes("/Users/john")           // ["/Users", "/Users/john"]
//	Prefixes("C:/Users/john")         // ["C:", "C:/Users", "C:/Users/john"]
//	Prefixes("//server/share/folder") // ["//server/share", "//server/share/folder"]
//	Prefixes("/")                     // ["/"]
func Prefixes(path string) []string {
	if path == "" {
		return nil
	}
	if path == RootPath {
		return []string{RootPath}
	}

	start := 0
	switch {
	case IsUNC(path):
		// The server/share header is one atom: skip to the first
		// separator after the share name.
		boundary := strings.IndexByte(path[2:], '/')
		if boundary < 0 {
			return []string{path}
		}
		start = boundary + 3
	case strings.HasPrefix(path, "/"):
		start = 1
	}

	var prefixes []string
	for i := start; i < len(path); i++ {
		if path[i] == '/' {
			prefixes = append(prefixes, path[:i])
		}
	}
	return append(prefixes, path)
}

// Depth is the number of entries Prefixes would return for path.
func Depth(path string) int {
	return len(Prefixes(path))
}

// Parent returns the prefix immediately above path, or "" when path is a
// top-level atom ("/Users", "C:", "//server/share", "/").
func Parent(path string) string {
	prefixes := Prefixes(path)
	if len(prefixes) < 2 {
		return ""
	}
	return prefixes[len(prefixes)-2]
}
