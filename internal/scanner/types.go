// Package scanner discovers directories on the local filesystem so they
// can be stored as path notes.
package scanner

// Dir is one discovered directory.
type Dir struct {
	// Path is the absolute filesystem path.
	Path string `json:"path"`

	// Name is the final path element.
	Name string `json:"name"`

	// Depth is how many levels below its scan root the directory sits.
	Depth int `json:"depth"`

	// HasGit reports whether the directory holds a .git entry.
	HasGit bool `json:"has_git"`
}

// Options controls a scan.
type Options struct {
	// MaxDepth limits how far below each root to descend. 1 lists only
	// the root's immediate subdirectories; 0 is treated as 1.
	MaxDepth int

	// GitOnly keeps only directories that are git repositories. The walk
	// does not descend into a repository once found.
	GitOnly bool

	// IncludeHidden keeps directories whose name starts with ".".
	IncludeHidden bool
}
