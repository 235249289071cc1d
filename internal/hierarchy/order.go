package hierarchy

import (
	"sort"

	"github.com/blackwell-systems/pathnotes/internal/pathkit"
)

// sortDeepestFirst orders notes so every path precedes its ancestors.
func sortDeepestFirst(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		di, dj := pathkit.Depth(notes[i].Path), pathkit.Depth(notes[j].Path)
		if di != dj {
			return di > dj
		}
		return notes[i].Path > notes[j].Path
	})
}
