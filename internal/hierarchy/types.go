// Package hierarchy materializes canonical paths as notes and answers
// search, child, and subtree-deletion queries over them.
//
// Notes are laid out flat: one root note, one child note per device, and
// every path note directly under its device. Parent/child relationships
// between paths are derived from the path strings with pathkit, never
// from note nesting.
package hierarchy

import (
	"context"
	"errors"
	"time"
)

// DefaultPathTag is the tag carried by every path note.
const DefaultPathTag = "path"

var (
	// ErrInvalidPath is returned when a path normalizes to nothing.
	ErrInvalidPath = errors.New("provide a valid file path")

	// ErrNoDevice is returned when no device name has been configured.
	ErrNoDevice = errors.New("no device name set; run 'pathnotes device set <name>' first")

	// ErrNotFound is returned by a Tree when a note does not exist.
	ErrNotFound = errors.New("note not found")

	// ErrNotPathNote is returned for operations that require a path note.
	ErrNotPathNote = errors.New("note is not a path note")
)

// Note is a single node in the note tree. Root and device notes have an
// empty Path.
type Note struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Text      string    `json:"text"`
	Path      string    `json:"path,omitempty"`
	URL       string    `json:"url,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasTag reports whether the note carries tag.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tree is the note storage capability the service is built on.
// An empty parentID addresses the top level.
type Tree interface {
	FindOne(ctx context.Context, id string) (*Note, error)
	FindByName(ctx context.Context, parentID, name string) (*Note, error)
	Parent(ctx context.Context, n *Note) (*Note, error)
	Children(ctx context.Context, n *Note) ([]Note, error)
	Tags(ctx context.Context, n *Note) ([]string, error)
	Create(ctx context.Context, n *Note) (*Note, error)
	Update(ctx context.Context, n *Note) error
	Remove(ctx context.Context, id string) error
}

// Index maps canonical paths to their path notes under a single device.
// It is owned by the caller and lets bulk operations skip repeated
// child enumeration.
type Index map[string]*Note

// Entry is one searchable path note.
type Entry struct {
	Path   string `json:"path"`
	NoteID string `json:"note_id"`
	Device string `json:"device"`
	Score  int    `json:"score"`
}

// Child is a direct child path of some path note.
type Child struct {
	NoteID string `json:"note_id"`
	Path   string `json:"path"`
	Label  string `json:"label"`
}

// BulkResult summarizes a BulkCreate call.
type BulkResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// DeletePlan lists the notes that deleting a path removes.
type DeletePlan struct {
	Path            string   `json:"path"`
	NoteIDs         []string `json:"note_ids"` // deepest first, target last
	DescendantCount int      `json:"descendant_count"`
	ParentNoteID    string   `json:"parent_note_id,omitempty"`
	DeviceNoteID    string   `json:"device_note_id"`
}
