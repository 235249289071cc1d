//go:build !windows

package export

import (
	"fmt"

	"github.com/google/renameio/v2"
)

// WriteFile atomically replaces path with the YAML encoding of doc.
// Readers never observe a partially written file.
func WriteFile(path string, doc *Document) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending export file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if err := Encode(pending, doc); err != nil {
		return err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace export file: %w", err)
	}
	return nil
}
