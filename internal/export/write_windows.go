//go:build windows

package export

import (
	"bytes"
	"os"
)

// WriteFile writes the YAML encoding of doc to path. renameio has no
// Windows support, so the file is written in place.
func WriteFile(path string, doc *Document) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
