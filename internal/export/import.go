package export

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
)

// LinkPolicy reports whether path notes created for device get a file URL.
type LinkPolicy func(ctx context.Context, device string) (bool, error)

// Import re-creates every path in doc below root, creating devices as
// needed. Paths that already exist are left alone.
func Import(ctx context.Context, svc *hierarchy.Service, root *hierarchy.Note, doc *Document, links LinkPolicy) (hierarchy.BulkResult, error) {
	var total hierarchy.BulkResult
	for _, d := range doc.Devices {
		device, err := svc.EnsureDevice(ctx, root, d.Name)
		if err != nil {
			return total, fmt.Errorf("device %q: %w", d.Name, err)
		}

		enabled := true
		if links != nil {
			if enabled, err = links(ctx, d.Name); err != nil {
				return total, err
			}
		}

		lines := make([]string, len(d.Paths))
		for i, p := range d.Paths {
			lines[i] = p.Path
		}
		res, err := svc.BulkCreate(ctx, device, lines, enabled)
		if err != nil {
			return total, fmt.Errorf("device %q: %w", d.Name, err)
		}
		total.Created += res.Created
		total.Skipped += res.Skipped
	}
	return total, nil
}
