package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/blackwell-systems/pathnotes/internal/pathkit"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Service implements path-note operations on top of a Tree.
type Service struct {
	tree    Tree
	pathTag string
	logger  zerolog.Logger
}

// New returns a Service. A blank pathTag falls back to DefaultPathTag.
func New(tree Tree, pathTag string, logger zerolog.Logger) *Service {
	pathTag = strings.TrimSpace(pathTag)
	if pathTag == "" {
		pathTag = DefaultPathTag
	}
	return &Service{
		tree:    tree,
		pathTag: pathTag,
		logger:  logger.With().Str("component", "hierarchy").Logger(),
	}
}

// PathTag returns the tag applied to path notes.
func (s *Service) PathTag() string {
	return s.pathTag
}

// EnsureRoot finds or creates the top-level note that holds all devices.
func (s *Service) EnsureRoot(ctx context.Context, name string) (*Note, error) {
	return s.ensureNamed(ctx, "", name)
}

// FindRoot returns the root note, or nil when it has not been created yet.
func (s *Service) FindRoot(ctx context.Context, name string) (*Note, error) {
	return s.tree.FindByName(ctx, "", strings.TrimSpace(name))
}

// EnsureDevice finds or creates the device note below root.
func (s *Service) EnsureDevice(ctx context.Context, root *Note, device string) (*Note, error) {
	if strings.TrimSpace(device) == "" {
		return nil, ErrNoDevice
	}
	return s.ensureNamed(ctx, root.ID, device)
}

// FindDevice returns the device note below root, or nil when it does
// not exist yet.
func (s *Service) FindDevice(ctx context.Context, root *Note, device string) (*Note, error) {
	device = strings.TrimSpace(device)
	if device == "" {
		return nil, ErrNoDevice
	}
	return s.tree.FindByName(ctx, root.ID, device)
}

func (s *Service) ensureNamed(ctx context.Context, parentID, name string) (*Note, error) {
	name = strings.TrimSpace(name)
	existing, err := s.tree.FindByName(ctx, parentID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	s.logger.Debug().Str("name", name).Str("parent", parentID).Msg("creating note")
	return s.tree.Create(ctx, &Note{ParentID: parentID, Text: name})
}

// Devices returns the device notes below root.
func (s *Service) Devices(ctx context.Context, root *Note) ([]Note, error) {
	children, err := s.tree.Children(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	devices := children[:0]
	for _, c := range children {
		if strings.TrimSpace(c.Text) != "" {
			devices = append(devices, c)
		}
	}
	return devices, nil
}

// IsPathNote reports whether n is tagged as a path note and carries a path.
func (s *Service) IsPathNote(ctx context.Context, n *Note) (bool, error) {
	if n == nil || n.Path == "" {
		return false, nil
	}
	tags, err := s.tree.Tags(ctx, n)
	if err != nil {
		return false, err
	}
	for _, t := range tags {
		if t == s.pathTag {
			return true, nil
		}
	}
	return false, nil
}

// BuildIndex maps every path stored under device to its note.
func (s *Service) BuildIndex(ctx context.Context, device *Note) (Index, error) {
	children, err := s.tree.Children(ctx, device)
	if err != nil {
		return nil, fmt.Errorf("indexing device %q: %w", device.Text, err)
	}
	idx := make(Index, len(children))
	for i := range children {
		if p := children[i].Path; p != "" {
			if _, dup := idx[p]; !dup {
				idx[p] = &children[i]
			}
		}
	}
	return idx, nil
}

// EnsurePath finds or creates the path note for one canonical prefix under
// device. Found notes are re-tagged and, when links is set, given a file://
// URL. idx may be nil; when present it is consulted first and updated.
func (s *Service) EnsurePath(ctx context.Context, device *Note, prefix string, links bool, idx Index) (*Note, error) {
	if idx == nil {
		var err error
		if idx, err = s.BuildIndex(ctx, device); err != nil {
			return nil, err
		}
	}

	url := ""
	if links {
		url = pathkit.FileURL(prefix)
	}

	if existing, ok := idx[prefix]; ok {
		changed := false
		if !existing.HasTag(s.pathTag) {
			existing.Tags = append(existing.Tags, s.pathTag)
			changed = true
		}
		if links && existing.URL != url {
			existing.URL = url
			changed = true
		}
		if changed {
			if err := s.tree.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("updating path note %q: %w", prefix, err)
			}
		}
		return existing, nil
	}

	created, err := s.tree.Create(ctx, &Note{
		ParentID: device.ID,
		Text:     prefix,
		Path:     prefix,
		URL:      url,
		Tags:     []string{s.pathTag},
	})
	if err != nil {
		return nil, fmt.Errorf("creating path note %q: %w", prefix, err)
	}
	s.logger.Debug().Str("path", prefix).Str("device", device.Text).Msg("created path note")
	idx[prefix] = created
	return created, nil
}

// CreatePath normalizes raw and ensures a path note for every prefix of it.
// It returns the canonical path.
func (s *Service) CreatePath(ctx context.Context, device *Note, raw string, links bool) (string, error) {
	np := pathkit.Normalize(raw)
	if np.Path == "" {
		return "", ErrInvalidPath
	}

	idx, err := s.BuildIndex(ctx, device)
	if err != nil {
		return "", err
	}
	for _, prefix := range pathkit.Prefixes(np.Path) {
		if _, err := s.EnsurePath(ctx, device, prefix, links, idx); err != nil {
			return "", err
		}
	}
	return np.Path, nil
}

// BulkCreate creates path notes for many raw paths at once. Blank lines are
// ignored; lines that normalize to an empty or relative path are skipped
// and counted. Shared prefixes are created once.
func (s *Service) BulkCreate(ctx context.Context, device *Note, lines []string, links bool) (BulkResult, error) {
	var raw []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			raw = append(raw, l)
		}
	}

	normalized, err := normalizeAll(ctx, raw)
	if err != nil {
		return BulkResult{}, err
	}

	var (
		result   BulkResult
		prefixes []string
		seen     = make(map[string]bool)
	)
	for _, np := range normalized {
		if np.Path == "" || !np.Absolute {
			result.Skipped++
			continue
		}
		for _, p := range pathkit.Prefixes(np.Path) {
			if !seen[p] {
				seen[p] = true
				prefixes = append(prefixes, p)
			}
		}
	}

	idx, err := s.BuildIndex(ctx, device)
	if err != nil {
		return result, err
	}
	for _, p := range prefixes {
		if _, ok := idx[p]; ok {
			continue
		}
		if _, err := s.EnsurePath(ctx, device, p, links, idx); err != nil {
			return result, err
		}
		result.Created++
	}

	s.logger.Info().Int("created", result.Created).Int("skipped", result.Skipped).Msg("bulk create finished")
	return result, nil
}

// normalizeAll runs pathkit.Normalize over raw in parallel, keeping order.
func normalizeAll(ctx context.Context, raw []string) ([]pathkit.NormalizedPath, error) {
	out := make([]pathkit.NormalizedPath, len(raw))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range raw {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = pathkit.Normalize(raw[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup finds the path note for raw under device.
func (s *Service) Lookup(ctx context.Context, device *Note, raw string) (*Note, error) {
	np := pathkit.Normalize(raw)
	if np.Path == "" {
		return nil, ErrInvalidPath
	}
	idx, err := s.BuildIndex(ctx, device)
	if err != nil {
		return nil, err
	}
	n, ok := idx[np.Path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", np.Path, ErrNotFound)
	}
	return n, nil
}

// Entries returns every path note below root across all devices.
func (s *Service) Entries(ctx context.Context, root *Note) ([]Entry, error) {
	devices, err := s.Devices(ctx, root)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for i := range devices {
		device := &devices[i]
		children, err := s.tree.Children(ctx, device)
		if err != nil {
			return nil, fmt.Errorf("listing paths for %q: %w", device.Text, err)
		}
		for _, c := range children {
			if c.Path == "" {
				continue
			}
			entries = append(entries, Entry{
				Path:   c.Path,
				NoteID: c.ID,
				Device: strings.TrimSpace(device.Text),
			})
		}
	}
	return entries, nil
}

// Search ranks every stored path against query. An empty query returns
// all entries in storage order.
func (s *Service) Search(ctx context.Context, root *Note, query string) ([]Entry, error) {
	entries, err := s.Entries(ctx, root)
	if err != nil {
		return nil, err
	}
	ranked := pathkit.Rank(query, entries, func(e Entry) string { return e.Path })
	out := make([]Entry, len(ranked))
	for i, r := range ranked {
		out[i] = r.Item
		out[i].Score = r.Score
	}
	return out, nil
}

// Children lists the direct child paths of a path note, taken from its
// siblings under the same device.
func (s *Service) Children(ctx context.Context, n *Note) ([]Child, error) {
	siblings, _, err := s.siblings(ctx, n)
	if err != nil {
		return nil, err
	}

	var children []Child
	for _, sib := range siblings {
		if pathkit.IsDirectChild(n.Path, sib.Path) {
			children = append(children, Child{
				NoteID: sib.ID,
				Path:   sib.Path,
				Label:  pathkit.LastSegment(sib.Path),
			})
		}
	}
	return children, nil
}

// PlanDelete collects n and every path below it, deepest first.
func (s *Service) PlanDelete(ctx context.Context, n *Note) (*DeletePlan, error) {
	siblings, device, err := s.siblings(ctx, n)
	if err != nil {
		return nil, err
	}

	parentPath := pathkit.Parent(n.Path)
	plan := &DeletePlan{Path: n.Path, DeviceNoteID: device.ID}

	var doomed []Note
	for _, sib := range siblings {
		switch {
		case sib.ID == n.ID:
		case pathkit.IsDescendant(n.Path, sib.Path):
			doomed = append(doomed, sib)
		case parentPath != "" && sib.Path == parentPath && plan.ParentNoteID == "":
			plan.ParentNoteID = sib.ID
		}
	}
	sortDeepestFirst(doomed)

	plan.DescendantCount = len(doomed)
	for _, d := range doomed {
		plan.NoteIDs = append(plan.NoteIDs, d.ID)
	}
	plan.NoteIDs = append(plan.NoteIDs, n.ID)
	return plan, nil
}

// ExecuteDelete removes every note in plan, in order. Notes that have
// already disappeared are skipped. It returns how many were removed.
func (s *Service) ExecuteDelete(ctx context.Context, plan *DeletePlan) (int, error) {
	removed := 0
	for _, id := range plan.NoteIDs {
		if err := s.tree.Remove(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return removed, fmt.Errorf("removing note %s: %w", id, err)
		}
		removed++
	}
	s.logger.Info().Str("path", plan.Path).Int("removed", removed).Msg("deleted path subtree")
	return removed, nil
}

// siblings returns the path notes that share n's device, plus the device.
func (s *Service) siblings(ctx context.Context, n *Note) ([]Note, *Note, error) {
	ok, err := s.IsPathNote(ctx, n)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrNotPathNote
	}

	device, err := s.tree.Parent(ctx, n)
	if err != nil {
		return nil, nil, fmt.Errorf("finding device of %q: %w", n.Path, err)
	}
	if device == nil {
		return nil, nil, fmt.Errorf("path note %q has no device: %w", n.Path, ErrNotFound)
	}

	all, err := s.tree.Children(ctx, device)
	if err != nil {
		return nil, nil, fmt.Errorf("listing siblings of %q: %w", n.Path, err)
	}
	siblings := all[:0]
	for _, c := range all {
		if c.Path != "" {
			siblings = append(siblings, c)
		}
	}
	return siblings, device, nil
}
