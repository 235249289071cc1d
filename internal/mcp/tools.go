package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blackwell-systems/pathnotes/internal/hierarchy"
	"github.com/blackwell-systems/pathnotes/internal/pathkit"
)

// NormalizeResult is the canonical form of one path.
type NormalizeResult struct {
	Input    string `json:"input"`
	Path     string `json:"path"`
	Absolute bool   `json:"absolute"`
	URL      string `json:"url,omitempty"`
}

// PrefixesResult holds the ancestor chain of a normalized path.
type PrefixesResult struct {
	Path     string   `json:"path"`
	Prefixes []string `json:"prefixes"`
}

// RankResult holds fuzzy-ranked candidates, best first.
type RankResult struct {
	Query   string       `json:"query"`
	Matches []RankedPath `json:"matches"`
}

// RankedPath is one candidate that matched the query.
type RankedPath struct {
	Path  string `json:"path"`
	Score int    `json:"score"`
}

// SearchResult holds stored paths matching a query.
type SearchResult struct {
	Query   string            `json:"query"`
	Entries []hierarchy.Entry `json:"entries"`
}

// ChildrenResult holds the direct children of a stored path.
type ChildrenResult struct {
	Path     string            `json:"path"`
	Device   string            `json:"device"`
	Children []hierarchy.Child `json:"children"`
}

var (
	pathSchema     = json.RawMessage(`{"type":"object","properties":{"path":{"type":"string","description":"File path in any supported syntax"}},"required":["path"],"additionalProperties":false}`)
	rankSchema     = json.RawMessage(`{"type":"object","properties":{"query":{"type":"string"},"candidates":{"type":"array","items":{"type":"string"}},"limit":{"type":"integer","description":"Maximum matches to return (default all)"}},"required":["query","candidates"],"additionalProperties":false}`)
	searchSchema   = json.RawMessage(`{"type":"object","properties":{"query":{"type":"string"},"limit":{"type":"integer","description":"Maximum entries to return"}},"additionalProperties":false}`)
	childrenSchema = json.RawMessage(`{"type":"object","properties":{"path":{"type":"string"},"device":{"type":"string","description":"Device name (defaults to the configured device)"}},"required":["path"],"additionalProperties":false}`)
)

// addTools registers the path tools on s. Stored-path tools are only
// registered when a service is configured.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "normalize_path",
		Description: "Canonicalize a POSIX, Windows, UNC, or file:// path and report whether it is absolute.",
		InputSchema: pathSchema,
		Handler:     s.handleNormalizePath,
	})
	s.registerTool(toolDef{
		Name:        "path_prefixes",
		Description: "List every ancestor prefix of a path, shortest first, ending with the path itself.",
		InputSchema: pathSchema,
		Handler:     s.handlePathPrefixes,
	})
	s.registerTool(toolDef{
		Name:        "fuzzy_rank",
		Description: "Rank candidate paths against a subsequence query, best match first.",
		InputSchema: rankSchema,
		Handler:     s.handleFuzzyRank,
	})
	if s.svc == nil {
		return
	}
	s.registerTool(toolDef{
		Name:        "search_paths",
		Description: "Fuzzy search the stored path notes across all devices.",
		InputSchema: searchSchema,
		Handler:     s.handleSearchPaths,
	})
	s.registerTool(toolDef{
		Name:        "child_paths",
		Description: "List the direct child paths stored under a path on one device.",
		InputSchema: childrenSchema,
		Handler:     s.handleChildPaths,
	})
}

// decodeArgs unmarshals tool arguments, wrapping failures for the caller.
func decodeArgs(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (s *Server) handleNormalizePath(_ context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Path string `json:"path"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	np := pathkit.Normalize(params.Path)
	res := NormalizeResult{Input: params.Path, Path: np.Path, Absolute: np.Absolute}
	if np.Absolute {
		res.URL = pathkit.FileURL(np.Path)
	}
	return res, nil
}

func (s *Server) handlePathPrefixes(_ context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Path string `json:"path"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}
	np := pathkit.Normalize(params.Path)
	prefixes := pathkit.Prefixes(np.Path)
	if prefixes == nil {
		prefixes = []string{}
	}
	return PrefixesResult{Path: np.Path, Prefixes: prefixes}, nil
}

func (s *Server) handleFuzzyRank(_ context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Query      string   `json:"query"`
		Candidates []string `json:"candidates"`
		Limit      int      `json:"limit"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	ranked := pathkit.Rank(params.Query, params.Candidates, func(c string) string { return c })
	matches := make([]RankedPath, 0, len(ranked))
	for _, r := range ranked {
		matches = append(matches, RankedPath{Path: r.Item, Score: r.Score})
	}
	return RankResult{Query: params.Query, Matches: limit(matches, params.Limit)}, nil
}

func (s *Server) handleSearchPaths(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	res := SearchResult{Query: params.Query, Entries: []hierarchy.Entry{}}
	root, err := s.svc.FindRoot(ctx, s.opts.RootName)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return res, nil
	}

	entries, err := s.svc.Search(ctx, root, params.Query)
	if err != nil {
		return nil, err
	}
	n := params.Limit
	if n <= 0 {
		n = s.opts.SearchLimit
	}
	if entries != nil {
		res.Entries = limit(entries, n)
	}
	return res, nil
}

func (s *Server) handleChildPaths(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Path   string `json:"path"`
		Device string `json:"device"`
	}
	if err := decodeArgs(args, &params); err != nil {
		return nil, err
	}

	deviceName := strings.TrimSpace(params.Device)
	if deviceName == "" {
		deviceName = s.opts.Device
	}
	if deviceName == "" {
		return nil, hierarchy.ErrNoDevice
	}

	root, err := s.svc.FindRoot(ctx, s.opts.RootName)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("root %q: %w", s.opts.RootName, hierarchy.ErrNotFound)
	}
	device, err := s.svc.FindDevice(ctx, root, deviceName)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, fmt.Errorf("device %q: %w", deviceName, hierarchy.ErrNotFound)
	}

	note, err := s.svc.Lookup(ctx, device, params.Path)
	if err != nil {
		return nil, err
	}
	children, err := s.svc.Children(ctx, note)
	if err != nil {
		return nil, err
	}
	if children == nil {
		children = []hierarchy.Child{}
	}
	return ChildrenResult{Path: note.Path, Device: deviceName, Children: children}, nil
}

// limit truncates items to n when n is positive.
func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
