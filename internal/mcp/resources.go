package mcp

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mprokopov/ledger-mcp/internal/notes"
)

const noteScheme = "note"

// noteResource builds the read-only resource view of a stored note.
func noteResource(name string) *mcp.Resource {
	return &mcp.Resource{
		URI:         "note://internal/" + name,
		Name:        "Note: " + name,
		Description: "A simple note named " + name,
		MIMEType:    "text/plain",
	}
}

// handleReadNote serves resources/read for note:// URIs. The notes store is
// the source of truth; the registered resource list only mirrors it.
func (s *Server) handleReadNote(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	name, err := noteName(req.Params.URI)
	if err != nil {
		return nil, err
	}

	content, err := s.notes.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, name)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     content,
		}},
	}, nil
}

// noteName extracts the note name from a note:// URI. The name is the path
// component with the leading slash stripped.
func noteName(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid resource URI %q: %w", raw, err)
	}
	if u.Scheme != noteScheme {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "", fmt.Errorf("%w: no note name in %q", notes.ErrNotFound, raw)
	}
	return name, nil
}
