package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mprokopov/ledger-mcp/internal/ledger"
	"github.com/mprokopov/ledger-mcp/internal/notes"
)

// Server wraps the MCP server with the ledger querier and notes store.
type Server struct {
	ledger ledger.Querier
	paths  ledger.Paths
	notes  *notes.Store
	server *mcp.Server
}

// NewServer creates the ledger-service MCP server. The notes store is
// injected so callers (and tests) own its lifetime; the server only ever
// reads and mutates it through its public surface.
func NewServer(q ledger.Querier, ns *notes.Store, paths ledger.Paths, version string) *Server {
	s := &Server{ledger: q, paths: paths, notes: ns}

	impl := &mcp.Implementation{
		Name:    "ledger-service",
		Version: version,
	}

	s.server = mcp.NewServer(impl, &mcp.ServerOptions{
		HasTools:     true,
		HasResources: true,
		HasPrompts:   true,
	})

	s.registerTools()
	s.registerPrompts()

	// Mirror the notes store into the registered resource list: notes already
	// present get a resource now, later mutations arrive via the store's
	// subscription. The SDK notifies connected clients that the resource list
	// changed; a failed delivery never affects the mutation itself.
	for _, n := range ns.List() {
		s.server.AddResource(noteResource(n.Name), s.handleReadNote)
	}
	ns.Subscribe(func(name string) {
		s.server.AddResource(noteResource(name), s.handleReadNote)
	})

	return s
}

// Run starts the MCP server on stdio and blocks until the stream closes or
// ctx is cancelled. Requests are handled one at a time in arrival order.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
