package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const promptSummarizeNotes = "summarize-notes"

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        promptSummarizeNotes,
		Description: "Creates a summary of all notes",
		Arguments: []*mcp.PromptArgument{
			{Name: "style", Description: "Style of the summary (brief/detailed)", Required: false},
		},
	}, s.handleSummarizeNotes)
}

// handleSummarizeNotes renders the summarize-notes prompt from the current
// notes. Any style other than "detailed" is treated as "brief".
func (s *Server) handleSummarizeNotes(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	if req.Params.Name != promptSummarizeNotes {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrompt, req.Params.Name)
	}

	suffix := ""
	if req.Params.Arguments["style"] == "detailed" {
		suffix = " Give extensive details."
	}

	stored := s.notes.List()
	lines := make([]string, 0, len(stored))
	for _, n := range stored {
		lines = append(lines, fmt.Sprintf("- %s: %s", n.Name, n.Content))
	}

	text := "Here are the current notes to summarize:" + suffix + "\n\n" + strings.Join(lines, "\n")

	return &mcp.GetPromptResult{
		Description: "Summarize the current notes",
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}, nil
}
