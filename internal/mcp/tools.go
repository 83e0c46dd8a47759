package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools adds the ledger query tools and the note tool to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list-accounts",
		Description: "List all ledger accounts",
	}, s.handleListAccounts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "account-balance",
		Description: "Get the balance of an account",
	}, s.handleAccountBalance)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "account-register",
		Description: "Get the register of an account",
	}, s.handleAccountRegister)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add-note",
		Description: "Add a new note",
	}, s.handleAddNote)
}

// textResult wraps a single text block as a tool result. Every tool in this
// server returns exactly one text content block.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// ListAccountsArgs defines the input for list-accounts.
type ListAccountsArgs struct {
	Year string `json:"year" jsonschema:"Ledger year to query (e.g. 2024)"`
}

func (s *Server) handleListAccounts(ctx context.Context, req *mcp.CallToolRequest, args ListAccountsArgs) (*mcp.CallToolResult, any, error) {
	if args.Year == "" {
		return nil, nil, fmt.Errorf("%w: year is required", ErrInvalidArguments)
	}

	raw, err := s.ledger.Accounts(ctx, s.paths.Resolve(args.Year))
	if err != nil {
		return nil, nil, fmt.Errorf("list accounts: %w", err)
	}

	// One "- <account>" line per adapter line, adapter order preserved.
	var accounts []string
	if raw != "" {
		accounts = strings.Split(raw, "\n")
	}
	lines := make([]string, 0, len(accounts))
	for _, account := range accounts {
		lines = append(lines, "- "+account)
	}

	return textResult("\nLedger Accounts:\n" + strings.Join(lines, "\n")), nil, nil
}

// AccountBalanceArgs defines the input for account-balance.
type AccountBalanceArgs struct {
	Year    string `json:"year" jsonschema:"Ledger year to query (e.g. 2024)"`
	Account string `json:"account" jsonschema:"Account name (e.g. Expenses:Food)"`
}

func (s *Server) handleAccountBalance(ctx context.Context, req *mcp.CallToolRequest, args AccountBalanceArgs) (*mcp.CallToolResult, any, error) {
	if args.Year == "" || args.Account == "" {
		return nil, nil, fmt.Errorf("%w: year and account are required", ErrInvalidArguments)
	}

	balance, err := s.ledger.Balance(ctx, s.paths.Resolve(args.Year), args.Account)
	if err != nil {
		return nil, nil, fmt.Errorf("account balance: %w", err)
	}

	return textResult(fmt.Sprintf("The balance of %s is %s", args.Account, balance)), nil, nil
}

// AccountRegisterArgs defines the input for account-register.
type AccountRegisterArgs struct {
	Year    string `json:"year" jsonschema:"Ledger year to query (e.g. 2024)"`
	Account string `json:"account" jsonschema:"Account name (e.g. Expenses:Food)"`
}

func (s *Server) handleAccountRegister(ctx context.Context, req *mcp.CallToolRequest, args AccountRegisterArgs) (*mcp.CallToolResult, any, error) {
	if args.Year == "" || args.Account == "" {
		return nil, nil, fmt.Errorf("%w: year and account are required", ErrInvalidArguments)
	}

	register, err := s.ledger.Register(ctx, s.paths.Resolve(args.Year), args.Account)
	if err != nil {
		return nil, nil, fmt.Errorf("account register: %w", err)
	}

	return textResult(fmt.Sprintf("The register of %s is %s", args.Account, register)), nil, nil
}

// AddNoteArgs defines the input for add-note.
type AddNoteArgs struct {
	Name    string `json:"name" jsonschema:"Name of the note"`
	Content string `json:"content" jsonschema:"Content of the note"`
}

func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest, args AddNoteArgs) (*mcp.CallToolResult, any, error) {
	if args.Name == "" || args.Content == "" {
		return nil, nil, fmt.Errorf("%w: missing name or content", ErrInvalidArguments)
	}

	// The store mutation triggers the resource registration (and the client
	// notification) through the subscription set up in NewServer.
	s.notes.Put(args.Name, args.Content)

	return textResult(fmt.Sprintf("Added note '%s' with content: %s", args.Name, args.Content)), nil, nil
}
