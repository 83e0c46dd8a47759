package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mprokopov/ledger-mcp/internal/ledger"
	"github.com/mprokopov/ledger-mcp/internal/notes"
)

// fakeQuerier is an in-memory ledger.Querier that records the paths and
// accounts it was asked about.
type fakeQuerier struct {
	accounts string
	balance  string
	register string
	err      error

	gotPath    string
	gotAccount string
}

func (f *fakeQuerier) Accounts(_ context.Context, path string) (string, error) {
	f.gotPath = path
	return f.accounts, f.err
}

func (f *fakeQuerier) Balance(_ context.Context, path, account string) (string, error) {
	f.gotPath, f.gotAccount = path, account
	return f.balance, f.err
}

func (f *fakeQuerier) Register(_ context.Context, path, account string) (string, error) {
	f.gotPath, f.gotAccount = path, account
	return f.register, f.err
}

func newTestServer(q *fakeQuerier) (*Server, *notes.Store) {
	ns := notes.NewStore()
	s := NewServer(q, ns, ledger.Paths{Base: "/srv/ledger"}, "test")
	return s, ns
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil {
		t.Fatal("expected non-nil result")
	}
	if len(res.Content) != 1 {
		t.Fatalf("expected exactly 1 content block, got %d", len(res.Content))
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", res.Content[0])
	}
	return tc.Text
}

func TestListAccounts(t *testing.T) {
	q := &fakeQuerier{accounts: "Assets:Cash\nExpenses:Food\nIncome"}
	s, _ := newTestServer(q)

	res, _, err := s.handleListAccounts(context.Background(), nil, ListAccountsArgs{Year: "2024"})
	if err != nil {
		t.Fatalf("handleListAccounts failed: %v", err)
	}

	want := "\nLedger Accounts:\n- Assets:Cash\n- Expenses:Food\n- Income"
	if got := resultText(t, res); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !strings.HasSuffix(q.gotPath, "/2024/experiment.ledger") {
		t.Errorf("unexpected ledger path: %q", q.gotPath)
	}
}

func TestListAccountsMissingYear(t *testing.T) {
	s, _ := newTestServer(&fakeQuerier{})

	_, _, err := s.handleListAccounts(context.Background(), nil, ListAccountsArgs{})
	if !errors.Is(err, ErrInvalidArguments) {
		t.Errorf("expected ErrInvalidArguments, got %v", err)
	}
}

func TestAccountBalanceVerbatim(t *testing.T) {
	q := &fakeQuerier{balance: "          $1,234.56  Expenses:Food"}
	s, _ := newTestServer(q)

	res, _, err := s.handleAccountBalance(context.Background(), nil, AccountBalanceArgs{Year: "2024", Account: "Expenses:Food"})
	if err != nil {
		t.Fatalf("handleAccountBalance failed: %v", err)
	}

	// The adapter's string is embedded verbatim, never re-formatted.
	want := "The balance of Expenses:Food is " + q.balance
	if got := resultText(t, res); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if q.gotAccount != "Expenses:Food" {
		t.Errorf("expected account to be passed through, got %q", q.gotAccount)
	}
}

func TestAccountRegisterVerbatim(t *testing.T) {
	q := &fakeQuerier{register: "24-Jan-05 Grocery  Expenses:Food  $42.00"}
	s, _ := newTestServer(q)

	res, _, err := s.handleAccountRegister(context.Background(), nil, AccountRegisterArgs{Year: "2024", Account: "Expenses:Food"})
	if err != nil {
		t.Fatalf("handleAccountRegister failed: %v", err)
	}

	want := "The register of Expenses:Food is " + q.register
	if got := resultText(t, res); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBalanceMissingAccount(t *testing.T) {
	s, _ := newTestServer(&fakeQuerier{})

	_, _, err := s.handleAccountBalance(context.Background(), nil, AccountBalanceArgs{Year: "2024"})
	if !errors.Is(err, ErrInvalidArguments) {
		t.Errorf("expected ErrInvalidArguments, got %v", err)
	}
}

func TestAdapterErrorPropagates(t *testing.T) {
	adapterErr := errors.New("ledger: Cannot find file")
	s, _ := newTestServer(&fakeQuerier{err: adapterErr})

	_, _, err := s.handleListAccounts(context.Background(), nil, ListAccountsArgs{Year: "2024"})
	if !errors.Is(err, adapterErr) {
		t.Errorf("expected the adapter error to propagate, got %v", err)
	}
}

func TestAddNote(t *testing.T) {
	s, ns := newTestServer(&fakeQuerier{})

	res, _, err := s.handleAddNote(context.Background(), nil, AddNoteArgs{Name: "todo", Content: "buy milk"})
	if err != nil {
		t.Fatalf("handleAddNote failed: %v", err)
	}

	want := "Added note 'todo' with content: buy milk"
	if got := resultText(t, res); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	content, err := ns.Get("todo")
	if err != nil || content != "buy milk" {
		t.Errorf("note not stored: %q, %v", content, err)
	}
}

func TestAddNoteMissingContent(t *testing.T) {
	s, ns := newTestServer(&fakeQuerier{})

	_, _, err := s.handleAddNote(context.Background(), nil, AddNoteArgs{Name: "todo"})
	if !errors.Is(err, ErrInvalidArguments) {
		t.Errorf("expected ErrInvalidArguments, got %v", err)
	}
	if ns.Len() != 0 {
		t.Errorf("store mutated by invalid call: %d notes", ns.Len())
	}
}

func TestReadNote(t *testing.T) {
	s, ns := newTestServer(&fakeQuerier{})
	ns.Put("x", "y")

	res, err := s.handleReadNote(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "note://internal/x"},
	})
	if err != nil {
		t.Fatalf("handleReadNote failed: %v", err)
	}
	if len(res.Contents) != 1 || res.Contents[0].Text != "y" {
		t.Errorf("unexpected contents: %+v", res.Contents)
	}
	if res.Contents[0].URI != "note://internal/x" {
		t.Errorf("unexpected URI: %q", res.Contents[0].URI)
	}
}

func TestReadNoteUnsupportedScheme(t *testing.T) {
	s, ns := newTestServer(&fakeQuerier{})
	ns.Put("x", "y")

	_, err := s.handleReadNote(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "http://internal/x"},
	})
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("expected ErrUnsupportedScheme, got %v", err)
	}
}

func TestReadNoteMissing(t *testing.T) {
	s, _ := newTestServer(&fakeQuerier{})

	_, err := s.handleReadNote(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "note://internal/ghost"},
	})
	if !errors.Is(err, notes.ErrNotFound) {
		t.Errorf("expected notes.ErrNotFound, got %v", err)
	}
}

func TestReadNoteNoName(t *testing.T) {
	s, _ := newTestServer(&fakeQuerier{})

	_, err := s.handleReadNote(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "note://internal"},
	})
	if !errors.Is(err, notes.ErrNotFound) {
		t.Errorf("expected notes.ErrNotFound for nameless URI, got %v", err)
	}
}

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	if len(res.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(res.Messages))
	}
	if res.Messages[0].Role != "user" {
		t.Errorf("expected role user, got %q", res.Messages[0].Role)
	}
	tc, ok := res.Messages[0].Content.(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", res.Messages[0].Content)
	}
	return tc.Text
}

func TestSummarizeNotesBrief(t *testing.T) {
	s, ns := newTestServer(&fakeQuerier{})
	ns.Put("a", "first")
	ns.Put("b", "second")

	res, err := s.handleSummarizeNotes(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Name: "summarize-notes"},
	})
	if err != nil {
		t.Fatalf("handleSummarizeNotes failed: %v", err)
	}

	want := "Here are the current notes to summarize:\n\n- a: first\n- b: second"
	if got := promptText(t, res); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSummarizeNotesDetailed(t *testing.T) {
	s, ns := newTestServer(&fakeQuerier{})
	ns.Put("a", "first")

	res, err := s.handleSummarizeNotes(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{
			Name:      "summarize-notes",
			Arguments: map[string]string{"style": "detailed"},
		},
	})
	if err != nil {
		t.Fatalf("handleSummarizeNotes failed: %v", err)
	}

	got := promptText(t, res)
	if !strings.Contains(got, "Here are the current notes to summarize: Give extensive details.\n") {
		t.Errorf("expected detailed suffix on the instruction line, got %q", got)
	}
}

func TestSummarizeNotesUnknownStyle(t *testing.T) {
	s, ns := newTestServer(&fakeQuerier{})
	ns.Put("a", "first")

	res, err := s.handleSummarizeNotes(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{
			Name:      "summarize-notes",
			Arguments: map[string]string{"style": "verbose"},
		},
	})
	if err != nil {
		t.Fatalf("handleSummarizeNotes failed: %v", err)
	}

	// Anything other than "detailed" is treated as "brief".
	if strings.Contains(promptText(t, res), "Give extensive details.") {
		t.Error("unknown style must not get the detailed suffix")
	}
}

func TestSummarizeNotesUnknownName(t *testing.T) {
	s, _ := newTestServer(&fakeQuerier{})

	_, err := s.handleSummarizeNotes(context.Background(), &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Name: "other-prompt"},
	})
	if !errors.Is(err, ErrUnknownPrompt) {
		t.Errorf("expected ErrUnknownPrompt, got %v", err)
	}
}
