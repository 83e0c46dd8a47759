package ledger

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultFile is the ledger file name expected inside each year directory.
const DefaultFile = "experiment.ledger"

// Paths resolves ledger file locations under a base directory. The layout is
// <base>/<year>/<file>; the year is caller-supplied and not validated here.
type Paths struct {
	Base string
	File string // file name within each year directory; empty means DefaultFile
}

// Resolve returns the ledger file path for the given year.
func (p Paths) Resolve(year string) string {
	file := p.File
	if file == "" {
		file = DefaultFile
	}
	return filepath.Join(p.Base, year, file)
}

// Querier answers accounting queries against a ledger file. All results are
// preformatted text straight from the underlying tool; callers embed them
// verbatim.
type Querier interface {
	// Accounts returns newline-separated account names.
	Accounts(ctx context.Context, path string) (string, error)
	// Balance returns the formatted balance of one account.
	Balance(ctx context.Context, path, account string) (string, error)
	// Register returns the formatted register of one account.
	Register(ctx context.Context, path, account string) (string, error)
}

// CLI is a Querier backed by the ledger(1) command-line tool.
type CLI struct {
	Binary string // path to the ledger binary; empty means "ledger"
}

// Available checks if the ledger CLI is on PATH.
func Available() error {
	return AvailableAt("ledger")
}

// AvailableAt checks if the ledger CLI exists at the given path.
func AvailableAt(path string) error {
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("ledger CLI not found at %q — install ledger (https://ledger-cli.org) to run queries", path)
	}
	return nil
}

func (c *CLI) binary() string {
	if c.Binary == "" {
		return "ledger"
	}
	return c.Binary
}

// run executes the ledger binary and returns its stdout with the trailing
// newline stripped. On failure the tool's stderr becomes the error message.
func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.binary(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("ledger: %s", msg)
		}
		return "", fmt.Errorf("ledger: %w", err)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

// Accounts lists all account names in the ledger file.
func (c *CLI) Accounts(ctx context.Context, path string) (string, error) {
	return c.run(ctx, "-f", path, "accounts")
}

// Balance reports the balance of the given account.
func (c *CLI) Balance(ctx context.Context, path, account string) (string, error) {
	return c.run(ctx, "-f", path, "balance", account)
}

// Register reports the transaction register of the given account.
func (c *CLI) Register(ctx context.Context, path, account string) (string, error) {
	return c.run(ctx, "-f", path, "register", account)
}
