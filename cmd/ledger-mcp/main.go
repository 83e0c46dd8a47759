package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mprokopov/ledger-mcp/internal/config"
	"github.com/mprokopov/ledger-mcp/internal/ledger"
	ledgermcp "github.com/mprokopov/ledger-mcp/internal/mcp"
	"github.com/mprokopov/ledger-mcp/internal/notes"
	"github.com/mprokopov/ledger-mcp/internal/ui"
)

// Set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" {
		return version
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func main() {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "ledger-mcp",
		Short: "ledger-mcp — accounting queries over the Model Context Protocol",
		Long:  "Expose plain-text ledger queries (accounts, balances, registers) and ephemeral notes to MCP clients over stdio, or run the same queries directly from the command line.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.Init(noColor)
		},
	}

	rootCmd.Version = buildVersion()
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		serveCmd(),
		initCmd(),
		doctorCmd(),
		configCmd(),
		accountsCmd(),
		balanceCmd(),
		registerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

// loadStore loads LEDGER_MCP_HOME or explains how to create it.
func loadStore() (*config.Store, error) {
	s, err := config.Load(config.Home())
	if err != nil {
		return nil, fmt.Errorf("ledger-mcp not initialized — run 'ledger-mcp init' first: %w", err)
	}
	return s, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long:  "Start ledger-mcp as a Model Context Protocol (MCP) server over stdio. This allows MCP-compatible clients to query the ledger and keep session notes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}

			q := &ledger.CLI{Binary: s.Config.Ledger.Binary}
			srv := ledgermcp.NewServer(q, notes.NewStore(), s.Paths(), version)

			ui.Logger.Info("serving MCP on stdio", "base", s.Config.Ledger.BasePath)
			return srv.Run(context.Background())
		},
	}
}

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Initialize the LEDGER_MCP_HOME directory",
		Long:    "Create the LEDGER_MCP_HOME directory (~/.ledger-mcp by default) with a default config.yaml. Run this once, then point ledger.base_path at your ledger directory.",
		Example: "  ledger-mcp init\n  ledger-mcp init --force",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := config.Home()
			if err := config.Init(home, force); err != nil {
				return err
			}
			ui.Success("ledger-mcp initialized")
			ui.Detail("Home:", home)
			ui.Detail("Next:", "ledger-mcp config set ledger.base_path /path/to/ledger")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Reinitialize even if LEDGER_MCP_HOME already exists")
	return cmd
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and ledger CLI availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := config.Home()

			s, err := loadStore()
			if err != nil {
				return err
			}

			issues := config.CheckHealth(home)
			if err := ledger.AvailableAt(s.Config.Ledger.Binary); err != nil {
				issues = append(issues, config.Issue{Severity: "warning", Message: fmt.Sprintf("ledger CLI: %v", err)})
			}

			if len(issues) == 0 {
				ui.Success("Everything looks good")
				return nil
			}

			hasError := false
			for _, issue := range issues {
				if issue.Severity == "error" {
					ui.Error(fmt.Sprintf("[ERR]  %s", issue.Message))
					hasError = true
				} else {
					ui.Warning(fmt.Sprintf("[WARN] %s", issue.Message))
				}
			}
			if hasError {
				os.Exit(2)
			}
			os.Exit(1)
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and edit ledger-mcp configuration",
	}
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configSetCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(s.Config)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a ledger-mcp configuration value. Valid keys: ledger.base_path, ledger.binary, ledger.file.",
		Example: `  ledger-mcp config set ledger.base_path ~/personal/ledger
  ledger-mcp config set ledger.binary /opt/homebrew/bin/ledger`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			if err := s.SetConfigValue(args[0], args[1]); err != nil {
				return err
			}
			ui.Success(fmt.Sprintf("Set %s = %s", args[0], args[1]))
			return nil
		},
	}
}

// querier builds the configured CLI querier after a preflight check.
func querier(s *config.Store) (*ledger.CLI, error) {
	if err := ledger.AvailableAt(s.Config.Ledger.Binary); err != nil {
		return nil, err
	}
	return &ledger.CLI{Binary: s.Config.Ledger.Binary}, nil
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "accounts <year>",
		Short:   "List all ledger accounts for a year",
		Example: "  ledger-mcp accounts 2024",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			q, err := querier(s)
			if err != nil {
				return err
			}
			out, err := q.Accounts(cmd.Context(), s.Paths().Resolve(args[0]))
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "balance <year> <account>",
		Short:   "Show the balance of an account",
		Example: "  ledger-mcp balance 2024 Expenses:Food",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			q, err := querier(s)
			if err != nil {
				return err
			}
			out, err := q.Balance(cmd.Context(), s.Paths().Resolve(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "register <year> <account>",
		Short:   "Show the transaction register of an account",
		Example: "  ledger-mcp register 2024 Expenses:Food",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			q, err := querier(s)
			if err != nil {
				return err
			}
			out, err := q.Register(cmd.Context(), s.Paths().Resolve(args[0]), args[1])
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}
