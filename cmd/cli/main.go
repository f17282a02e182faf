package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/exemptledger/internal/adapter/http/dto"
	"github.com/iho/exemptledger/internal/domain"
	"github.com/iho/exemptledger/internal/infrastructure/auth"
	"github.com/iho/exemptledger/internal/money"
)

type cli struct {
	baseURL    string
	timeout    time.Duration
	configPath string
	jsonOutput bool

	cfg cliConfig
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "exemptledger-cli",
		Short:         "ExemptLedger CLI tool",
		Long:          `A command line interface for tracking foreign income against the exemption limit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.baseURL, "url", "", "Base URL of the ExemptLedger API (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&c.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", defaultConfigPath(), "Path to the CLI config file")
	rootCmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "Print raw JSON responses")

	rootCmd.AddCommand(
		c.statusCmd(),
		c.addCmd(),
		c.listCmd(),
		c.exportCmd(),
		c.ratesCmd(),
		tokenCmd(),
		c.configCmd(),
	)

	return rootCmd
}

func (c *cli) loadConfig(cmd *cobra.Command) error {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.baseURL != "" {
		cfg.Server.URL = c.baseURL
	}
	if !cmd.Flags().Changed("json") && cfg.Output.Format == "json" {
		c.jsonOutput = true
	}
	c.cfg = cfg
	return nil
}

func (c *cli) client() *apiClient {
	return newAPIClient(c.cfg.Server, c.timeout)
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show total income against the exemption limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			var s dto.SummaryResponse
			if err := c.client().doJSON(cmd.Context(), "GET", "/api/v1/income/summary", nil, &s); err != nil {
				return err
			}
			if c.jsonOutput {
				printJSON(s)
				return nil
			}
			printSummary(&s)
			return nil
		},
	}
}

func printSummary(s *dto.SummaryResponse) {
	fmt.Printf("Status:    %s\n", s.Status)
	fmt.Printf("Total:     %s\n", tl(s.Total))
	fmt.Printf("Limit:     %s\n", tl(s.Limit))
	fmt.Printf("Remaining: %s\n", tl(s.Headroom))
	fmt.Printf("Used:      %%%s\n", s.UsagePercent)
	fmt.Printf("Entries:   %d\n", s.EntryCount)
}

func (c *cli) addCmd() *cobra.Command {
	var req dto.AddIncomeRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a foreign income entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Date == "" {
				req.Date = time.Now().Format(domain.DateLayout)
			}
			var e dto.IncomeEntryResponse
			if err := c.client().doJSON(cmd.Context(), "POST", "/api/v1/income", &req, &e); err != nil {
				return err
			}
			if c.jsonOutput {
				printJSON(e)
				return nil
			}
			fmt.Printf("Recorded %s %s on %s = %s (id %s)\n", e.Amount, e.Currency, e.Date, tl(e.DomesticValue), e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Date, "date", "", "Income date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&req.Amount, "amount", "", "Amount in the original currency")
	cmd.Flags().StringVar(&req.Currency, "currency", string(domain.CurrencyUSD), "Currency code (USD, EUR, GBP)")
	cmd.Flags().StringVar(&req.ExchangeRate, "rate", "", "Exchange rate override (default: current rate)")
	cmd.Flags().StringVar(&req.Description, "description", "", "Free-form description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded income entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))

			var resp dto.ListIncomeResponse
			if err := c.client().doJSON(cmd.Context(), "GET", "/api/v1/income?"+q.Encode(), nil, &resp); err != nil {
				return err
			}
			if c.jsonOutput {
				printJSON(resp)
				return nil
			}
			if len(resp.Entries) == 0 {
				fmt.Println("No income entries.")
				return nil
			}
			fmt.Printf("%-10s  %-26s  %12s  %-3s  %10s  %14s\n", "DATE", "DESCRIPTION", "AMOUNT", "CUR", "RATE", "TL")
			for _, e := range resp.Entries {
				fmt.Printf("%-10s  %-26s  %12s  %-3s  %10s  %14s\n",
					e.Date, truncate(e.Description, 26), e.Amount, e.Currency, e.ExchangeRate, fixed2(e.DomesticValue))
			}
			fmt.Printf("%d of %d entries\n", len(resp.Entries), resp.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "Entries to skip")

	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var kind, petition, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download an income report or petition",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/income/export?kind=" + url.QueryEscape(kind)
			if petition != "" {
				path = "/api/v1/petition?type=" + url.QueryEscape(petition)
			}

			name, data, err := c.client().download(cmd.Context(), path)
			if err != nil {
				return err
			}
			if out == "" {
				out = name
			}
			if out == "" {
				out = "export"
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating output dir: %w", err)
				}
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "spreadsheet", "Report kind: spreadsheet, csv or document")
	cmd.Flags().StringVar(&petition, "petition", "", "Petition type instead of a report: income_declaration or exception_request")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: server-provided name)")

	return cmd
}

func (c *cli) ratesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show current exchange rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.RatesResponse
			if err := c.client().doJSON(cmd.Context(), "GET", "/api/v1/rates", nil, &resp); err != nil {
				return err
			}
			if c.jsonOutput {
				printJSON(resp)
				return nil
			}
			for _, r := range resp.Rates {
				fmt.Printf("%-3s  buy %-10s  sell %-10s  %s\n", r.Code, r.Buying, r.Selling, r.Name)
			}
			if !resp.FetchedAt.IsZero() {
				fmt.Printf("Fetched at %s\n", resp.FetchedAt.Local().Format(time.DateTime))
			}
			return nil
		},
	}
}

// tokenCmd issues a token offline with the server's shared secret.
func tokenCmd() *cobra.Command {
	var secret, user string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate an API token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("--secret or JWT_SECRET is required")
			}
			token, err := auth.NewJWTManager(secret, ttl).Generate(user)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret (default $JWT_SECRET)")
	cmd.Flags().StringVar(&user, "user", "", "User ID to issue the token for")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the CLI config file",
	}

	var token, user string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if token != "" {
				cfg.Server.Token = token
			}
			if user != "" {
				cfg.Server.UserID = user
			}
			if err := saveConfig(c.configPath, cfg); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", c.configPath)
			return nil
		},
	}
	initCmd.Flags().StringVar(&token, "token", "", "API token to store")
	initCmd.Flags().StringVar(&user, "user", "", "User ID sent when no token is set")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := c.cfg
			if cfg.Server.Token != "" {
				cfg.Server.Token = truncate(cfg.Server.Token, 12)
			}
			printJSON(cfg)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encoding json: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func tl(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return money.TL(d)
}

func fixed2(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return money.Fixed2(d)
}

