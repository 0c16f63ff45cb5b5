// Package cli is the operator command-line adapter. It talks only to the
// ApplicationService; all consolidation happens behind that interface.
package cli

import (
	"fmt"
	"strings"
	"time"

	"shopledger/internal/app"
	"shopledger/internal/core"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	flagFrom string
	flagTo   string
)

// New builds the root command tree over the given service.
func New(svc app.ApplicationService) *cobra.Command {
	root := &cobra.Command{
		Use:           "shopledger",
		Short:         "Consolidate transaction feeds into a double-entry ledger and reports",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flagFrom, "from", "", "period start (YYYY-MM-DD, default: first of current month)")
	root.PersistentFlags().StringVar(&flagTo, "to", "", "period end (YYYY-MM-DD, default: last of current month)")
	_ = viper.BindPFlag("from", root.PersistentFlags().Lookup("from"))
	_ = viper.BindPFlag("to", root.PersistentFlags().Lookup("to"))

	report := &cobra.Command{Use: "report", Short: "Derive financial reports"}
	report.AddCommand(
		&cobra.Command{
			Use:   "tb",
			Short: "Trial balance for the period",
			RunE: func(cmd *cobra.Command, args []string) error {
				start, end := period()
				result, err := svc.GetTrialBalance(cmd.Context(), start, end)
				if err != nil {
					return err
				}
				printTrialBalance(result)
				return nil
			},
		},
		&cobra.Command{
			Use:   "pl",
			Short: "Profit & loss for the period",
			RunE: func(cmd *cobra.Command, args []string) error {
				start, end := period()
				result, err := svc.GetProfitAndLoss(cmd.Context(), start, end)
				if err != nil {
					return err
				}
				printProfitAndLoss(result)
				return nil
			},
		},
		&cobra.Command{
			Use:   "bs",
			Short: "Balance sheet as of the period end",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, end := period()
				result, err := svc.GetBalanceSheet(cmd.Context(), end)
				if err != nil {
					return err
				}
				printBalanceSheet(result)
				return nil
			},
		},
	)

	check := &cobra.Command{
		Use:   "check",
		Short: "Verify debit/credit equality over the period",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := period()
			result, err := svc.CheckIntegrity(cmd.Context(), start, end)
			if err != nil {
				return err
			}
			fmt.Printf("Debit total : %s\n", result.DebitTotal)
			fmt.Printf("Credit total: %s\n", result.CreditTotal)
			if result.Balanced {
				fmt.Println("Ledger is balanced.")
				return nil
			}
			fmt.Printf("WARNING: ledger out of balance by %s\n", result.Difference)
			return nil
		},
	}

	override := &cobra.Command{Use: "override", Short: "Manage account mapping overrides"}
	override.AddCommand(
		&cobra.Command{
			Use:   "set <transaction-id> <debit|credit> <account-code>",
			Short: "Redirect one side of a transaction's journal pair",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				ov := core.AccountOverride{
					TransactionID: args[0],
					Lines: []core.OverrideLine{
						{Position: core.Position(args[1]), AccountCode: args[2]},
					},
				}
				if err := svc.SetOverride(cmd.Context(), ov); err != nil {
					return err
				}
				fmt.Printf("Override saved for %s.\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <transaction-id>",
			Short: "Remove the override for a transaction",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := svc.RemoveOverride(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Printf("Override removed for %s.\n", args[0])
				return nil
			},
		},
	)

	accounts := &cobra.Command{
		Use:   "accounts",
		Short: "List the chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := svc.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			for _, a := range list {
				fmt.Printf("  %-10s %-34s %15s\n", a.Code, a.Name, a.OpeningBalance)
			}
			return nil
		},
	}

	root.AddCommand(report, check, override, accounts)
	return root
}

// period resolves the reporting period from flags/config, defaulting to
// the current calendar month.
func period() (time.Time, time.Time) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	if v := viper.GetString("from"); v != "" {
		if t, err := time.ParseInLocation("2006-01-02", v, time.UTC); err == nil {
			start = t
		}
	}
	if v := viper.GetString("to"); v != "" {
		if t, err := time.ParseInLocation("2006-01-02", v, time.UTC); err == nil {
			end = t
		}
	}
	return start, end
}

func printTrialBalance(result *app.TrialBalanceResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 96))
	fmt.Printf("  TRIAL BALANCE  %s to %s\n",
		result.PeriodStart.Format("2006-01-02"), result.PeriodEnd.Format("2006-01-02"))
	fmt.Println(strings.Repeat("=", 96))
	fmt.Printf("  %-10s %-26s %13s %13s %13s %13s\n", "CODE", "NAME", "OPENING", "DEBIT", "CREDIT", "ENDING")
	fmt.Println(strings.Repeat("-", 96))
	for _, row := range result.Rows {
		if row.Opening.IsZero() && row.Movement.IsZero() {
			continue
		}
		fmt.Printf("  %-10s %-26s %13s %13s %13s %13s\n",
			row.Code, truncate(row.Name, 26), row.Opening, row.PeriodDebit, row.PeriodCredit, row.Ending)
	}
	fmt.Println(strings.Repeat("-", 96))
	printIntegrity(result.Integrity)
	printWarnings(result.Warnings)
}

func printProfitAndLoss(result *app.PLResult) {
	r := result.Report
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  PROFIT & LOSS  %s to %s\n",
		r.PeriodStart.Format("2006-01-02"), r.PeriodEnd.Format("2006-01-02"))
	fmt.Println(strings.Repeat("=", 62))
	printSection("Revenue", r.Revenue, r.TotalRevenue)
	printSection("Cost of Goods Sold", r.CostOfSales, r.TotalCOGS)
	fmt.Printf("  %-44s %15s\n", "GROSS PROFIT", r.GrossProfit)
	printSection("Operating Expenses", r.Expenses, r.TotalExpense)
	fmt.Println(strings.Repeat("-", 62))
	fmt.Printf("  %-44s %15s\n", "NET PROFIT", r.NetProfit)
	printWarnings(result.Warnings)
}

func printBalanceSheet(result *app.BSResult) {
	r := result.Report
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  BALANCE SHEET  as of %s\n", r.AsOf.Format("2006-01-02"))
	fmt.Println(strings.Repeat("=", 62))
	printSection("Current Assets", r.CurrentAssets, decimal.Zero)
	printSection("Fixed Assets", r.FixedAssets, decimal.Zero)
	fmt.Printf("  %-44s %15s\n", "TOTAL ASSETS", r.TotalAssets)
	printSection("Current Liabilities", r.CurrentLiabilities, decimal.Zero)
	printSection("Long-term Liabilities", r.LongTermLiabilities, decimal.Zero)
	fmt.Printf("  %-44s %15s\n", "TOTAL LIABILITIES", r.TotalLiabilities)
	printSection("Equity", r.Equity, decimal.Zero)
	fmt.Printf("  %-44s %15s\n", "Retained Earnings (derived)", r.RetainedEarnings)
	fmt.Printf("  %-44s %15s\n", "TOTAL EQUITY", r.TotalEquity)
	printIntegrity(result.Integrity)
	printWarnings(result.Warnings)
}

func printSection(title string, lines []core.AccountLine, total decimal.Decimal) {
	fmt.Printf("  %s\n", title)
	for _, l := range lines {
		fmt.Printf("    %-10s %-30s %15s\n", l.Code, truncate(l.Name, 30), l.Balance)
	}
	if !total.IsZero() {
		fmt.Printf("  %-44s %15s\n", "Total "+title, total)
	}
}

func printIntegrity(result core.IntegrityResult) {
	if result.Balanced {
		return
	}
	fmt.Printf("  WARNING: ledger out of balance by %s (debit %s / credit %s)\n",
		result.Difference, result.DebitTotal, result.CreditTotal)
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
