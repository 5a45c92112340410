package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ampuero/contable/internal/ledger"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Derive financial statements from the ledger",
}

var trialBalanceCmd = &cobra.Command{
	Use:   "trial-balance",
	Short: "Show the balance de comprobación",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		tb, err := st.TrialBalance(context.Background())
		if err != nil {
			return err
		}
		printTrialBalance(tb)
		return nil
	},
}

var openingBalanceCmd = &cobra.Command{
	Use:   "opening",
	Short: "Show the balance de situación inicial (from the opening entry)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ob, err := st.OpeningBalance(context.Background())
		if err != nil {
			return err
		}
		printOpeningBalance(ob)
		return nil
	},
}

var incomeStatementCmd = &cobra.Command{
	Use:   "income",
	Short: "Show the estado de resultados",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		is, err := st.IncomeStatement(context.Background())
		if err != nil {
			return err
		}
		printIncomeStatement(is)
		return nil
	},
}

var balanceSheetCmd = &cobra.Command{
	Use:   "balance-sheet",
	Short: "Show the balance general",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		is, err := st.IncomeStatement(ctx)
		if err != nil {
			return err
		}
		bs, err := st.BalanceSheet(ctx, is.NetIncome)
		if err != nil {
			return err
		}
		printBalanceSheet(bs)
		return nil
	},
}

func printTrialBalance(tb *ledger.TrialBalance) {
	w := 84
	fmt.Println()
	fmt.Println(center("BALANCE DE COMPROBACIÓN", w))
	fmt.Println(center(strings.Repeat("=", 24), w))
	fmt.Println()

	fmt.Printf("  %-12s %-26s %10s %10s %10s %10s\n",
		"CODE", "ACCOUNT", "SUM DR", "SUM CR", "DEBTOR", "CREDITOR")
	for _, l := range tb.Lines {
		name := l.Name
		if len(name) > 24 {
			name = name[:22] + ".."
		}
		fmt.Printf("  %-12s %-26s %10s %10s %10s %10s\n",
			l.Code, name,
			l.SumDebit.StringFixed(2), l.SumCredit.StringFixed(2),
			l.DebtorBal.StringFixed(2), l.CreditorBal.StringFixed(2))
	}

	fmt.Printf("  %s\n", strings.Repeat("─", w-4))
	fmt.Printf("  %-39s %10s %10s %10s %10s\n", "TOTALS",
		tb.TotalSumDebit.StringFixed(2), tb.TotalSumCredit.StringFixed(2),
		tb.TotalDebtorBal.StringFixed(2), tb.TotalCreditorBal.StringFixed(2))

	if tb.Balanced {
		fmt.Println("\n  [BALANCED]")
	} else {
		fmt.Println("\n  [UNBALANCED!]")
	}
}

func printOpeningBalance(ob *ledger.OpeningBalance) {
	w := 60
	fmt.Println()
	fmt.Println(center("BALANCE DE SITUACIÓN INICIAL", w))
	fmt.Printf("\n  Al: %s\n  Basado en: %s\n\n", ob.Date.Format("2006-01-02"), ob.Description)

	section := func(title string, lines []ledger.OpeningBalanceLine, total decimal.Decimal) {
		fmt.Printf("  %s\n", title)
		for _, l := range lines {
			fmt.Printf("  %-12s %-28s %12s\n", l.Code, l.Name, l.Balance.StringFixed(2))
		}
		fmt.Printf("  %-41s %12s\n\n", "TOTAL "+title, total.StringFixed(2))
	}
	section("ACTIVOS", ob.Assets, ob.TotalAssets)
	section("PASIVOS", ob.Liabilities, ob.TotalLiabilities)
	section("PATRIMONIO", ob.Equity, ob.TotalEquity)

	fmt.Printf("  %-41s %12s\n", "TOTAL PASIVO + PATRIMONIO",
		ob.TotalLiabilities.Add(ob.TotalEquity).StringFixed(2))
	if ob.Balanced {
		fmt.Println("\n  [BALANCED]")
	} else {
		fmt.Println("\n  [WARNING: assets != liabilities + equity]")
	}
}

func printIncomeStatement(is *ledger.IncomeStatement) {
	w := 50
	fmt.Println()
	fmt.Println(center("ESTADO DE RESULTADOS", w))
	fmt.Println()
	fmt.Printf("  %-30s %15s\n", "Revenue", is.Revenue.StringFixed(2))
	fmt.Printf("  %-30s %15s\n", "(-) Cost of sales", is.CostOfSales.StringFixed(2))
	fmt.Printf("  %-30s %15s\n", "Gross profit", is.GrossProfit.StringFixed(2))
	fmt.Printf("  %-30s %15s\n", "(-) Operating expenses", is.Expenses.StringFixed(2))
	fmt.Printf("  %s\n", strings.Repeat("─", w-4))
	fmt.Printf("  %-30s %15s\n", "NET INCOME", is.NetIncome.StringFixed(2))
}

func printBalanceSheet(bs *ledger.BalanceSheet) {
	w := 50
	fmt.Println()
	fmt.Println(center("BALANCE GENERAL", w))
	fmt.Println()
	fmt.Printf("  %-30s %15s\n", "Assets", bs.Assets.StringFixed(2))
	fmt.Printf("  %-30s %15s\n", "Liabilities", bs.Liabilities.StringFixed(2))
	fmt.Printf("  %-30s %15s\n", "Equity (incl. net income)", bs.Equity.StringFixed(2))
	fmt.Printf("  %s\n", strings.Repeat("─", w-4))
	fmt.Printf("  %-30s %15s\n", "Liabilities + Equity", bs.Liabilities.Add(bs.Equity).StringFixed(2))

	if bs.Balanced {
		fmt.Println("\n  [BALANCED]")
	} else {
		fmt.Println("\n  [WARNING: assets != liabilities + equity]")
	}
}

func center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	pad := (w - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func init() {
	reportCmd.AddCommand(trialBalanceCmd)
	reportCmd.AddCommand(openingBalanceCmd)
	reportCmd.AddCommand(incomeStatementCmd)
	reportCmd.AddCommand(balanceSheetCmd)
	rootCmd.AddCommand(reportCmd)
}
