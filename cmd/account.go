package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ampuero/contable/internal/ledger"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the chart of accounts",
}

// account create
var (
	acctCreateCode   string
	acctCreateName   string
	acctCreateType   string
	acctCreateNature string
)

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new account",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		nature, err := ledger.ParseNature(acctCreateNature)
		if err != nil {
			if acctCreateNature != "" {
				return err
			}
			n, ok := ledger.NatureForClass(ledger.ClassOf(acctCreateCode))
			if !ok {
				return fmt.Errorf("--nature is required for class %s", ledger.ClassOf(acctCreateCode))
			}
			nature = n
		}

		// Omitted --type falls back to the starter chart's classification.
		if acctCreateType == "" {
			if ce := ledger.LookupChartEntry(acctCreateCode); ce != nil {
				acctCreateType = ce.Type
			}
		}

		acct := &ledger.Account{
			Code:   acctCreateCode,
			Name:   acctCreateName,
			Type:   acctCreateType,
			Nature: nature,
		}
		if err := st.CreateAccount(context.Background(), acct); err != nil {
			return err
		}

		fmt.Printf("Account created: %s  %s (%s, %s)\n", acct.Code, acct.Name, acct.Type, acct.Nature)
		return nil
	},
}

// account list
var acctListPrefix string

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts (optionally by code prefix)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		accounts, err := st.ListAccountsByPrefix(context.Background(), acctListPrefix)
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			fmt.Println("No accounts found.")
			return nil
		}

		fmt.Printf("%-14s %-36s %-12s %s\n", "CODE", "NAME", "TYPE", "NATURE")
		fmt.Printf("%-14s %-36s %-12s %s\n", "----", "----", "----", "------")
		for _, a := range accounts {
			name := a.Name
			if len(name) > 34 {
				name = name[:32] + ".."
			}
			fmt.Printf("%-14s %-36s %-12s %s\n", a.Code, name, a.Type, a.Nature)
		}
		return nil
	},
}

// account balance
var accountBalanceCmd = &cobra.Command{
	Use:   "balance [code-or-prefix]",
	Short: "Show the signed balance of an account or group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		balance, err := st.BalanceFor(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Balance %s: %s\n", args[0], balance.StringFixed(2))
		return nil
	},
}

// account ledger (libro mayor)
var accountLedgerCmd = &cobra.Command{
	Use:   "ledger [code]",
	Short: "Show an account's line history with running balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		h, err := st.AccountHistory(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Ledger for %s - %s (%s)\n\n", h.Account.Code, h.Account.Name, h.Account.Nature)
		if len(h.Moves) == 0 {
			fmt.Println("No movements.")
			return nil
		}

		fmt.Printf("%-12s %-30s %12s %12s %12s\n", "DATE", "DESCRIPTION", "DEBIT", "CREDIT", "BALANCE")
		for _, m := range h.Moves {
			desc := m.Description
			if len(desc) > 28 {
				desc = desc[:26] + ".."
			}
			fmt.Printf("%-12s %-30s %12s %12s %12s\n",
				m.Date.Format("2006-01-02"), desc,
				m.Debit.StringFixed(2), m.Credit.StringFixed(2), m.Balance.StringFixed(2))
		}
		fmt.Printf("\nFinal balance: %s\n", h.Final.StringFixed(2))
		return nil
	},
}

// account seed
var accountSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in starter chart of accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		created, err := st.SeedStarterChart(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Starter chart loaded: %d accounts created.\n", created)
		return nil
	},
}

func init() {
	accountCreateCmd.Flags().StringVar(&acctCreateCode, "code", "", "Dotted account code (e.g. 1.1.03)")
	accountCreateCmd.Flags().StringVar(&acctCreateName, "name", "", "Account name")
	accountCreateCmd.Flags().StringVar(&acctCreateType, "type", "", "Classification (Activo, Pasivo, ...)")
	accountCreateCmd.Flags().StringVar(&acctCreateNature, "nature", "", "deudora or acreedora (defaults by class)")
	accountCreateCmd.MarkFlagRequired("code")
	accountCreateCmd.MarkFlagRequired("name")

	accountListCmd.Flags().StringVar(&acctListPrefix, "prefix", "", "Filter by code prefix")

	accountCmd.AddCommand(accountCreateCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountBalanceCmd)
	accountCmd.AddCommand(accountLedgerCmd)
	accountCmd.AddCommand(accountSeedCmd)

	rootCmd.AddCommand(accountCmd)
}
