package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ampuero/contable/internal/ledger"
	"github.com/ampuero/contable/internal/store"
)

var entryCmd = &cobra.Command{
	Use:     "entry",
	Aliases: []string{"asiento"},
	Short:   "Manage journal entries",
}

// entry post
var (
	entryDate        string
	entryDescription string
	entryLines       []string // format: "code:debit:credit"
)

var entryPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a balanced journal entry",
	Long: "Post a journal entry with double-entry lines.\n" +
		`Each --line is formatted as "code:debit:credit" (e.g. "1.1.01:150.00:0").`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		e := &ledger.JournalEntry{Description: entryDescription}
		if entryDate != "" {
			e.Date, err = time.Parse("2006-01-02", entryDate)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", entryDate, err)
			}
		}

		for _, raw := range entryLines {
			parts := strings.SplitN(raw, ":", 3)
			if len(parts) != 3 {
				return fmt.Errorf("invalid line format %q, expected code:debit:credit", raw)
			}
			debit, err := decimal.NewFromString(parts[1])
			if err != nil {
				return fmt.Errorf("invalid debit %q in line %q: %w", parts[1], raw, err)
			}
			credit, err := decimal.NewFromString(parts[2])
			if err != nil {
				return fmt.Errorf("invalid credit %q in line %q: %w", parts[2], raw, err)
			}
			e.Lines = append(e.Lines, ledger.EntryLine{
				AccountCode: parts[0],
				Debit:       debit,
				Credit:      credit,
			})
		}

		if err := st.PostEntry(context.Background(), e); err != nil {
			return err
		}

		fmt.Printf("Entry posted: %s\n", e.ID)
		fmt.Printf("Date: %s  %s\n", e.Date.Format("2006-01-02"), e.Description)
		for _, l := range e.Lines {
			fmt.Printf("  %-14s %12s %12s\n", l.AccountCode, l.Debit.StringFixed(2), l.Credit.StringFixed(2))
		}
		return nil
	},
}

// entry list (libro diario)
var entryListAccount string

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List committed entries in journal order",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.ListEntries(context.Background(), store.EntryFilter{AccountCode: entryListAccount})
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		fmt.Printf("%-38s %-12s %-6s %s\n", "ID", "DATE", "LINES", "DESCRIPTION")
		fmt.Printf("%-38s %-12s %-6s %s\n", "----", "----", "-----", "-----------")
		for _, e := range entries {
			desc := e.Description
			if len(desc) > 40 {
				desc = desc[:38] + ".."
			}
			fmt.Printf("%-38s %-12s %-6d %s\n", e.ID, e.Date.Format("2006-01-02"), len(e.Lines), desc)
		}
		return nil
	},
}

// entry get
var entryGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one entry with its lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.GetEntry(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:          %s\n", e.ID)
		fmt.Printf("Date:        %s\n", e.Date.Format("2006-01-02"))
		fmt.Printf("Description: %s\n", e.Description)
		fmt.Printf("Lines:\n")
		fmt.Printf("  %-14s %12s %12s\n", "ACCOUNT", "DEBIT", "CREDIT")
		for _, l := range e.Lines {
			fmt.Printf("  %-14s %12s %12s\n", l.AccountCode, l.Debit.StringFixed(2), l.Credit.StringFixed(2))
		}
		debit, credit := e.Totals()
		fmt.Printf("  %-14s %12s %12s\n", "TOTAL", debit.StringFixed(2), credit.StringFixed(2))
		return nil
	},
}

func init() {
	entryPostCmd.Flags().StringVar(&entryDate, "date", "", "Entry date (2006-01-02, default today)")
	entryPostCmd.Flags().StringVar(&entryDescription, "description", "", "Entry description")
	entryPostCmd.Flags().StringSliceVar(&entryLines, "line", nil, "Line in format code:debit:credit (can be repeated)")
	entryPostCmd.MarkFlagRequired("description")
	entryPostCmd.MarkFlagRequired("line")

	entryListCmd.Flags().StringVar(&entryListAccount, "account", "", "Filter by account code")

	entryCmd.AddCommand(entryPostCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryGetCmd)

	rootCmd.AddCommand(entryCmd)
}
