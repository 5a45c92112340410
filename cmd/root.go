package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ampuero/contable/internal/store"
)

var flagDB string

var rootCmd = &cobra.Command{
	Use:   "contable",
	Short: "Single-user double-entry bookkeeping with inventory costing",
	Long: "A double-entry bookkeeping ledger backed by SQLite: chart of accounts,\n" +
		"journal entries, FIFO / weighted-average inventory kardex, and derived\n" +
		"financial statements.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "contable.db", "SQLite database path")
}

// openStore opens the database for a command run. Commands talk to the store
// directly; this is a single-user desktop tool.
func openStore() (*store.Store, error) {
	return store.Open(flagDB)
}

func Execute() error {
	return rootCmd.Execute()
}
