package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ampuero/contable/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import [file.xlsx]",
	Short: "Import a chart of accounts from an Excel workbook",
	Long: "Import accounts from every sheet of an Excel workbook. Sheets need the\n" +
		"columns CÓDIGO, NOMBRE, TIPO and NATURALEZA; codes already registered\n" +
		"are skipped.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := importer.ImportChart(context.Background(), f, st)
		if err != nil {
			return err
		}

		fmt.Printf("Import finished: %d accounts created, %d skipped.\n", res.Imported, res.Skipped)
		for _, w := range res.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
