package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ampuero/contable/internal/inventory"
)

var kardexMethod string

var kardexCmd = &cobra.Command{
	Use:   "kardex [product-code]",
	Short: "Recompute a product's cost history (all products if omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		method, err := inventory.ParseMethod(kardexMethod)
		if err != nil {
			return err
		}

		ctx := context.Background()
		var kardexes []*inventory.Kardex
		if len(args) == 1 {
			k, err := st.Kardex(ctx, args[0], method)
			if err != nil {
				return err
			}
			kardexes = append(kardexes, k)
		} else {
			kardexes, err = st.Kardexes(ctx, method)
			if err != nil {
				return err
			}
		}

		for _, k := range kardexes {
			printKardex(k)
		}
		return nil
	},
}

func printKardex(k *inventory.Kardex) {
	fmt.Printf("\nKARDEX %s: %s  %s\n", k.Method, k.Product.Code, k.Product.Name)
	fmt.Printf("%-12s %-8s | %6s %9s %11s | %6s %9s %11s | %6s %9s %11s\n",
		"DATE", "KIND", "IN", "COST", "TOTAL", "OUT", "COST", "TOTAL", "QTY", "UNIT", "VALUE")

	for _, r := range k.Rows {
		in := [3]string{"", "", ""}
		out := [3]string{"", "", ""}
		if r.Kind == inventory.KindPurchase {
			in = [3]string{fmt.Sprint(r.InQty), r.InUnit.StringFixed(2), r.InTotal.StringFixed(2)}
		} else {
			out = [3]string{fmt.Sprint(r.OutQty), r.OutUnit.StringFixed(2), r.OutTotal.StringFixed(2)}
		}
		fmt.Printf("%-12s %-8s | %6s %9s %11s | %6s %9s %11s | %6d %9s %11s\n",
			r.Date.Format("2006-01-02"), r.Kind,
			in[0], in[1], in[2],
			out[0], out[1], out[2],
			r.BalanceQty, r.BalanceUnit.StringFixed(2), r.BalanceValue.StringFixed(2))
	}

	fmt.Printf("On hand: %d units, value %s; total COGS %s\n",
		k.FinalQty, k.FinalValue.StringFixed(2), k.TotalCOGS.StringFixed(2))
}

func init() {
	kardexCmd.Flags().StringVar(&kardexMethod, "method", "fifo", "Costing method: fifo or pmp")
	rootCmd.AddCommand(kardexCmd)
}
