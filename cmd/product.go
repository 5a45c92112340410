package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ampuero/contable/internal/inventory"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage products and inventory movements",
}

// product create
var (
	prodCreateCode string
	prodCreateName string
)

var productCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		p := &inventory.Product{Code: prodCreateCode, Name: prodCreateName}
		if err := st.CreateProduct(context.Background(), p); err != nil {
			return err
		}
		fmt.Printf("Product created: %s  %s\n", p.Code, p.Name)
		return nil
	},
}

// product list
var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		products, err := st.ListProducts(context.Background())
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products found.")
			return nil
		}

		fmt.Printf("%-14s %s\n", "CODE", "NAME")
		fmt.Printf("%-14s %s\n", "----", "----")
		for _, p := range products {
			fmt.Printf("%-14s %s\n", p.Code, p.Name)
		}
		return nil
	},
}

// product buy / sell
var (
	movDate     string
	movQuantity int64
	movUnitCost string
)

func parseMovDate() (time.Time, error) {
	if movDate == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse("2006-01-02", movDate)
}

var productBuyCmd = &cobra.Command{
	Use:   "buy [code]",
	Short: "Record a purchase (opens a new lot)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		date, err := parseMovDate()
		if err != nil {
			return err
		}
		unitCost, err := decimal.NewFromString(movUnitCost)
		if err != nil {
			return fmt.Errorf("invalid unit cost %q: %w", movUnitCost, err)
		}

		m, err := st.RecordPurchase(context.Background(), args[0], date, movQuantity, unitCost)
		if err != nil {
			return err
		}
		fmt.Printf("Purchase recorded: %d x %s = %s\n",
			m.Quantity, m.UnitCost.StringFixed(2), m.TotalCost.StringFixed(2))
		return nil
	},
}

var productSellCmd = &cobra.Command{
	Use:   "sell [code]",
	Short: "Record a sale (consumes open lots oldest-first)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		date, err := parseMovDate()
		if err != nil {
			return err
		}

		m, err := st.RecordSale(context.Background(), args[0], date, movQuantity)
		if err != nil {
			return err
		}
		fmt.Printf("Sale recorded: %d units, cost %s\n", m.Quantity, m.TotalCost.StringFixed(2))
		return nil
	},
}

func init() {
	productCreateCmd.Flags().StringVar(&prodCreateCode, "code", "", "Product code")
	productCreateCmd.Flags().StringVar(&prodCreateName, "name", "", "Product name")
	productCreateCmd.MarkFlagRequired("code")
	productCreateCmd.MarkFlagRequired("name")

	for _, c := range []*cobra.Command{productBuyCmd, productSellCmd} {
		c.Flags().StringVar(&movDate, "date", "", "Movement date (2006-01-02, default today)")
		c.Flags().Int64Var(&movQuantity, "qty", 0, "Quantity (positive integer)")
		c.MarkFlagRequired("qty")
	}
	productBuyCmd.Flags().StringVar(&movUnitCost, "cost", "", "Unit cost")
	productBuyCmd.MarkFlagRequired("cost")

	productCmd.AddCommand(productCreateCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productBuyCmd)
	productCmd.AddCommand(productSellCmd)

	rootCmd.AddCommand(productCmd)
}
