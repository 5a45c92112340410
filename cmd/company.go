package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ampuero/contable/internal/ledger"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage the company profile",
}

var companyFields ledger.Company

var companySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the company profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SetCompany(context.Background(), &companyFields); err != nil {
			return err
		}
		fmt.Println("Company profile saved.")
		return nil
	},
}

var companyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the company profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		c, err := st.GetCompany(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Tax ID:     %s\n", c.TaxID)
		fmt.Printf("Legal name: %s\n", c.LegalName)
		if c.TradeName != "" {
			fmt.Printf("Trade name: %s\n", c.TradeName)
		}
		if c.Address != "" {
			fmt.Printf("Address:    %s\n", c.Address)
		}
		if c.Phone != "" {
			fmt.Printf("Phone:      %s\n", c.Phone)
		}
		if c.Email != "" {
			fmt.Printf("Email:      %s\n", c.Email)
		}
		if c.City != "" || c.Country != "" {
			fmt.Printf("Location:   %s %s\n", c.City, c.Country)
		}
		return nil
	},
}

func init() {
	companySetCmd.Flags().StringVar(&companyFields.TaxID, "tax-id", "", "Tax identification (RUC)")
	companySetCmd.Flags().StringVar(&companyFields.LegalName, "name", "", "Legal name")
	companySetCmd.Flags().StringVar(&companyFields.TradeName, "trade-name", "", "Trade name")
	companySetCmd.Flags().StringVar(&companyFields.Address, "address", "", "Address")
	companySetCmd.Flags().StringVar(&companyFields.Phone, "phone", "", "Phone")
	companySetCmd.Flags().StringVar(&companyFields.Email, "email", "", "Email")
	companySetCmd.Flags().StringVar(&companyFields.City, "city", "", "City")
	companySetCmd.Flags().StringVar(&companyFields.Country, "country", "", "Country")
	companySetCmd.MarkFlagRequired("tax-id")
	companySetCmd.MarkFlagRequired("name")

	companyCmd.AddCommand(companySetCmd)
	companyCmd.AddCommand(companyShowCmd)
	rootCmd.AddCommand(companyCmd)
}
