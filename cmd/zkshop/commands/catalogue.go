package commands

import (
	"github.com/Arihaan/ZKShop/cmd/zkshop/output"
	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the catalogue, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		products, err := shopClient().ListProducts(ctx)
		if err != nil {
			return err
		}
		output.Products(cmd.OutOrStdout(), products)
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance <account>",
	Short: "Show an account's token balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		balance, err := shopClient().Balance(ctx, tokenID, args[0])
		if err != nil {
			return err
		}
		output.Info(cmd.OutOrStdout(), "%s %s", balance, tokenID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(balanceCmd)
}
