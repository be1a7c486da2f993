package commands

import (
	"github.com/Arihaan/ZKShop/client"
	"github.com/Arihaan/ZKShop/cmd/zkshop/output"
	"github.com/Arihaan/ZKShop/plt"
	"github.com/spf13/cobra"
)

var (
	checkoutSession   string
	checkoutWallet    string
	checkoutRecipient string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Pay for a cart with a token transfer",
	Long: `Pay for the whole cart in one transfer: the shop prepares the token
operations, the wallet export signs them, the ledger receives the transaction
and every cart line is recorded as an order that turns paid once the
transaction is finalized.

Examples:
  zkshop checkout --session 6f1c... --wallet wallet/buyer.export
  zkshop checkout --session 6f1c... --wallet buyer.export --recipient 3kBx...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := plt.LoadWallet(checkoutWallet)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		out := cmd.OutOrStdout()
		output.Info(out, "Paying from %s", signer.Address())

		result, err := shopClient().Checkout(ctx, ledger(), signer, client.CheckoutOptions{
			Session:   checkoutSession,
			TokenID:   tokenID,
			Recipient: checkoutRecipient,
		})
		if result != nil && result.TxHash != "" {
			output.Info(out, "Submitted %s %s to %s", result.AmountDecimal, tokenID, result.Recipient)
			output.Muted(out, "Transaction %s", result.TxHash)
		}
		if err != nil {
			return err
		}

		for _, o := range result.Orders {
			output.Success(out, "Order %d %s", o.ID, o.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkoutCmd)

	checkoutCmd.Flags().StringVar(&checkoutSession, "session", "", "Cart session id (required)")
	checkoutCmd.Flags().StringVar(&checkoutWallet, "wallet", "", "Wallet export of the paying account (required)")
	checkoutCmd.Flags().StringVar(&checkoutRecipient, "recipient", "", "Pay this account instead of the first line's seller")
	_ = checkoutCmd.MarkFlagRequired("session")
	_ = checkoutCmd.MarkFlagRequired("wallet")
}
