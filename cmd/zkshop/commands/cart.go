package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/Arihaan/ZKShop/client"
	"github.com/Arihaan/ZKShop/cmd/zkshop/output"
	"github.com/Arihaan/ZKShop/plt"
	"github.com/spf13/cobra"
)

var (
	removeAll        bool
	presentationFile string
	holderWallet     string
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage a cart kept by the shop",
}

var cartNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a cart and print its session id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		session, err := shopClient().NewCart(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), session)
		return nil
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show <session>",
	Short: "Show the cart lines and total",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		view, err := shopClient().Cart(ctx, args[0])
		if err != nil {
			return err
		}
		output.Cart(cmd.OutOrStdout(), view)
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <session> <productId>",
	Short: "Verify eligibility if needed and add one unit",
	Long: `Add one unit of a product to the cart. Products flagged 18+ or UK only are
first presented to the shop's verifier: --presentation sends the given JSON
file, otherwise the challenge is echoed for the account of --wallet.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := parseProductID(args[1])
		if err != nil {
			return err
		}
		present, err := presenter()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		view, err := shopClient().VerifyAndAdd(ctx, args[0], productID, present)
		if err != nil {
			return err
		}
		output.Success(cmd.OutOrStdout(), "Added product %d", productID)
		output.Cart(cmd.OutOrStdout(), view)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <session> <productId>",
	Short: "Remove one unit, or every unit with --all",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := parseProductID(args[1])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		view, err := shopClient().RemoveFromCart(ctx, args[0], productID, removeAll)
		if err != nil {
			return err
		}
		output.Cart(cmd.OutOrStdout(), view)
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear <session>",
	Short: "Drop the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := shopClient().ClearCart(ctx, args[0]); err != nil {
			return err
		}
		output.Success(cmd.OutOrStdout(), "Cart cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartNewCmd, cartShowCmd, cartAddCmd, cartRemoveCmd, cartClearCmd)

	cartAddCmd.Flags().StringVar(&presentationFile, "presentation", "", "JSON presentation to send to the verifier")
	cartAddCmd.Flags().StringVar(&holderWallet, "wallet", "", "Wallet export of the account presenting statements")
	cartRemoveCmd.Flags().BoolVar(&removeAll, "all", false, "Remove every unit of the product")
}

func parseProductID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("product id %q must be a positive integer", s)
	}
	return id, nil
}

func presenter() (client.Presenter, error) {
	if presentationFile != "" {
		raw, err := os.ReadFile(presentationFile)
		if err != nil {
			return nil, err
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("%s is not valid JSON", presentationFile)
		}
		return func(ctx context.Context, statement json.RawMessage, challenge string) (json.RawMessage, error) {
			return raw, nil
		}, nil
	}

	var account plt.AccountAddress
	if holderWallet != "" {
		signer, err := plt.LoadWallet(holderWallet)
		if err != nil {
			return nil, err
		}
		account = signer.Address()
	}
	return client.ChallengeEcho(account), nil
}
