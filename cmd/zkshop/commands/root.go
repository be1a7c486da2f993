package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Arihaan/ZKShop/client"
	"github.com/Arihaan/ZKShop/config"
	"github.com/Arihaan/ZKShop/plt"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	apiURL    string
	ledgerURL string
	tokenID   string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "zkshop",
	Short: "ZKShop storefront client",
	Long: `zkshop browses the ZKShop catalogue, keeps a cart on the shop and pays for
it with a protocol-level token transfer signed by a wallet export.

Products that require an eligibility statement (18+, UK) are checked against
the shop's verifier before they are added to the cart.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// flag defaults come from the environment, .env included
	_ = godotenv.Load()
	cfg := config.GetConfig()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost"+cfg.Server.Port, "Shop API base URL")
	rootCmd.PersistentFlags().StringVar(&ledgerURL, "ledger", cfg.Ledger.RPCURL, "Ledger JSON-RPC gateway URL")
	rootCmd.PersistentFlags().StringVar(&tokenID, "token", cfg.Ledger.DefaultTokenID, "Token id to pay with")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 3*time.Minute, "Overall timeout of a command")
}

func shopClient() *client.Client {
	return client.New(apiURL, timeout)
}

func ledger() plt.Node {
	return plt.NewRPCClient(ledgerURL, timeout)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
