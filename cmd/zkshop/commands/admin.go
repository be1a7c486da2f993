package commands

import (
	"fmt"
	"time"

	"github.com/Arihaan/ZKShop/config"
	"github.com/Arihaan/ZKShop/lib"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var adminTokenCmd = &cobra.Command{
	Use:   "admin-token",
	Short: "Mint an operator token from AUTH_ADMIN_SECRET",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		ttl := tokenTTL
		if ttl == 0 {
			ttl = cfg.Auth.AdminTokenExpiry
		}

		token, err := lib.GenerateAdminToken(tokenSubject, cfg.Auth.AdminSecret, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminTokenCmd)

	adminTokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "Subject claim of the token")
	adminTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default AUTH_ADMIN_TOKEN_EXPIRY)")
}
