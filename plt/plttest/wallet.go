package plttest

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Arihaan/ZKShop/plt"
	"github.com/stretchr/testify/require"
)

// WriteWallet writes a single-key browser wallet export for addr and returns
// its path.
func WriteWallet(t testing.TB, addr plt.AccountAddress) string {
	t.Helper()
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 42
	body := fmt.Sprintf(`{"type":"concordium-browser-wallet-account","value":{"address":%q,`+
		`"accountKeys":{"keys":{"0":{"keys":{"0":{"signKey":%q}}}}}}}`, addr.String(), hex.EncodeToString(seed))

	path := filepath.Join(t.TempDir(), "wallet.export")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
