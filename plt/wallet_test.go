package plt

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed(b byte) []byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = b
	}
	return seed
}

func walletJSON(addr AccountAddress, seeds ...[]byte) string {
	keys := ""
	for i, seed := range seeds {
		if i > 0 {
			keys += ","
		}
		pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
		keys += fmt.Sprintf(`"%d":{"signKey":"%s","verifyKey":"%s"}`, i, hex.EncodeToString(seed), hex.EncodeToString(pub))
	}
	return fmt.Sprintf(`{
  "type": "concordium-browser-wallet-account",
  "v": 0,
  "environment": "testnet",
  "value": {
    "accountKeys": {"keys": {"0": {"keys": {%s}, "threshold": 1}}, "threshold": 1},
    "credentials": {"0": "aa"},
    "address": "%s"
  }
}`, keys, addr)
}

func writeWallet(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallet.export")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadWallet(t *testing.T) {
	addr := testAddress(5)
	path := writeWallet(t, walletJSON(addr, testSeed(1), testSeed(2)))

	w, err := LoadWallet(path)
	require.NoError(t, err)
	assert.Equal(t, addr, w.Address())
	assert.Equal(t, 2, w.KeyCount())

	digest := []byte("0123456789abcdef0123456789abcdef")
	sigs, err := w.Sign(digest)
	require.NoError(t, err)
	require.Len(t, sigs[0], 2)

	for idx, sig := range sigs[0] {
		pub, ok := w.PublicKey(0, idx)
		require.True(t, ok)
		assert.True(t, ed25519.Verify(pub, digest, sig))
	}
}

func TestLoadWalletErrors(t *testing.T) {
	_, err := LoadWallet(filepath.Join(t.TempDir(), "missing.export"))
	assert.Error(t, err)

	_, err = LoadWallet(writeWallet(t, "{not json"))
	assert.Error(t, err)

	_, err = LoadWallet(writeWallet(t, walletJSON(testAddress(1))))
	assert.ErrorContains(t, err, "no signing keys")

	short := `{"value":{"address":"` + testAddress(1).String() + `","accountKeys":{"keys":{"0":{"keys":{"0":{"signKey":"abcd"}}}}}}}`
	_, err = LoadWallet(writeWallet(t, short))
	assert.ErrorContains(t, err, "hex seed")
}
