package plt

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// walletExport is the account export file produced by the browser wallet.
type walletExport struct {
	Type  string `json:"type"`
	Value struct {
		Address     string `json:"address"`
		AccountKeys struct {
			Keys map[string]struct {
				Keys map[string]struct {
					SignKey   string `json:"signKey"`
					VerifyKey string `json:"verifyKey"`
				} `json:"keys"`
			} `json:"keys"`
		} `json:"accountKeys"`
	} `json:"value"`
}

// WalletSigner signs with every key of an exported account.
type WalletSigner struct {
	address AccountAddress
	keys    map[uint8]map[uint8]ed25519.PrivateKey
}

// LoadWallet reads and parses a wallet export file.
func LoadWallet(path string) (*WalletSigner, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet export %s: %w", path, err)
	}
	w, err := ParseWallet(raw)
	if err != nil {
		return nil, fmt.Errorf("wallet export %s: %w", path, err)
	}
	return w, nil
}

func ParseWallet(raw []byte) (*WalletSigner, error) {
	var export walletExport
	if err := json.Unmarshal(raw, &export); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	addr, err := ParseAccountAddress(export.Value.Address)
	if err != nil {
		return nil, err
	}

	w := &WalletSigner{address: addr, keys: make(map[uint8]map[uint8]ed25519.PrivateKey)}
	for credStr, cred := range export.Value.AccountKeys.Keys {
		credIdx, err := parseIndex(credStr)
		if err != nil {
			return nil, fmt.Errorf("credential index %q: %w", credStr, err)
		}
		for keyStr, pair := range cred.Keys {
			keyIdx, err := parseIndex(keyStr)
			if err != nil {
				return nil, fmt.Errorf("key index %q: %w", keyStr, err)
			}
			seed, err := hex.DecodeString(pair.SignKey)
			if err != nil || len(seed) != ed25519.SeedSize {
				return nil, fmt.Errorf("sign key %s/%s is not a %d byte hex seed", credStr, keyStr, ed25519.SeedSize)
			}
			if w.keys[credIdx] == nil {
				w.keys[credIdx] = make(map[uint8]ed25519.PrivateKey)
			}
			w.keys[credIdx][keyIdx] = ed25519.NewKeyFromSeed(seed)
		}
	}

	if w.KeyCount() == 0 {
		return nil, fmt.Errorf("no signing keys")
	}
	return w, nil
}

func (w *WalletSigner) Address() AccountAddress {
	return w.address
}

func (w *WalletSigner) KeyCount() int {
	n := 0
	for _, keys := range w.keys {
		n += len(keys)
	}
	return n
}

func (w *WalletSigner) Sign(digest []byte) (Signatures, error) {
	sigs := make(Signatures, len(w.keys))
	for cred, keys := range w.keys {
		sigs[cred] = make(map[uint8][]byte, len(keys))
		for idx, key := range keys {
			sigs[cred][idx] = ed25519.Sign(key, digest)
		}
	}
	return sigs, nil
}

// PublicKey returns the verify key at the given indices.
func (w *WalletSigner) PublicKey(cred, key uint8) (ed25519.PublicKey, bool) {
	priv, ok := w.keys[cred][key]
	if !ok {
		return nil, false
	}
	return priv.Public().(ed25519.PublicKey), true
}

func parseIndex(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}
