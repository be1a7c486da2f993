package plt

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"
	"time"
)

const (
	payloadTypeTokenUpdate = 27
	blockItemAccountTx     = 0

	headerSize = addressLength + 8 + 8 + 4 + 8

	// Energy charged per signature and per serialized byte, plus the cost of
	// executing a token update and each operation in it.
	energyPerSignature   = 100
	energyPerByte        = 1
	energyTokenUpdate    = 300
	energyPerTokenOpBase = 100

	DefaultExpiry = 10 * time.Minute
)

// TransactionHeader precedes every account transaction payload.
type TransactionHeader struct {
	Sender      AccountAddress
	Nonce       uint64
	Energy      uint64
	PayloadSize uint32
	Expiry      uint64 // unix seconds
}

func (h TransactionHeader) serialize() []byte {
	out := make([]byte, 0, headerSize)
	out = append(out, h.Sender[:]...)
	out = binary.BigEndian.AppendUint64(out, h.Nonce)
	out = binary.BigEndian.AppendUint64(out, h.Energy)
	out = binary.BigEndian.AppendUint32(out, h.PayloadSize)
	out = binary.BigEndian.AppendUint64(out, h.Expiry)
	return out
}

// TokenUpdatePayload serializes a TokenUpdate payload: the payload type, the
// length prefixed token id and the length prefixed CBOR operation list.
func TokenUpdatePayload(tokenID string, operations []byte) ([]byte, error) {
	if tokenID == "" || len(tokenID) > 255 {
		return nil, fmt.Errorf("token id must be 1 to 255 bytes, got %d", len(tokenID))
	}
	out := make([]byte, 0, 1+1+len(tokenID)+4+len(operations))
	out = append(out, payloadTypeTokenUpdate)
	out = append(out, byte(len(tokenID)))
	out = append(out, tokenID...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(operations)))
	out = append(out, operations...)
	return out, nil
}

// Signatures maps credential index to key index to signature bytes.
type Signatures map[uint8]map[uint8][]byte

func (s Signatures) count() int {
	n := 0
	for _, keys := range s {
		n += len(keys)
	}
	return n
}

func (s Signatures) serialize() []byte {
	out := []byte{byte(len(s))}
	for _, cred := range sortedKeys(s) {
		keys := s[cred]
		out = append(out, cred, byte(len(keys)))
		for _, key := range sortedKeys(keys) {
			sig := keys[key]
			out = append(out, key)
			out = binary.BigEndian.AppendUint16(out, uint16(len(sig)))
			out = append(out, sig...)
		}
	}
	return out
}

// Signer produces account transaction signatures for one account.
type Signer interface {
	Address() AccountAddress
	KeyCount() int
	Sign(digest []byte) (Signatures, error)
}

// SignedTransaction is a signed account transaction ready for submission.
type SignedTransaction struct {
	Header     TransactionHeader
	Payload    []byte
	Signatures Signatures
}

// EstimateEnergy returns the energy to reserve for a token update with
// opCount operations signed by keyCount keys.
func EstimateEnergy(keyCount, payloadSize, opCount int) uint64 {
	size := headerSize + payloadSize
	return uint64(energyPerSignature*keyCount + energyPerByte*size +
		energyTokenUpdate + energyPerTokenOpBase*opCount)
}

// SignTokenUpdate builds and signs a TokenUpdate transaction from signer's
// account. The expiry is absolute.
func SignTokenUpdate(signer Signer, nonce uint64, expiry time.Time, tokenID string, ops Operations) (*SignedTransaction, error) {
	encoded, err := ops.Encode()
	if err != nil {
		return nil, err
	}
	payload, err := TokenUpdatePayload(tokenID, encoded)
	if err != nil {
		return nil, err
	}
	return SignPayload(signer, nonce, expiry, payload, len(ops))
}

// SignPayload signs an already serialized payload.
func SignPayload(signer Signer, nonce uint64, expiry time.Time, payload []byte, opCount int) (*SignedTransaction, error) {
	header := TransactionHeader{
		Sender:      signer.Address(),
		Nonce:       nonce,
		Energy:      EstimateEnergy(signer.KeyCount(), len(payload), opCount),
		PayloadSize: uint32(len(payload)),
		Expiry:      uint64(expiry.Unix()),
	}

	sigs, err := signer.Sign(SigningDigest(header, payload))
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	if sigs.count() == 0 {
		return nil, fmt.Errorf("sign transaction: signer produced no signatures")
	}

	return &SignedTransaction{Header: header, Payload: payload, Signatures: sigs}, nil
}

// SigningDigest is the hash the account keys sign.
func SigningDigest(header TransactionHeader, payload []byte) []byte {
	h := sha256.New()
	h.Write(header.serialize())
	h.Write(payload)
	return h.Sum(nil)
}

// BlockItem serializes the transaction for submission to the node.
func (tx *SignedTransaction) BlockItem() []byte {
	out := []byte{blockItemAccountTx}
	out = append(out, tx.Signatures.serialize()...)
	out = append(out, tx.Header.serialize()...)
	out = append(out, tx.Payload...)
	return out
}

// Hash is the transaction hash the node reports for this block item.
func (tx *SignedTransaction) Hash() string {
	sum := sha256.Sum256(tx.BlockItem())
	return hex.EncodeToString(sum[:])
}

func sortedKeys[V any](m map[uint8]V) []uint8 {
	keys := make([]uint8, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
