package plt

import (
	"context"
	"fmt"
	"time"
)

// SubmitTokenUpdate signs a TokenUpdate carrying the already encoded
// operation list with the signer's next nonce and sends it to the node. It
// returns the transaction hash.
func SubmitTokenUpdate(ctx context.Context, node Node, signer Signer, tokenID string, operations []byte, opCount int) (string, error) {
	payload, err := TokenUpdatePayload(tokenID, operations)
	if err != nil {
		return "", err
	}

	nonce, err := node.GetNextSequenceNumber(ctx, signer.Address())
	if err != nil {
		return "", err
	}

	tx, err := SignPayload(signer, nonce, time.Now().Add(DefaultExpiry), payload, opCount)
	if err != nil {
		return "", err
	}

	hash, err := node.SendBlockItem(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("submit token update: %w", err)
	}
	return hash, nil
}
