package services

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rejectingVerifier struct{}

func (rejectingVerifier) Verify(ctx context.Context, statement, presentation json.RawMessage) (bool, error) {
	return false, nil
}

func TestAge18Statement(t *testing.T) {
	ps := NewProofService(testLogger(), NewAcceptAllVerifier(testLogger()))
	ps.now = func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }

	statement := ps.Age18Statement()
	require.Len(t, statement, 1)
	assert.Equal(t, "cred", statement[0].IdQualifier.Type)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, statement[0].IdQualifier.Issuers)

	require.Len(t, statement[0].Statement, 1)
	atomic := statement[0].Statement[0]
	assert.Equal(t, "AttributeInRange", atomic.Type)
	assert.Equal(t, "dob", atomic.AttributeTag)
	assert.Equal(t, "18000101", atomic.Lower)
	assert.Equal(t, "20080229", atomic.Upper)
}

func TestUKStatement(t *testing.T) {
	ps := NewProofService(testLogger(), NewAcceptAllVerifier(testLogger()))

	raw, err := json.Marshal(ps.UKStatement())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"AttributeInSet","attributeTag":"nationality","set":["GB","uk"]}]`, string(raw))
}

func TestChallenge(t *testing.T) {
	ps := NewProofService(testLogger(), NewAcceptAllVerifier(testLogger()))

	a, err := ps.Challenge()
	require.NoError(t, err)
	b, err := ps.Challenge()
	require.NoError(t, err)

	raw, err := hex.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.NotEqual(t, a, b)
}

func TestVerifierIsPluggable(t *testing.T) {
	ctx := context.Background()
	statement := json.RawMessage(`[]`)
	presentation := json.RawMessage(`{}`)

	ok, err := NewProofService(testLogger(), NewAcceptAllVerifier(testLogger())).Verify(ctx, statement, presentation)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NewProofService(testLogger(), rejectingVerifier{}).Verify(ctx, statement, presentation)
	require.NoError(t, err)
	assert.False(t, ok)
}
