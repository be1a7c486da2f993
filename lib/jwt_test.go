package lib_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Arihaan/ZKShop/lib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := lib.GenerateAdminToken("operator", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := lib.ParseAdminToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Sub)
	assert.True(t, claims.Exp.After(time.Now()))
}

func TestAdminTokenRejections(t *testing.T) {
	_, err := lib.GenerateAdminToken("operator", "", time.Hour)
	assert.Error(t, err)

	token, err := lib.GenerateAdminToken("operator", "s3cret", time.Hour)
	require.NoError(t, err)
	_, err = lib.ParseAdminToken(token, "other")
	assert.ErrorIs(t, err, lib.ErrInvalidToken)

	expired, err := lib.GenerateAdminToken("operator", "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = lib.ParseAdminToken(expired, "s3cret")
	assert.ErrorIs(t, err, lib.ErrExpiredToken)
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("POST", "/plt/transfer", nil)
	_, err := lib.BearerToken(r)
	assert.ErrorIs(t, err, lib.ErrInvalidToken)

	r.Header.Set("Authorization", "Bearer abc.def")
	token, err := lib.BearerToken(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)
}
