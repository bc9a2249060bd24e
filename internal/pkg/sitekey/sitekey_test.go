//go:build unit

package sitekey_test

import (
	"testing"

	"rental-booking/internal/pkg/sitekey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier(t *testing.T) {
	hash, err := sitekey.Hash("public-site")
	require.NoError(t, err)
	v := sitekey.NewVerifier(hash)

	assert.NoError(t, v.Verify("public-site"))
	assert.ErrorIs(t, v.Verify("other"), sitekey.ErrKeyMismatch)
	assert.ErrorIs(t, v.Verify(""), sitekey.ErrInvalidKey)
	assert.ErrorIs(t, sitekey.NewVerifier("").Verify("public-site"), sitekey.ErrInvalidKey)

	_, err = sitekey.Hash("")
	assert.ErrorIs(t, err, sitekey.ErrInvalidKey)
}
