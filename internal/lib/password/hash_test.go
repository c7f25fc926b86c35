package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqr-labs/halal-catalog/internal/lib/password"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := password.GetHash("secret-password")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret-password", hash)

	assert.NoError(t, password.CompareHash(hash, "secret-password"))
	assert.Error(t, password.CompareHash(hash, "wrong-password"))
}

func TestGetHash_DifferentSalts(t *testing.T) {
	first, err := password.GetHash("secret-password")
	require.NoError(t, err)
	second, err := password.GetHash("secret-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
