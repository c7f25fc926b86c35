package qr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arqr-labs/halal-catalog/internal/lib/qr"
)

func TestPNGEncoder_EncodeToImage(t *testing.T) {
	encoder := qr.NewPNGEncoder(256)

	png, err := encoder.EncodeToImage("1700000000000")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// сигнатура PNG
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, png[:8])
}

func TestPNGEncoder_EmptyPayload(t *testing.T) {
	encoder := qr.NewPNGEncoder(256)

	_, err := encoder.EncodeToImage("")
	assert.Error(t, err)
}
