package qr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateExtractRoundTrip(t *testing.T) {
	ids := []string{
		"REQ-1A2B3C4D",
		"REQ-FFFFFFFF",
		"REQ-00000000",
	}

	verifier := NewVerifier()
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			imageBytes, err := Generate(id)
			require.NoError(t, err)
			require.NotEmpty(t, imageBytes)

			payload, err := verifier.Extract(imageBytes)
			require.NoError(t, err)
			assert.Equal(t, id, payload)
		})
	}
}

func TestGenerateDataURI(t *testing.T) {
	uri, err := GenerateDataURI("REQ-1A2B3C4D")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.Greater(t, len(uri), len("data:image/png;base64,"))
}

func TestExtractInvalidImage(t *testing.T) {
	verifier := NewVerifier()

	_, err := verifier.Extract([]byte("not an image at all"))
	assert.ErrorIs(t, err, domain.ErrInvalidImage)

	_, err = verifier.Extract(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestExtractNoProofFound(t *testing.T) {
	// A valid PNG with no QR code in it
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	_, err := NewVerifier().Extract(buf.Bytes())
	assert.ErrorIs(t, err, domain.ErrNoProofFound)
}
