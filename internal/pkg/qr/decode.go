package qr

import (
	"bytes"
	"image"
	"log"

	_ "image/jpeg"
	_ "image/png"

	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
	"github.com/liyue201/goqr"
	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

// Decoder extracts a text payload from a raster image.
// Implementations return an empty string together with an error when the
// image carries no payload they can read.
type Decoder interface {
	Decode(img image.Image) (string, error)
}

// zxingDecoder wraps gozxing's multi-format reader. It is tried first:
// the TRY_HARDER hint makes it the more robust path for rotated or
// poorly lit photos, and the general reader accepts any symbology a
// submitted proof photo might carry.
type zxingDecoder struct{}

func (zxingDecoder) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}
	reader := zxqrcode.NewQRCodeReader()
	result, err := reader.Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		return "", err
	}
	return result.GetText(), nil
}

// goqrDecoder wraps the quirc-derived goqr detector, used as the fallback
// when the zxing path decodes nothing.
type goqrDecoder struct{}

func (goqrDecoder) Decode(img image.Image) (string, error) {
	codes, err := goqr.Recognize(img)
	if err != nil {
		return "", err
	}
	for _, code := range codes {
		if len(code.Payload) > 0 {
			return string(code.Payload), nil
		}
	}
	return "", domain.ErrNoProofFound
}

// Verifier decodes uploaded proof images using an ordered list of decoder
// strategies. No single library is reliable across all real-world camera
// submissions, so each strategy is tried in turn until one yields a
// non-empty payload.
type Verifier struct {
	decoders []Decoder
}

// NewVerifier creates a verifier with the default decoder chain
func NewVerifier() *Verifier {
	return &Verifier{decoders: []Decoder{zxingDecoder{}, goqrDecoder{}}}
}

// Extract decodes raw image bytes and returns the embedded identifier.
// Returns domain.ErrInvalidImage when the bytes cannot be parsed as a
// raster at all, and domain.ErrNoProofFound when the image parses but no
// decoder finds a payload.
func (v *Verifier) Extract(imageBytes []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		log.Printf("⚠️ Proof image unreadable (%d bytes): %v", len(imageBytes), err)
		return "", domain.ErrInvalidImage
	}

	for _, dec := range v.decoders {
		payload, err := dec.Decode(img)
		if err != nil {
			continue
		}
		if payload != "" {
			return payload, nil
		}
	}

	log.Printf("⚠️ No QR payload found in proof image (%d bytes)", len(imageBytes))
	return "", domain.ErrNoProofFound
}
