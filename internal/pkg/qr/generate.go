package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// ImageSize is the edge length in pixels of generated proof images
const ImageSize = 256

// Generate encodes an identifier into a QR code PNG.
// Medium error correction and the standard 4-module quiet border keep the
// code scannable from phone-camera photos of printed or on-screen proofs.
func Generate(id string) ([]byte, error) {
	return qrcode.Encode(id, qrcode.Medium, ImageSize)
}

// GenerateDataURI encodes an identifier into a QR code PNG wrapped in a
// data URI, so callers can embed the proof directly without file storage.
func GenerateDataURI(id string) (string, error) {
	png, err := Generate(id)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
