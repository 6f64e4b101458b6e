package qr

import qrcode "github.com/skip2/go-qrcode"

// PNG encodes payloads as QR PNG images.
type PNG struct {
	Size int // pixels, 256 when zero
}

func (p PNG) Encode(payload string) ([]byte, error) {
	size := p.Size
	if size == 0 {
		size = 256
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}
