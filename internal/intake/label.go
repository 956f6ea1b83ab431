package intake

import (
	"fmt"

	"delivery-route-sequencer/internal/domain"

	"github.com/skip2/go-qrcode"
)

const DefaultLabelSize = 256

// Label renders the order's QR payload as a PNG image.
func Label(o *domain.Order, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultLabelSize
	}

	payload, err := EncodePayload(o)
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("label: generate QR code: %w", err)
	}
	return png, nil
}
