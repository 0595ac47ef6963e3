package notification

import (
	"errors"
	"fmt"

	ticketingapp "github.com/eventpass/backend/internal/application/ticketing"
	qrcode "github.com/skip2/go-qrcode"
)

// Ensure QRCodeService implements QRCodeGenerator
var _ ticketingapp.QRCodeGenerator = (*QRCodeService)(nil)

const qrCodeSize = 256

// QRCodeService renders ticket payloads as PNG QR codes.
type QRCodeService struct{}

// NewQRCodeService creates a new QRCodeService
func NewQRCodeService() *QRCodeService {
	return &QRCodeService{}
}

// GeneratePNG encodes the payload into a PNG image.
// Medium error correction keeps codes scannable on phone screens.
func (s *QRCodeService) GeneratePNG(payload string) ([]byte, error) {
	if payload == "" {
		return nil, errors.New("payload is empty")
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, qrCodeSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}
