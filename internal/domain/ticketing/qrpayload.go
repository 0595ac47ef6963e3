package ticketing

import (
	"strings"

	"github.com/eventpass/backend/internal/domain/shared"
)

// QRPayload builds the string encoded into a ticket's QR code.
// The format is "<passcode>-<event title>". Passcodes never contain a
// hyphen, so the first hyphen is always the separator even when the event
// title contains hyphens itself.
func QRPayload(passcode, eventTitle string) string {
	return passcode + "-" + eventTitle
}

// ParseQRPayload splits a scanned payload back into passcode and event
// title at the first hyphen.
func ParseQRPayload(payload string) (passcode, eventTitle string, err error) {
	idx := strings.Index(payload, "-")
	if idx <= 0 || idx == len(payload)-1 {
		return "", "", shared.ErrInvalidPasscode
	}
	return payload[:idx], payload[idx+1:], nil
}
