package ticketing

import (
	"crypto/rand"
	"math/big"
)

// passcodeAlphabet deliberately contains no '-' so that a scanned
// "<passcode>-<title>" payload can always be split on the first hyphen.
const passcodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// PasscodeLength is the length of generated attendee passcodes
const PasscodeLength = 22

// GeneratePasscode generates an opaque random attendee identifier.
// It is generated once at registration time and becomes the check-in
// comparison key embedded in the emailed QR code.
func GeneratePasscode() string {
	buf := make([]byte, PasscodeLength)
	max := big.NewInt(int64(len(passcodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the process has no entropy source;
			// nothing sensible to degrade to
			panic("ticketing: passcode generation failed: " + err.Error())
		}
		buf[i] = passcodeAlphabet[n.Int64()]
	}
	return string(buf)
}
