package validation

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DigitSource yields one decimal digit (0-9) per call.
type DigitSource interface {
	Digit() (int, error)
}

// CryptoDigits draws digits from crypto/rand. Safe for concurrent use.
type CryptoDigits struct{}

var ten = big.NewInt(10)

func (CryptoDigits) Digit() (int, error) {
	n, err := rand.Int(rand.Reader, ten)
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

type OTPGenerator struct {
	src DigitSource
}

func NewOTPGenerator(src DigitSource) *OTPGenerator {
	if src == nil {
		src = CryptoDigits{}
	}
	return &OTPGenerator{src: src}
}

// Generate returns length independently drawn digits.
func (g *OTPGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", newError(KindInvalidLength, "code length must be positive")
	}
	code := make([]byte, length)
	for i := range code {
		d, err := g.src.Digit()
		if err != nil {
			return "", fmt.Errorf("otp digit: %w", err)
		}
		if d < 0 || d > 9 {
			return "", fmt.Errorf("otp digit out of range: %d", d)
		}
		code[i] = byte('0' + d)
	}
	return string(code), nil
}

var defaultOTP = NewOTPGenerator(nil)

// GenerateOTP uses the crypto/rand generator.
func GenerateOTP(length int) (string, error) {
	return defaultOTP.Generate(length)
}

// OTP checks that a submitted code is exactly length digits.
func OTP(code string, length int) error {
	if code == "" {
		return newError(KindRequired, "Code is required")
	}
	if len(code) != length {
		return newError(KindInvalidLength, fmt.Sprintf("Code must be %d digits", length))
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return newError(KindInvalidFormat, "Code must contain only digits")
		}
	}
	return nil
}
