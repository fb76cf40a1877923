package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode returns n characters from an unambiguous A-Z/2-9 alphabet.
// crypto/rand + rand.Int avoids modulo bias.
func GenerateCode(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(codeCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeCharset[num.Int64()])
	}
	return sb.String(), nil
}

// FormatCode turns "AB4D93KF" into "AB4D-93KF".
func FormatCode(raw string) (string, error) {
	raw = NormalizeCode(raw)
	if len(raw) != 8 {
		return "", errors.New("raw must be length 8")
	}
	return raw[:4] + "-" + raw[4:], nil
}

// NormalizeCode upper-cases and strips everything but A-Z and 0-9.
func NormalizeCode(code string) string {
	s := strings.ToUpper(strings.TrimSpace(code))
	var sb strings.Builder
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// GenerateReferenceCode builds a reservation reference such as "RSV-AB4D-93KF".
func GenerateReferenceCode() (string, error) {
	raw, err := GenerateCode(8)
	if err != nil {
		return "", err
	}
	formatted, err := FormatCode(raw)
	if err != nil {
		return "", err
	}
	return "RSV-" + formatted, nil
}
