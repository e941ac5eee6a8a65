package util

import (
	"encoding/base64"
	"strings"
)

// SniffImageMime detects the MIME type from magic bytes. Defaults to JPEG,
// which is what camera uploads overwhelmingly are.
func SniffImageMime(b []byte) string {
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return "image/png"
	}
	// RIFF....WEBP
	if len(b) >= 12 && string(b[0:4]) == "RIFF" && string(b[8:12]) == "WEBP" {
		return "image/webp"
	}
	return "image/jpeg"
}

// MakeImageDataURL encodes image bytes as a base64 data URL for embedding in
// a vision request.
func MakeImageDataURL(image []byte) string {
	return "data:" + SniffImageMime(image) + ";base64," + base64.StdEncoding.EncodeToString(image)
}

// StripDataURL removes a leading data:...;base64, prefix if present.
func StripDataURL(b64 string) string {
	s := strings.TrimSpace(b64)
	if i := strings.Index(s, ","); i != -1 && strings.HasPrefix(strings.ToLower(s[:i]), "data:") {
		return s[i+1:]
	}
	return s
}
