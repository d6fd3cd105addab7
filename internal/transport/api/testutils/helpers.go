package testutils

import "strings"

const fourByteRune = "😁"

// GenerateOverBytesUnderRunes строка из count рун по 4 байта. Длина в байтах всегда больше длины в рунах,
// что нужно для проверки max_bytes.
func GenerateOverBytesUnderRunes(count int) string {
	return strings.Repeat(fourByteRune, count)
}
