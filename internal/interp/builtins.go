package interp

import (
	"encoding/base64"
	"fmt"
	"math/rand/v2"
	"strings"
)

// MaxRandomLength bounds the length of a generated random string.
const MaxRandomLength = 1 << 20

// Random returns a string whose length is uniform in [min, max] and whose
// bytes are drawn uniformly, with replacement, from charset.
func Random(r *rand.Rand, min, max int64, charset string) (string, error) {
	if min < 0 || min > max || max <= 0 {
		return "", fmt.Errorf("rnd(%d, %d): %w", min, max, ErrBadBounds)
	}
	if max > MaxRandomLength {
		return "", fmt.Errorf("rnd(%d, %d): %w", min, max, ErrTooLong)
	}
	if charset == "" {
		return "", ErrEmptyCharset
	}

	n := min + r.Int64N(max-min+1)
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = charset[r.IntN(len(charset))]
	}
	return string(buf), nil
}

// Reverse reverses s byte by byte.
func Reverse(s string) string {
	buf := []byte(s)
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// ToUpper maps ASCII lower-case letters to upper case. Other bytes are
// unchanged.
func ToUpper(s string) string {
	buf := []byte(s)
	for i, c := range buf {
		if 'a' <= c && c <= 'z' {
			buf[i] = c - ('a' - 'A')
		}
	}
	return string(buf)
}

// ToLower maps ASCII upper-case letters to lower case. Other bytes are
// unchanged.
func ToLower(s string) string {
	buf := []byte(s)
	for i, c := range buf {
		if 'A' <= c && c <= 'Z' {
			buf[i] = c + ('a' - 'A')
		}
	}
	return string(buf)
}

// Length returns the byte length of s.
func Length(s string) int {
	return len(s)
}

// Replace replaces every non-overlapping occurrence of target in s, left
// to right. An empty target is an error and s is returned unchanged.
func Replace(s, target, with string) (string, error) {
	if target == "" {
		return s, ErrEmptyTarget
	}
	return strings.ReplaceAll(s, target, with), nil
}

// Encrypt XORs the first min(len(input), len(key)) bytes of input with key
// and returns them in standard base64.
func Encrypt(input, key string) string {
	n := min(len(input), len(key))
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = input[i] ^ key[i]
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// Decrypt inverts Encrypt: it decodes the base64 text and XORs the result
// with key, repeating the key as needed. An empty key yields "".
func Decrypt(cipher, key string) (string, error) {
	buf, err := base64.StdEncoding.DecodeString(cipher)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadCiphertext, err)
	}
	if key == "" {
		return "", nil
	}
	for i := range buf {
		buf[i] ^= key[i%len(key)]
	}
	return string(buf), nil
}
