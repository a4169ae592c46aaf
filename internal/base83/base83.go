// Package base83 implements the fixed-width positional numeral encoding
// used by every numeric field of a BlurHash string.
package base83

import (
	"errors"
	"fmt"
)

// Alphabet is the ordered symbol set.  A symbol's index is its digit value.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz#$%*+,-.:;=?@[]^_{|}~"

// ErrInvalidCharacter is returned by Decode for a byte outside Alphabet.
var ErrInvalidCharacter = errors.New("base83: invalid character")

// digitOf maps an ASCII byte to its digit, or -1.  Built at init.
var digitOf [256]int8

func init() {
	for i := range digitOf {
		digitOf[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		digitOf[Alphabet[i]] = int8(i)
	}
}

// Encode writes value as exactly length base-83 digits, most significant
// first.  The caller guarantees 0 <= value < 83^length; higher digits
// are silently dropped otherwise.
func Encode(value, length int) string {
	buf := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		buf[i] = Alphabet[value%83]
		value /= 83
	}
	return string(buf)
}

// Decode evaluates s as a base-83 number.  Every byte must belong to
// Alphabet.
func Decode(s string) (int, error) {
	v := 0
	for i := 0; i < len(s); i++ {
		d := digitOf[s[i]]
		if d < 0 {
			return 0, fmt.Errorf("%w %q at offset %d", ErrInvalidCharacter, s[i], i)
		}
		v = v*83 + int(d)
	}
	return v, nil
}
