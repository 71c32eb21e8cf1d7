// Package codec converts between the dense integer identifiers (vnums)
// used by the game data files and the compact base-52 alphabetic codes
// shown on the wiki.
package codec

import (
	"fmt"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Base is the size of the code alphabet.
const Base = len(alphabet)

// Encode converts a non-negative vnum into its wiki code. The code is a
// positional base-52 numeral with the least significant digit first;
// zero encodes as "a" because the wiki format does not allow an empty
// code field. Encode panics on negative input.
func Encode(n int) string {
	if n < 0 {
		panic(fmt.Sprintf("codec: negative vnum %d", n))
	}
	if n == 0 {
		return "a"
	}

	var b strings.Builder
	for n > 0 {
		b.WriteByte(alphabet[n%Base])
		n /= Base
	}
	return b.String()
}

// Decode converts a wiki code back into its vnum. It is the exact
// inverse of Encode for every non-negative integer.
func Decode(code string) (int, error) {
	if code == "" {
		return 0, fmt.Errorf("codec: empty code")
	}

	n := 0
	weight := 1
	for _, r := range code {
		digit := strings.IndexRune(alphabet, r)
		if digit < 0 {
			return 0, fmt.Errorf("codec: invalid symbol %q in code %q", r, code)
		}
		n += digit * weight
		weight *= Base
	}
	return n, nil
}
