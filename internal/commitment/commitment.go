// Package commitment computes and verifies the public fingerprint a share
// holder can publish to prove which share they hold without revealing its
// words: the SHA-256 digest of the share's index and mnemonic text.
package commitment

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"strings"
)

// Compute returns the hex-encoded commitment for a share at the given index
// holding the given mnemonic words: SHA-256("{index}: {word1} {word2} ...").
func Compute(index int, words []string) string {
	sum := sha256.Sum256([]byte(message(index, words)))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the supplied hex-encoded commitment matches the
// commitment recomputed from index and words, using a constant-time
// comparison so a caller checking many candidate commitments does not leak
// which byte first differed.
func Verify(commitment string, index int, words []string) bool {
	want, err := hex.DecodeString(Compute(index, words))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(commitment)
	if err != nil {
		return false
	}
	if len(want) != len(got) {
		return false
	}
	return subtle.ConstantTimeCompare(want, got) == 1
}

func message(index int, words []string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(index))
	b.WriteString(": ")
	b.WriteString(strings.Join(words, " "))
	return b.String()
}
