package mnemonic

import (
	"crypto/sha256"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/coldshard/coldshard/pkg/errs"
)

// whitespaceRegex matches one or more whitespace characters, used to
// normalize arbitrary runs of whitespace between words on decode.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// sizes maps a byte length b to its word count w (b = w*11/33*4).
var sizes = map[int]int{16: 12, 20: 15, 24: 18, 28: 21, 32: 24}

// wordCounts maps a word count back to its byte length, the inverse of sizes.
var wordCounts = map[int]int{12: 16, 15: 20, 18: 24, 21: 28, 24: 32}

var (
	bigOne = big.NewInt(1)
	// elevenBitMask isolates the low 11 bits of a big.Int.
	elevenBitMask = big.NewInt(0x7FF)
)

// ChecksumBits returns the number of checksum bits appended for a secret of
// byteLen bytes: one bit per 32 bits of secret, i.e. byteLen/4 bits.
func ChecksumBits(byteLen int) int {
	return byteLen / 4
}

// Encode converts a raw byte sequence to its mnemonic word form. byteLen
// must be one of {16,20,24,28,32}; any other length is InvalidSize.
func Encode(raw []byte) ([]string, error) {
	w, ok := sizes[len(raw)]
	if !ok {
		return nil, errs.WithDetails(errs.ErrInvalidSize, map[string]string{
			"bytes": strconv.Itoa(len(raw)),
		})
	}

	cs := ChecksumBits(len(raw))
	hash := sha256.Sum256(raw)

	// bits = raw || leading cs bits of SHA-256(raw), as a single big integer
	// with the most significant bit first.
	bits := new(big.Int).SetBytes(raw)
	bits.Lsh(bits, uint(cs))

	checksum := new(big.Int).SetBytes(hash[:])
	checksumShift := uint(256 - cs)
	checksum.Rsh(checksum, checksumShift)
	bits.Or(bits, checksum)

	out := make([]string, w)
	for i := w - 1; i >= 0; i-- {
		idx := new(big.Int).And(bits, elevenBitMask)
		out[i] = At(int(idx.Int64()))
		bits.Rsh(bits, 11)
	}
	return out, nil
}

// EncodeString is Encode joined into a single space-separated phrase.
func EncodeString(raw []byte) (string, error) {
	words, err := Encode(raw)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// Decode parses a mnemonic phrase into its raw byte payload, validating
// every word against the wordlist and the checksum against SHA-256(raw).
//
// Decoding accepts any run of ASCII whitespace between words and trims
// surrounding whitespace; only lowercase ASCII words are recognized, so a
// non-ASCII space character makes its word unrecognized.
func Decode(phrase string) ([]byte, error) {
	normalized := strings.TrimSpace(whitespaceRegex.ReplaceAllString(phrase, " "))
	if normalized == "" {
		return nil, errs.WithDetails(errs.ErrInvalidSize, map[string]string{"words": "0"})
	}
	wordList := strings.Split(normalized, " ")

	b, ok := wordCounts[len(wordList)]
	if !ok {
		return nil, errs.WithDetails(errs.ErrInvalidSize, map[string]string{
			"words": strconv.Itoa(len(wordList)),
		})
	}
	cs := ChecksumBits(b)

	bits := new(big.Int)
	for _, w := range wordList {
		if hasNonASCII(w) {
			return nil, errs.WithDetails(errs.ErrInvalidWordlist, map[string]string{"word": w})
		}
		idx, found := IndexOf(w)
		if !found {
			return nil, errs.WithDetails(errs.ErrInvalidWordlist, map[string]string{"word": w})
		}
		bits.Lsh(bits, 11)
		bits.Or(bits, big.NewInt(int64(idx)))
	}

	checksumMask := new(big.Int).Lsh(bigOne, uint(cs))
	checksumMask.Sub(checksumMask, bigOne)
	claimedChecksum := new(big.Int).And(bits, checksumMask)

	raw := new(big.Int).Rsh(bits, uint(cs)).Bytes()
	raw = padLeft(raw, b)

	hash := sha256.Sum256(raw)
	want := new(big.Int).SetBytes(hash[:])
	want.Rsh(want, uint(256-cs))

	if claimedChecksum.Cmp(want) != 0 {
		return nil, errs.ErrChecksumMismatch
	}
	return raw, nil
}

// padLeft left-pads b with zero bytes until it is exactly n bytes long;
// math/big.Bytes() drops leading zero bytes, which Decode must restore.
func padLeft(b []byte, n int) []byte {
	if len(b) >= n {
		return b[len(b)-n:]
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return false
}
