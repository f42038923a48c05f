// Package entropy turns hex digits, dice rolls, playing-card draws, or raw
// word indices into a bit string of one of the allowed mnemonic lengths
// (128, 160, 192, 224, 256 bits), the payload the mnemonic codec encodes.
package entropy

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/coldshard/coldshard/pkg/errs"
)

// allowedBits lists the bit lengths a mnemonic payload may have, largest
// first so reduce can pick the largest one not exceeding the input.
var allowedBits = []int{256, 224, 192, 160, 128}

// Source produces a raw entropy bit string from one input format. Each
// implementation parses its own token syntax and accumulates a big-endian
// unsigned integer of some derived bit length, which Bits then reduces to
// one of the allowed mnemonic lengths.
type Source interface {
	// Bits returns the raw byte payload, already reduced to an allowed length.
	Bits() ([]byte, error)
}

// Hex decodes a hex string into bits: one hex digit contributes 4 bits.
// Whitespace and the separators '-' and ':' are stripped before parsing.
type Hex struct {
	Input string
}

func (h Hex) Bits() ([]byte, error) {
	cleaned := strip(h.Input)
	if cleaned == "" {
		return nil, errs.ErrInsufficientEntropy
	}
	n := new(big.Int)
	for _, r := range cleaned {
		v, ok := hexDigit(r)
		if !ok {
			return nil, errs.WithDetails(errs.ErrInvalidEntropyInput, map[string]string{"char": string(r)})
		}
		n.Lsh(n, 4)
		n.Or(n, big.NewInt(int64(v)))
	}
	return reduce(n, len(cleaned)*4)
}

// Dice accumulates a sequence of 1..6 rolls into N = Σ d_i·6^(k-1-i),
// the Ian Coleman convention, then reduces to the allowed bit length whose
// power of two best covers 6^k. Separators and whitespace are stripped.
type Dice struct {
	Input string
}

func (d Dice) Bits() ([]byte, error) {
	cleaned := strip(d.Input)
	if cleaned == "" {
		return nil, errs.ErrInsufficientEntropy
	}
	n := new(big.Int)
	six := big.NewInt(6)
	for _, r := range cleaned {
		if r < '1' || r > '6' {
			return nil, errs.WithDetails(errs.ErrInvalidEntropyInput, map[string]string{"char": string(r)})
		}
		n.Mul(n, six)
		n.Add(n, big.NewInt(int64(r-'0')))
	}

	// L = floor(k * log2(6)), the bit length of the range [0, 6^k).
	total := new(big.Int).Exp(six, big.NewInt(int64(len(cleaned))), nil)
	bitLen := total.BitLen() - 1
	return reduce(n, bitLen)
}

// Cards interprets a sequence of two-character tokens (rank + suit) as a
// drawing without replacement from a standard 52-card deck.
type Cards struct {
	Input string
}

var ranks = "A23456789TJQK"
var suits = "CDHS"

func (c Cards) Bits() ([]byte, error) {
	fields := strings.Fields(c.Input)
	if len(fields) == 0 {
		return nil, errs.ErrInsufficientEntropy
	}

	remaining := make([]int, 52)
	for i := range remaining {
		remaining[i] = i
	}

	n := new(big.Int)
	multiplier := big.NewInt(1)
	deckSize := big.NewInt(52)

	for i, tok := range fields {
		card, err := cardValue(tok)
		if err != nil {
			return nil, err
		}
		pos := indexOf(remaining, card)
		if pos < 0 {
			return nil, errs.WithDetails(errs.ErrInvalidEntropyInput, map[string]string{"card": tok})
		}
		remaining = append(remaining[:pos], remaining[pos+1:]...)

		n.Add(n, new(big.Int).Mul(big.NewInt(int64(pos)), multiplier))
		multiplier.Mul(multiplier, new(big.Int).Sub(deckSize, big.NewInt(int64(i))))
	}

	bitLen := multiplier.BitLen() - 1
	return reduce(n, bitLen)
}

func cardValue(tok string) (int, error) {
	if len(tok) != 2 {
		return 0, errs.WithDetails(errs.ErrInvalidEntropyInput, map[string]string{"card": tok})
	}
	r := strings.IndexByte(ranks, byte(strings.ToUpper(tok[:1])[0]))
	s := strings.IndexByte(suits, byte(strings.ToUpper(tok[1:])[0]))
	if r < 0 || s < 0 {
		return 0, errs.WithDetails(errs.ErrInvalidEntropyInput, map[string]string{"card": tok})
	}
	return r*len(suits) + s, nil
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

// Indices encodes a list of integers in 0..2047, 11 bits each, big-endian.
// When the 11-bit groups carry more bits than an allowed length, the leading
// bits are kept: the trailing bits of a phrase's word indices are its checksum.
type Indices struct {
	Values []int
}

func (idx Indices) Bits() ([]byte, error) {
	if len(idx.Values) == 0 {
		return nil, errs.ErrInsufficientEntropy
	}
	n := new(big.Int)
	for _, v := range idx.Values {
		if v < 0 || v > 2047 {
			return nil, errs.WithDetails(errs.ErrInvalidEntropyInput, map[string]string{"index": strconv.Itoa(v)})
		}
		n.Lsh(n, 11)
		n.Or(n, big.NewInt(int64(v)))
	}
	derived := len(idx.Values) * 11
	for _, b := range allowedBits {
		if derived >= b {
			n.Rsh(n, uint(derived-b))
			return reduce(n, b)
		}
	}
	return nil, errs.ErrInsufficientEntropy
}

// reduce picks the largest allowed bit length not exceeding derivedBits,
// left-trims n to that length (keeping the least-significant bits) whenever
// n carries more bits than that, and returns the result as a byte slice.
func reduce(n *big.Int, derivedBits int) ([]byte, error) {
	target := 0
	for _, b := range allowedBits {
		if derivedBits >= b {
			target = b
			break
		}
	}
	if target == 0 {
		return nil, errs.ErrInsufficientEntropy
	}

	// n may carry more than target bits even when derivedBits == target: for
	// Dice and Cards, derivedBits is floor(log2 of the accumulated range),
	// which can undercount by one bit relative to n's actual value. Always
	// mask down to target before FillBytes, which panics on overflow.
	mask := new(big.Int).Lsh(big.NewInt(1), uint(target))
	mask.Sub(mask, big.NewInt(1))
	n = new(big.Int).And(n, mask)

	out := make([]byte, target/8)
	n.FillBytes(out)
	return out, nil
}

func strip(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '-', ':':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}
