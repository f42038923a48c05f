// Package shamir implements the sharing and recovery engines: splitting a
// secret byte string into n threshold shares over GF(2^8), and reconstructing
// it from any t of them via Lagrange interpolation at x=0.
package shamir

import (
	"io"
	"strconv"

	"github.com/coldshard/coldshard/internal/coefficient"
	"github.com/coldshard/coldshard/internal/commitment"
	"github.com/coldshard/coldshard/internal/gf256"
	"github.com/coldshard/coldshard/internal/mnemonic"
	"github.com/coldshard/coldshard/internal/secure"
	"github.com/coldshard/coldshard/pkg/errs"
)

// Mode selects where a sharing session's non-constant polynomial
// coefficients come from.
type Mode int

const (
	// ModeRandom draws coefficients from a cryptographically secure source.
	ModeRandom Mode = iota
	// ModeDeterministic derives coefficients from the secret, threshold,
	// index, and session-id via the coefficient deriver, so the same
	// inputs always reproduce the same shares.
	ModeDeterministic
)

var allowedSecretLengths = map[int]bool{16: true, 20: true, 24: true, 28: true, 32: true}

// Share is one (index, value) pair produced by Split.
type Share struct {
	Index int
	Value []byte
}

// Words returns the share's value re-encoded as a mnemonic phrase.
func (s Share) Words() ([]string, error) {
	return mnemonic.Encode(s.Value)
}

// SplitParams configures a sharing invocation.
type SplitParams struct {
	Secret    []byte
	N         int
	T         int
	Mode      Mode
	SessionID string
	// Rand is the randomness source used in ModeRandom; defaults to
	// crypto/rand via internal/secure.Reader when nil. Passed explicitly so
	// tests can inject a deterministic source instead of reading a package
	// global.
	Rand io.Reader
}

// Split produces n shares of secret under threshold t. Shares are returned
// with indices 1..n in order. After generation, Split reconstructs the
// secret from at least one t-subset of the result and returns
// ErrInternalFailure if reconstruction disagrees — a condition that should
// never occur and indicates a bug in the field or coefficient code.
func Split(p SplitParams) ([]Share, error) {
	b := len(p.Secret)
	if !allowedSecretLengths[b] {
		return nil, errs.WithDetails(errs.ErrInvalidSize, map[string]string{"bytes": strconv.Itoa(b)})
	}
	if p.N < 1 || p.N > 255 {
		return nil, errs.WithDetails(errs.ErrInvalidParameters, map[string]string{"n": strconv.Itoa(p.N)})
	}
	if p.T < 1 || p.T > p.N {
		return nil, errs.WithDetails(errs.ErrInvalidParameters, map[string]string{"t": strconv.Itoa(p.T), "n": strconv.Itoa(p.N)})
	}

	rand := p.Rand
	if rand == nil {
		rand = secure.Reader
	}

	// coeffs[j] is the b-byte coefficient row c_j, for j in 1..t-1.
	// coeffs[0] is the secret itself, the constant term.
	coeffs := make([][]byte, p.T)
	coeffs[0] = p.Secret
	for j := 1; j < p.T; j++ {
		switch p.Mode {
		case ModeDeterministic:
			coeffs[j] = coefficient.Derive(p.Secret, byte(p.T), byte(j), p.SessionID)
		default:
			row := make([]byte, b)
			if _, err := io.ReadFull(rand, row); err != nil {
				return nil, errs.Wrap(errs.ErrInternalFailure, err)
			}
			coeffs[j] = row
		}
	}

	shares := evaluateAll(coeffs, p.N, b)

	if err := selfTest(shares, p.T, p.Secret); err != nil {
		return nil, err
	}
	return shares, nil
}

// evaluateAll evaluates every byte position's polynomial at x=1..n using
// Horner's rule, returning one Share per x.
func evaluateAll(coeffs [][]byte, n, b int) []Share {
	shares := make([]Share, n)
	for i := 1; i <= n; i++ {
		x := byte(i)
		value := make([]byte, b)
		for k := 0; k < b; k++ {
			value[k] = horner(coeffs, k, x)
		}
		shares[i-1] = Share{Index: i, Value: value}
	}
	return shares
}

// horner evaluates the degree-(len(coeffs)-1) polynomial for byte position k
// at field point x, highest-degree coefficient first.
func horner(coeffs [][]byte, k int, x byte) byte {
	var acc byte
	for j := len(coeffs) - 1; j >= 0; j-- {
		acc = gf256.Add(gf256.Mul(acc, x), coeffs[j][k])
	}
	return acc
}

// selfTest reconstructs secret from the first t shares (and, for small n,
// every other t-subset) and fails closed if any disagree.
func selfTest(shares []Share, t int, secret []byte) error {
	check := func(subset []Share) error {
		got, err := combineUnchecked(subset)
		if err != nil {
			return errs.Wrap(errs.ErrInternalFailure, err)
		}
		if !bytesEqual(got, secret) {
			return errs.ErrInternalFailure
		}
		return nil
	}

	if err := check(shares[:t]); err != nil {
		return err
	}

	// For small n, afford checking every other t-subset too.
	if len(shares) <= 8 {
		for _, subset := range subsetsOfSize(shares, t) {
			if err := check(subset); err != nil {
				return err
			}
		}
	}
	return nil
}

func subsetsOfSize(shares []Share, t int) [][]Share {
	var out [][]Share
	n := len(shares)
	indices := make([]int, t)
	for i := range indices {
		indices[i] = i
	}
	for {
		subset := make([]Share, t)
		for i, idx := range indices {
			subset[i] = shares[idx]
		}
		out = append(out, subset)

		i := t - 1
		for i >= 0 && indices[i] == n-t+i {
			i--
		}
		if i < 0 {
			break
		}
		indices[i]++
		for j := i + 1; j < t; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
	return out
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RecoverParams configures a recovery invocation.
type RecoverParams struct {
	Shares []Share
	// Commitments, if non-nil, must contain one hex commitment per share in
	// Shares (matched by slice position) and each is verified before
	// reconstruction.
	Commitments []string
	// Threshold, if non-zero, is the expected t; fewer shares than
	// Threshold is rejected as ErrInsufficientShares.
	Threshold int
	// AllowUnknownThreshold permits reconstruction with Threshold unset,
	// reproducing the historical behavior of silently combining whatever
	// shares are supplied.
	AllowUnknownThreshold bool
}

// Combine reconstructs the secret from a set of shares, running every
// precondition check in a fixed order before any field arithmetic.
func Combine(p RecoverParams) ([]byte, error) {
	if err := checkPreconditions(p); err != nil {
		return nil, err
	}
	return combineUnchecked(p.Shares)
}

func checkPreconditions(p RecoverParams) error {
	seen := make(map[int]bool, len(p.Shares))
	var length int
	for i, s := range p.Shares {
		if s.Index < 1 || s.Index > 255 {
			return errs.WithDetails(errs.ErrInvalidShareIndex, map[string]string{"index": strconv.Itoa(s.Index)})
		}
		if seen[s.Index] {
			return errs.WithDetails(errs.ErrDuplicateShareIndex, map[string]string{"index": strconv.Itoa(s.Index)})
		}
		seen[s.Index] = true

		if i == 0 {
			length = len(s.Value)
			if !allowedSecretLengths[length] {
				return errs.WithDetails(errs.ErrInvalidSize, map[string]string{"bytes": strconv.Itoa(length)})
			}
		} else if len(s.Value) != length {
			return errs.ErrInconsistentShareLengths
		}
	}

	if p.Threshold > 0 {
		if len(p.Shares) < p.Threshold {
			return errs.WithDetails(errs.ErrInsufficientShares, map[string]string{
				"have": strconv.Itoa(len(p.Shares)), "need": strconv.Itoa(p.Threshold),
			})
		}
	} else if !p.AllowUnknownThreshold {
		return errs.WithDetails(errs.ErrInsufficientShares, map[string]string{
			"reason": "threshold not supplied; set AllowUnknownThreshold to proceed anyway",
		})
	}

	if p.Commitments != nil {
		if len(p.Commitments) != len(p.Shares) {
			return errs.ErrCommitmentMismatch
		}
		for i, s := range p.Shares {
			words, err := mnemonic.Encode(s.Value)
			if err != nil {
				return err
			}
			if !commitment.Verify(p.Commitments[i], s.Index, words) {
				return errs.WithDetails(errs.ErrCommitmentMismatch, map[string]string{"index": strconv.Itoa(s.Index)})
			}
		}
	}
	return nil
}

// combineUnchecked performs Lagrange interpolation at x=0 without running
// precondition checks, reused by selfTest (which starts from shares already
// known to be well-formed).
func combineUnchecked(shares []Share) ([]byte, error) {
	t := len(shares)
	b := len(shares[0].Value)

	// L[j] = Π_{m != j} x_m * (x_m - x_j)^-1, computed once and reused
	// across every byte position.
	lagrange := make([]byte, t)
	for j := 0; j < t; j++ {
		xj := byte(shares[j].Index)
		l := byte(1)
		for m := 0; m < t; m++ {
			if m == j {
				continue
			}
			xm := byte(shares[m].Index)
			diff := gf256.Sub(xm, xj)
			l = gf256.Mul(l, gf256.Div(xm, diff))
		}
		lagrange[j] = l
	}

	secret := make([]byte, b)
	for k := 0; k < b; k++ {
		var acc byte
		for j := 0; j < t; j++ {
			acc = gf256.Add(acc, gf256.Mul(shares[j].Value[k], lagrange[j]))
		}
		secret[k] = acc
	}
	return secret, nil
}
