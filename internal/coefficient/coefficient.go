// Package coefficient derives reproducible polynomial coefficient rows for
// deterministic sharing sessions: the same (secret, threshold, index,
// session-id) always produces the same row, so a sharing session can be
// replayed byte-for-byte without storing the coefficients themselves.
package coefficient

import (
	"crypto/hmac"
	"crypto/sha256"
)

// label provides domain separation for the keyed hash: it ensures a
// coefficient derived here can never collide with an HMAC computed for an
// unrelated purpose over the same secret.
const label = "secret-sharing-coefficient"

// Derive returns the b-byte coefficient row c_j, where b is len(secret).
//
// It equals the first b bytes of HMAC-SHA256(key=secret, message=L‖[t]‖[j]‖U),
// where L is the fixed label, t and j are single bytes, and U is the UTF-8
// bytes of sessionID (an empty string for "no session"). Using the secret as
// the HMAC key means an observer who does not know the secret cannot predict
// the coefficients even if they know t, j, and the session id.
func Derive(secret []byte, t, j byte, sessionID string) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(label))
	mac.Write([]byte{t, j})
	mac.Write([]byte(sessionID))
	sum := mac.Sum(nil)
	return sum[:len(secret)]
}
