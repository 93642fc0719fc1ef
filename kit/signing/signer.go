package signing

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"hash"
)

var (
	ErrMissingSignature = errors.New("signing: missing signature")
	ErrInvalidSignature = errors.New("signing: invalid signature")
)

type Algo string

const (
	// AlgoMD5 is the processor's wire format: md5(base64(canonical) + secret).
	AlgoMD5 Algo = "md5"
	// AlgoHMACSHA256 keys SHA-256 with the secret over base64(canonical).
	AlgoHMACSHA256 Algo = "hmac-sha256"
)

// SignField is the out-of-band field carrying the digest. It is never part
// of the bytes it signs.
const SignField = "sign"

// Signer computes and verifies keyed digests over canonicalized payloads.
// Canonical form is compact JSON with lexicographically ordered keys; both
// the outbound request path and the inbound callback path must go through
// the same Signer or verification breaks on key order alone.
type Signer struct {
	Secret string
	Algo   Algo
}

func New(secret string) Signer {
	return Signer{Secret: secret, Algo: AlgoMD5}
}

// Sign canonicalizes payload and returns the lowercase hex digest of
// base64(canonical) + secret. Maps serialize with sorted keys; structs
// serialize in declaration order, which is stable per type.
func (s Signer) Sign(payload any) (string, error) {
	b, err := Canonicalize(payload)
	if err != nil {
		return "", err
	}
	encoded := base64.StdEncoding.EncodeToString(b)

	var h hash.Hash
	switch s.Algo {
	case AlgoHMACSHA256:
		h = hmac.New(sha256.New, []byte(s.Secret))
		h.Write([]byte(encoded))
	default:
		h = md5.New()
		h.Write([]byte(encoded))
		h.Write([]byte(s.Secret))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify recomputes the digest over fields and compares it to sign. The
// sign field itself is dropped from fields before canonicalization.
func (s Signer) Verify(fields map[string]json.RawMessage, sign string) error {
	if sign == "" {
		return ErrMissingSignature
	}
	stripped := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		if k == SignField {
			continue
		}
		stripped[k] = v
	}
	expected, err := s.Sign(stripped)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(sign)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

// Canonicalize renders payload as compact JSON. encoding/json sorts map
// keys, and map[string]json.RawMessage values pass through byte-for-byte,
// so a decoded callback body re-serializes without numeric re-rendering.
func Canonicalize(payload any) ([]byte, error) {
	return json.Marshal(payload)
}
