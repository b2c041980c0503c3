package transparent

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
)

// SignatureLength is the length of a hex encoded HMAC-SHA1 digest.
const SignatureLength = sha1.Size * 2

// Sign returns the lower-case hex HMAC-SHA1 of message. The HMAC key is the
// raw SHA-1 digest of secret, which is how the billing provider derives it.
//
// SHA-1 is kept for interoperability with the provider only and must not be
// reused for new schemes.
func Sign(secret []byte, message string) (string, error) {
	if len(secret) == 0 {
		return "", newError("Sign", ErrMissingPrivateKey, "")
	}
	key := sha1.Sum(secret)
	h := hmac.New(sha1.New, key[:])
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify reports whether signature is the signature of message under secret.
func Verify(secret []byte, message, signature string) (bool, error) {
	expected, err := Sign(secret, message)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(expected), []byte(signature)), nil
}
