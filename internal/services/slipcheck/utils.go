package slipcheck

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

func randomNumber() (string, error) {
	min := big.NewInt(100000000000000000)
	max := big.NewInt(999999999999999999)
	n, err := rand.Int(rand.Reader, new(big.Int).Sub(max, min))
	if err != nil {
		return "", err
	}

	n.Add(n, min)
	return n.String(), nil
}

// CompareHash reports whether plain matches the stored bcrypt hash.
func CompareHash(hash, plain []byte) bool {
	if err := bcrypt.CompareHashAndPassword(hash, plain); err != nil {
		return false
	}
	return true
}

// GenerateHash bcrypt-hashes a shared secret for storage.
func GenerateHash(secret []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(secret, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Hmac256 signs a request body for the SignedHash header.
func Hmac256(body, key []byte) string {
	hash := hmac.New(sha256.New, key)
	hash.Write(body)
	return hex.EncodeToString(hash.Sum(nil))
}

// VerifySignature checks a provider callback signature against the
// shared HMAC key.
func VerifySignature(body, key []byte, signature string) bool {
	expected := Hmac256(body, key)
	return hmac.Equal([]byte(expected), []byte(signature))
}
