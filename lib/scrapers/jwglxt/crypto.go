package jwglxt

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
)

// EncryptPassword encrypts a plaintext password with the portal's
// session public key. The portal serves the key as base64 big-endian
// modulus/exponent and expects base64 PKCS#1 v1.5 ciphertext back in
// the login form. Keys rotate per login ceremony, so the result is only
// valid for the session that fetched the key.
func EncryptPassword(password, modulusB64, exponentB64 string) (string, error) {
	modulus, err := base64.StdEncoding.DecodeString(modulusB64)
	if err != nil {
		return "", fmt.Errorf("decode modulus: %w", err)
	}
	exponent, err := base64.StdEncoding.DecodeString(exponentB64)
	if err != nil {
		return "", fmt.Errorf("decode exponent: %w", err)
	}

	n := new(big.Int).SetBytes(modulus)
	e := new(big.Int).SetBytes(exponent)
	if n.Sign() <= 0 {
		return "", fmt.Errorf("modulus is not a positive integer")
	}
	if !e.IsInt64() || e.Int64() <= 0 || e.BitLen() > 31 {
		return "", fmt.Errorf("exponent %s is not a usable public exponent", e)
	}

	key := &rsa.PublicKey{N: n, E: int(e.Int64())}
	ciphertext, err := rsa.EncryptPKCS1v15(rand.Reader, key, []byte(password))
	if err != nil {
		return "", fmt.Errorf("rsa encrypt: %w", err)
	}

	return strings.TrimSpace(base64.StdEncoding.EncodeToString(ciphertext)), nil
}
