// Package signer produces and verifies Ethereum personal-message
// signatures. Pure functions, no I/O.
package signer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidKey is returned when the private key is not a well-formed
// 32-byte secp256k1 scalar.
var ErrInvalidKey = errors.New("invalid private key")

// Sign signs message under the "\x19Ethereum Signed Message:\n" prefix and
// returns the 65-byte signature hex-encoded with a 0x prefix. The recovery
// byte is in the 27/28 convention wallets produce. Deterministic: the same
// key and message always yield the same bytes.
func Sign(privateKeyHex, message string) (string, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	if err != nil {
		return "", err
	}
	sig[64] += 27
	return hexutil.Encode(sig), nil
}

// Verify recovers the signer of a personal-message signature and compares
// it with address, case-insensitively. Returns false (never panics) for
// any malformed input.
func Verify(address, message, signatureHex string) bool {
	sig, err := hexutil.Decode(strings.TrimSpace(signatureHex))
	if err != nil || len(sig) != crypto.SignatureLength {
		return false
	}
	// accept both the raw 0/1 and the 27/28 recovery conventions
	v := sig[crypto.RecoveryIDOffset]
	if v >= 27 {
		v -= 27
	}
	if v > 1 {
		return false
	}
	norm := make([]byte, crypto.SignatureLength)
	copy(norm, sig)
	norm[crypto.RecoveryIDOffset] = v

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), norm)
	if err != nil {
		return false
	}
	recovered := crypto.PubkeyToAddress(*pub)
	return strings.EqualFold(recovered.Hex(), strings.TrimSpace(address))
}

// AddressOf derives the checksummed address for a hex private key.
func AddressOf(privateKeyHex string) (string, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return crypto.PubkeyToAddress(key.PublicKey).Hex(), nil
}
