package signer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testMessage = "Sign message to view your Season 1 points"
)

func TestSignDeterministic(t *testing.T) {
	a, err := Sign(testKey, testMessage)
	require.NoError(t, err)
	b, err := Sign(testKey, testMessage)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	assert.True(t, strings.HasPrefix(a, "0x"))
	assert.Len(t, a, 2+65*2)
}

func TestSignAcceptsPrefixedKey(t *testing.T) {
	plain, err := Sign(testKey, testMessage)
	require.NoError(t, err)
	prefixed, err := Sign("0x"+testKey, testMessage)
	require.NoError(t, err)
	assert.Equal(t, plain, prefixed)
}

func TestSignRecoveryByteConvention(t *testing.T) {
	sig, err := Sign(testKey, testMessage)
	require.NoError(t, err)
	last := sig[len(sig)-2:]
	assert.Contains(t, []string{"1b", "1c"}, last)
}

func TestSignInvalidKey(t *testing.T) {
	for _, key := range []string{"", "zz", "deadbeef", testKey + "00"} {
		_, err := Sign(key, testMessage)
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestVerifyRoundtrip(t *testing.T) {
	sig, err := Sign(testKey, testMessage)
	require.NoError(t, err)

	assert.True(t, Verify(testAddress, testMessage, sig))
	assert.True(t, Verify(strings.ToLower(testAddress), testMessage, sig))
	assert.False(t, Verify(testAddress, "another message", sig))
	assert.False(t, Verify("0x0000000000000000000000000000000000000001", testMessage, sig))
}

func TestVerifyMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		sig  string
	}{
		{"empty", ""},
		{"not hex", "0xzz"},
		{"no prefix", "deadbeef"},
		{"too short", "0xdeadbeef"},
		{"bad recovery byte", "0x" + strings.Repeat("00", 64) + "05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Verify(testAddress, testMessage, tt.sig))
		})
	}
}

func TestAddressOf(t *testing.T) {
	addr, err := AddressOf(testKey)
	require.NoError(t, err)
	assert.Equal(t, testAddress, addr)

	_, err = AddressOf("nope")
	assert.True(t, errors.Is(err, ErrInvalidKey))
}
