package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	st := Load()
	assert.Equal(t, "https://eth.llamarpc.com", st.RPCURL)
	assert.Equal(t, "wallets.txt", st.WalletsFile)
	assert.Equal(t, "https://common.kerneldao.com/merkle/proofs/kernel_eth", st.ProofAPIURL)
	assert.Equal(t, uint64(200_000), st.ClaimGasLimit)
	assert.Equal(t, uint64(100_000), st.TransferGasLimit)
	assert.Equal(t, 3, st.EligibilityRetries)
	assert.Equal(t, 2, st.EligibilityDelaySec)
	assert.Equal(t, 10, st.ScanWorkers)
	assert.Equal(t, "logs", st.LogDir)
}

func TestLoadKeyCase(t *testing.T) {
	t.Setenv("rpc_url", "https://lower.example")
	assert.Equal(t, "https://lower.example", Load().RPCURL)

	t.Setenv("rpc_url", "")
	t.Setenv("RPC_URL", "https://upper.example")
	assert.Equal(t, "https://upper.example", Load().RPCURL)
}

func TestLoadBadNumbersFallBack(t *testing.T) {
	t.Setenv("CLAIM_GAS_LIMIT", "not-a-number")
	t.Setenv("SCAN_WORKERS", "  25  ")

	st := Load()
	assert.Equal(t, uint64(200_000), st.ClaimGasLimit)
	assert.Equal(t, 25, st.ScanWorkers)
}
