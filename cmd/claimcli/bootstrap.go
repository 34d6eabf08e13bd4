package main

import (
	"os"

	"github.com/kernelsoft/kernel-claimer/internal/config"
	"github.com/kernelsoft/kernel-claimer/internal/wallet"
)

const envSample = `# RPC endpoint for Ethereum mainnet
RPC_URL=https://eth.llamarpc.com

# File with private keys, one wallet per line
WALLETS_FILE=wallets.txt

# Merkle proof service
PROOF_API_URL=https://common.kerneldao.com/merkle/proofs/kernel_eth

# Static gas limits used when on-chain estimation fails
CLAIM_GAS_LIMIT=200000
TRANSFER_GAS_LIMIT=100000

# Eligibility retry policy
ELIGIBILITY_RETRIES=3
ELIGIBILITY_DELAY_SEC=2

# Parallel read workers for the table views
SCAN_WORKERS=10

LOG_DIR=logs
`

// ensureLocalFiles writes sample .env and wallets files on first run.
// Returns true when anything was created so the caller can stop and let
// the user fill them in.
func ensureLocalFiles(cfg config.Settings) bool {
	created := false
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		if werr := os.WriteFile(".env", []byte(envSample), 0o600); werr == nil {
			created = true
		}
	}
	if ok, err := wallet.WriteSample(cfg.WalletsFile); err == nil && ok {
		created = true
	}
	return created
}
