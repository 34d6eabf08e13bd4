package config

import (
	"os"
	"strings"
	"strconv"
)

// Settings keeps all configuration options.
type Settings struct {
	RPCURL              string
	WalletsFile         string
	ProofAPIURL         string
	ClaimGasLimit       uint64
	TransferGasLimit    uint64
	EligibilityRetries  int
	EligibilityDelaySec int
	ScanWorkers         int
	LogDir              string
}

// Load reads settings from environment supporting both UPPER_CASE and lower_case keys.
func Load() Settings {
	get := func(keys []string, def string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" { return v }
		}
		return def
	}
	getInt := func(keys []string, def int) int {
		s := get(keys, "")
		if s == "" { return def }
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil { return n }
		return def
	}
	getUint64 := func(keys []string, def uint64) uint64 {
		s := get(keys, "")
		if s == "" { return def }
		if n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err == nil { return n }
		return def
	}

	st := Settings{}
	st.RPCURL      = get([]string{"rpc_url", "RPC_URL"}, "https://eth.llamarpc.com")
	st.WalletsFile = get([]string{"wallets_file", "WALLETS_FILE"}, "wallets.txt")
	st.ProofAPIURL = get([]string{"proof_api_url", "PROOF_API_URL"}, "https://common.kerneldao.com/merkle/proofs/kernel_eth")

	st.ClaimGasLimit    = getUint64([]string{"claim_gas_limit", "CLAIM_GAS_LIMIT"}, 200_000)
	st.TransferGasLimit = getUint64([]string{"transfer_gas_limit", "TRANSFER_GAS_LIMIT"}, 100_000)

	st.EligibilityRetries  = getInt([]string{"eligibility_retries", "ELIGIBILITY_RETRIES"}, 3)
	st.EligibilityDelaySec = getInt([]string{"eligibility_delay_sec", "ELIGIBILITY_DELAY_SEC"}, 2)
	st.ScanWorkers         = getInt([]string{"scan_workers", "SCAN_WORKERS"}, 10)
	st.LogDir              = get([]string{"log_dir", "LOG_DIR"}, "logs")

	return st
}
