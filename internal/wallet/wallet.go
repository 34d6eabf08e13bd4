// Package wallet loads and rewrites the flat wallets.txt store:
// one wallet per line, "<private_key>[,<exchange_address>]".
package wallet

import (
	"bufio"
	"crypto/ecdsa"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// Wallet is one loaded line of the store. Immutable after load.
type Wallet struct {
	PrivateKeyHex string // normalized, no 0x prefix; never logged
	Address       common.Address
	Exchange      *common.Address // nil when absent
}

// Key parses the private key. Load already validated it.
func (w Wallet) Key() (*ecdsa.PrivateKey, error) {
	return crypto.HexToECDSA(w.PrivateKeyHex)
}

// absent-exchange sentinels accepted in the second field
var noExchange = map[string]bool{"none": true, "нету": true, "-": true}

// Load reads the store. Blank lines and #-comments are skipped; a line
// with a bad private key is logged and dropped; a bad exchange address is
// logged and dropped while the wallet itself is kept.
func Load(path string, log *zap.Logger) ([]Wallet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wallet store: %w", err)
	}
	defer f.Close()

	var wallets []Wallet
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, ",", 2)
		pk := strings.TrimPrefix(strings.TrimSpace(parts[0]), "0x")
		key, err := crypto.HexToECDSA(pk)
		if err != nil {
			log.Error("bad private key, line skipped", zap.Int("line", lineNo), zap.Error(err))
			continue
		}

		w := Wallet{
			PrivateKeyHex: pk,
			Address:       crypto.PubkeyToAddress(key.PublicKey),
		}
		if len(parts) == 2 {
			ex := strings.TrimSpace(parts[1])
			switch {
			case ex == "" || noExchange[strings.ToLower(ex)]:
				// no exchange for this wallet
			case common.IsHexAddress(ex):
				addr := common.HexToAddress(ex)
				w.Exchange = &addr
			default:
				log.Warn("bad exchange address ignored", zap.Int("line", lineNo), zap.String("value", ex))
			}
		}
		wallets = append(wallets, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read wallet store: %w", err)
	}
	log.Info("wallets loaded", zap.Int("count", len(wallets)), zap.String("path", path))
	return wallets, nil
}

// Remove rewrites the store dropping every wallet whose derived address is
// in the given set. Comment and blank lines survive the rewrite. Returns
// the number of removed wallet lines.
func Remove(path string, addrs []common.Address, log *zap.Logger) (int, error) {
	drop := make(map[common.Address]bool, len(addrs))
	for _, a := range addrs {
		drop[a] = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read wallet store: %w", err)
	}

	var kept []string
	removed := 0
	for _, raw := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			kept = append(kept, raw)
			continue
		}
		pk := strings.TrimPrefix(strings.TrimSpace(strings.SplitN(line, ",", 2)[0]), "0x")
		key, err := crypto.HexToECDSA(pk)
		if err != nil {
			kept = append(kept, raw)
			continue
		}
		if drop[crypto.PubkeyToAddress(key.PublicKey)] {
			removed++
			continue
		}
		kept = append(kept, raw)
	}

	out := strings.Join(kept, "\n")
	if out != "" {
		out += "\n"
	}
	if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
		return 0, fmt.Errorf("rewrite wallet store: %w", err)
	}
	log.Info("wallets removed from store", zap.Int("removed", removed), zap.String("path", path))
	return removed, nil
}

// WriteSample creates a commented template when the store is absent.
// Returns false without touching anything when the file already exists.
func WriteSample(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	const sample = `# Format: PRIVATE_KEY,EXCHANGE_ADDRESS
# Private keys with or without the 0x prefix.
# Leave the exchange field empty (or "none") when the wallet has no
# deposit address.
# Example:
# 0x123abc456def789abc123def456abc789def123abc456def789abc123def456a,0x742d35Cc6634C0532925a3b844Bc454e4438f44e
`
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		return false, err
	}
	return true, nil
}
