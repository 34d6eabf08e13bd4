package wallet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// well-known hardhat development keys
const (
	key0  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	addr0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	key1  = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	addr1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	key2  = "5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a"
	addr2 = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"

	exchange = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
)

func writeStore(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallets.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeStore(t, strings.Join([]string{
		"# comment line",
		"",
		key0 + "," + exchange,
		"0x" + key1 + ",нету",
		key2,
	}, "\n")+"\n")

	wallets, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, wallets, 3)

	assert.Equal(t, common.HexToAddress(addr0), wallets[0].Address)
	require.NotNil(t, wallets[0].Exchange)
	assert.Equal(t, common.HexToAddress(exchange), *wallets[0].Exchange)

	// 0x prefix stripped, sentinel means no exchange
	assert.Equal(t, key1, wallets[1].PrivateKeyHex)
	assert.Equal(t, common.HexToAddress(addr1), wallets[1].Address)
	assert.Nil(t, wallets[1].Exchange)

	assert.Equal(t, common.HexToAddress(addr2), wallets[2].Address)
	assert.Nil(t, wallets[2].Exchange)
}

func TestLoadSkipsBadKeys(t *testing.T) {
	path := writeStore(t, strings.Join([]string{
		"not-a-key," + exchange,
		key0,
	}, "\n")+"\n")

	wallets, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, common.HexToAddress(addr0), wallets[0].Address)
}

func TestLoadKeepsWalletWithBadExchange(t *testing.T) {
	path := writeStore(t, key0+",garbage-address\n")

	wallets, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Nil(t, wallets[0].Exchange)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"), zap.NewNop())
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	path := writeStore(t, key0+"\n")
	wallets, err := Load(path, zap.NewNop())
	require.NoError(t, err)

	key, err := wallets[0].Key()
	require.NoError(t, err)
	assert.NotNil(t, key)
}

func TestRemove(t *testing.T) {
	path := writeStore(t, strings.Join([]string{
		"# keep this comment",
		key0 + "," + exchange,
		key1,
		key2,
	}, "\n")+"\n")

	removed, err := Remove(path, []common.Address{
		common.HexToAddress(addr1),
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# keep this comment")
	assert.Contains(t, content, key0)
	assert.NotContains(t, content, key1)
	assert.Contains(t, content, key2)

	wallets, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, wallets, 2)
}

func TestRemoveNothingMatches(t *testing.T) {
	path := writeStore(t, key0+"\n")

	removed, err := Remove(path, []common.Address{common.HexToAddress(addr1)}, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, removed)

	wallets, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, wallets, 1)
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")

	created, err := WriteSample(path)
	require.NoError(t, err)
	assert.True(t, created)

	// template is comments only, loads as zero wallets
	wallets, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, wallets)

	// never overwrites an existing store
	require.NoError(t, os.WriteFile(path, []byte(key0+"\n"), 0o600))
	created, err = WriteSample(path)
	require.NoError(t, err)
	assert.False(t, created)
}
