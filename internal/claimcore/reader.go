package claimcore

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Backend is the slice of the ethclient surface this tool touches.
// *ethclient.Client satisfies it; tests substitute a fake.
type Backend interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

const (
	balanceReadTimeout = 20 * time.Second
	viewCallTimeout    = 15 * time.Second

	// Read-path fallback when the provider cannot give a base fee: 0.4 gwei.
	defaultBaseFeeWei = 400_000_000
)

// Reader answers the read-only chain queries the orchestrators need.
// It has no retry of its own; callers decide what a failure means.
type Reader struct {
	ec    Backend
	drop  common.Address
	token common.Address
	log   *zap.Logger
}

func NewReader(ec Backend, drop, token common.Address, log *zap.Logger) *Reader {
	return &Reader{ec: ec, drop: drop, token: token, log: log}
}

// NativeBalance returns the ETH balance in wei.
func (r *Reader) NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, balanceReadTimeout)
	defer cancel()
	bal, err := r.ec.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("balance %s: %w", addr.Hex(), err)
	}
	return bal, nil
}

// TokenBalance returns the raw token balance and the token's decimals.
// Decimals falls back to 18 when the view call fails; a balanceOf failure
// is surfaced to the caller.
func (r *Reader) TokenBalance(ctx context.Context, owner common.Address) (*big.Int, uint8, error) {
	decimals := r.TokenDecimals(ctx)

	cctx, cancel := context.WithTimeout(ctx, balanceReadTimeout)
	defer cancel()
	ret, err := r.ec.CallContract(cctx, ethereum.CallMsg{To: &r.token, Data: EncodeBalanceOf(owner)}, nil)
	if err != nil {
		return nil, decimals, fmt.Errorf("balanceOf %s: %w", owner.Hex(), err)
	}
	if len(ret) == 0 {
		return nil, decimals, fmt.Errorf("balanceOf %s: empty return", owner.Hex())
	}
	return new(big.Int).SetBytes(ret), decimals, nil
}

// TokenDecimals reads decimals(), defaulting to 18 on any failure.
func (r *Reader) TokenDecimals(ctx context.Context) uint8 {
	cctx, cancel := context.WithTimeout(ctx, viewCallTimeout)
	defer cancel()
	ret, err := r.ec.CallContract(cctx, ethereum.CallMsg{To: &r.token, Data: encodeDecimals()}, nil)
	if err != nil || len(ret) == 0 {
		r.log.Warn("decimals() failed, assuming 18", zap.Error(err))
		return 18
	}
	return uint8(new(big.Int).SetBytes(ret).Uint64())
}

// TokenSymbol reads symbol() for display; empty string on failure.
func (r *Reader) TokenSymbol(ctx context.Context) string {
	cctx, cancel := context.WithTimeout(ctx, viewCallTimeout)
	defer cancel()
	ret, err := r.ec.CallContract(cctx, ethereum.CallMsg{To: &r.token, Data: encodeSymbol()}, nil)
	if err != nil || len(ret) < 64 {
		return ""
	}
	n := new(big.Int).SetBytes(ret[32:64]).Uint64()
	if 64+n > uint64(len(ret)) {
		return ""
	}
	return string(ret[64 : 64+n])
}

// LatestBaseFee returns the base fee of the latest block, falling back to
// the hardcoded default when the provider call fails. Never errors.
func (r *Reader) LatestBaseFee(ctx context.Context) *big.Int {
	h, err := r.ec.HeaderByNumber(ctx, nil)
	if err != nil || h.BaseFee == nil {
		r.log.Warn("base fee unavailable, using default",
			zap.Int64("default_wei", defaultBaseFeeWei), zap.Error(err))
		return big.NewInt(defaultBaseFeeWei)
	}
	return new(big.Int).Set(h.BaseFee)
}

// IsClaimed reports whether (index, account) already claimed. A query
// failure reads as "not yet claimed" so a read-path outage cannot block
// the claim path; the contract's own double-claim revert is the backstop.
func (r *Reader) IsClaimed(ctx context.Context, index int64, account common.Address) bool {
	data, err := EncodeIsClaimed(big.NewInt(index), account)
	if err != nil {
		r.log.Warn("isClaimed encode failed", zap.Error(err))
		return false
	}
	cctx, cancel := context.WithTimeout(ctx, viewCallTimeout)
	defer cancel()
	ret, err := r.ec.CallContract(cctx, ethereum.CallMsg{To: &r.drop, Data: data}, nil)
	if err != nil {
		r.log.Warn("isClaimed query failed, assuming unclaimed",
			zap.String("account", account.Hex()), zap.Error(err))
		return false
	}
	claimed, err := DecodeIsClaimed(ret)
	if err != nil {
		r.log.Warn("isClaimed decode failed, assuming unclaimed", zap.Error(err))
		return false
	}
	return claimed
}

// UserClaims returns the contract's (lastClaimedIndex, cumulativeAmount)
// view for an account.
func (r *Reader) UserClaims(ctx context.Context, account common.Address) (*big.Int, *big.Int, error) {
	data, err := EncodeUserClaims(account)
	if err != nil {
		return nil, nil, err
	}
	cctx, cancel := context.WithTimeout(ctx, viewCallTimeout)
	defer cancel()
	ret, err := r.ec.CallContract(cctx, ethereum.CallMsg{To: &r.drop, Data: data}, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("userClaims %s: %w", account.Hex(), err)
	}
	return DecodeUserClaims(ret)
}

// Nonce returns the confirmed on-chain transaction count. Fetched fresh
// immediately before signing; there is no local nonce cache.
func (r *Reader) Nonce(ctx context.Context, account common.Address) (uint64, error) {
	return r.ec.NonceAt(ctx, account, nil)
}
