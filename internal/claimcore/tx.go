package claimcore

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// ErrContractRevert marks a contract-logic failure caught at the
// estimation stage; broadcasting would only burn gas.
var ErrContractRevert = errors.New("contract revert")

const (
	estimateTimeout = 15 * time.Second
	receiptTimeout  = 60 * time.Second
	receiptPollTick = 2 * time.Second

	gasHeadroomNum = 12 // estimate * 1.2
	gasHeadroomDen = 10
)

// TxPlan describes one contract call to submit.
type TxPlan struct {
	To   common.Address
	Data []byte

	// DefaultGasLimit is used as-is when estimation fails or times out;
	// headroom applies only to a successful estimate.
	DefaultGasLimit uint64

	// FallbackBaseFee replaces the observed base fee when the provider
	// call fails (per-operation constant, wei).
	FallbackBaseFee *big.Int

	// Fees derives (maxFee, priorityFee) from the base fee.
	Fees func(baseFee *big.Int) (maxFee, priorityFee *big.Int)
}

// SubmitResult carries the broadcast hash and the best-effort confirmation
// status. A receipt-poll timeout is not a failure: the hash is returned
// with StatusSubmitted and the transaction may still land.
type SubmitResult struct {
	Hash   common.Hash
	Status OutcomeStatus // StatusSubmitted | StatusConfirmed | StatusReverted
}

// Submitter builds, signs, broadcasts and best-effort-confirms EIP-1559
// contract calls. One instance per run; safe for sequential use only.
type Submitter struct {
	ec      Backend
	chainID *big.Int
	log     *zap.Logger
}

func NewSubmitter(ec Backend, chainID *big.Int, log *zap.Logger) *Submitter {
	return &Submitter{ec: ec, chainID: chainID, log: log}
}

// Submit runs the full pipeline for one transaction. Nonce is fetched
// fresh here, which is why claim and transfer submission stay sequential
// per wallet.
func (s *Submitter) Submit(ctx context.Context, key *ecdsa.PrivateKey, plan TxPlan) (SubmitResult, error) {
	from := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := s.ec.NonceAt(ctx, from, nil)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("nonce %s: %w", from.Hex(), err)
	}

	baseFee := s.baseFee(ctx, plan.FallbackBaseFee)
	maxFee, priorityFee := plan.Fees(baseFee)

	gasLimit, err := s.estimateGas(ctx, from, plan)
	if err != nil {
		return SubmitResult{}, err
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: priorityFee,
		GasFeeCap: maxFee,
		Gas:       gasLimit,
		To:        &plan.To,
		Value:     big.NewInt(0),
		Data:      plan.Data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(s.chainID), key)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("sign: %w", err)
	}

	if err := s.ec.SendTransaction(ctx, signed); err != nil {
		return SubmitResult{}, fmt.Errorf("broadcast: %w", err)
	}
	hash := signed.Hash()
	s.log.Info("transaction sent",
		zap.String("hash", hash.Hex()),
		zap.String("from", from.Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", gasLimit),
		zap.String("max_fee_wei", maxFee.String()),
		zap.String("priority_fee_wei", priorityFee.String()))

	return s.awaitReceipt(ctx, hash), nil
}

func (s *Submitter) baseFee(ctx context.Context, fallback *big.Int) *big.Int {
	h, err := s.ec.HeaderByNumber(ctx, nil)
	if err != nil || h.BaseFee == nil {
		s.log.Warn("base fee unavailable, using fallback",
			zap.String("fallback_wei", fallback.String()), zap.Error(err))
		return new(big.Int).Set(fallback)
	}
	return new(big.Int).Set(h.BaseFee)
}

// estimateGas simulates the call under a deadline. A contract revert is
// terminal; any other estimation failure (timeouts included) falls back to
// the plan default as-is. Headroom applies only to a successful estimate.
func (s *Submitter) estimateGas(ctx context.Context, from common.Address, plan TxPlan) (uint64, error) {
	ectx, cancel := context.WithTimeout(ctx, estimateTimeout)
	defer cancel()

	est, err := s.ec.EstimateGas(ectx, ethereum.CallMsg{From: from, To: &plan.To, Data: plan.Data})
	if err != nil {
		if isRevertError(err) {
			reason := revertReason(err)
			s.log.Warn("estimation reverted", zap.String("reason", reason))
			return 0, fmt.Errorf("%w: %s", ErrContractRevert, reason)
		}
		s.log.Warn("gas estimation failed, using default",
			zap.Uint64("default", plan.DefaultGasLimit), zap.Error(err))
		return plan.DefaultGasLimit, nil
	}
	return est * gasHeadroomNum / gasHeadroomDen, nil
}

func (s *Submitter) awaitReceipt(ctx context.Context, hash common.Hash) SubmitResult {
	deadline := time.Now().Add(receiptTimeout)
	for {
		receipt, err := s.ec.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			if receipt.Status == types.ReceiptStatusSuccessful {
				s.log.Info("transaction confirmed", zap.String("hash", hash.Hex()))
				return SubmitResult{Hash: hash, Status: StatusConfirmed}
			}
			s.log.Error("transaction reverted on-chain", zap.String("hash", hash.Hex()))
			return SubmitResult{Hash: hash, Status: StatusReverted}
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			s.log.Warn("no receipt before deadline, status unknown", zap.String("hash", hash.Hex()))
			return SubmitResult{Hash: hash, Status: StatusSubmitted}
		}
		select {
		case <-ctx.Done():
			return SubmitResult{Hash: hash, Status: StatusSubmitted}
		case <-time.After(receiptPollTick):
		}
	}
}

func isRevertError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "execution reverted") ||
		strings.Contains(err.Error(), "revert")
}

func revertReason(err error) string {
	s := err.Error()
	if i := strings.Index(s, "execution reverted"); i >= 0 {
		return s[i:]
	}
	return s
}
