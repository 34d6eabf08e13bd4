// Package claimcore sequences the per-wallet airdrop claim pipeline:
// affordability gate, eligibility proof fetch, already-claimed check, then
// transaction submission. Wallets are processed strictly one at a time;
// nonces are fetched fresh at submission and never cached.
package claimcore

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/kernelsoft/kernel-claimer/internal/signer"
	"github.com/kernelsoft/kernel-claimer/internal/wallet"
)

// Submission-path base-fee fallbacks, applied when the provider cannot
// give a base fee at broadcast time.
var (
	claimFallbackBaseFee    = big.NewInt(25_000_000_000) // 25 gwei
	transferFallbackBaseFee = big.NewInt(30_000_000_000) // 30 gwei
)

// ReaderAPI is the read-only query surface the orchestrator needs.
type ReaderAPI interface {
	NativeBalance(ctx context.Context, addr common.Address) (*big.Int, error)
	TokenBalance(ctx context.Context, owner common.Address) (*big.Int, uint8, error)
	LatestBaseFee(ctx context.Context) *big.Int
	IsClaimed(ctx context.Context, index int64, account common.Address) bool
}

// EligibilityAPI fetches the merkle proof for an address.
type EligibilityAPI interface {
	CheckWithRetry(ctx context.Context, address common.Address, signature string) (*EligibilityRecord, error)
}

// SubmitterAPI broadcasts one planned contract call.
type SubmitterAPI interface {
	Submit(ctx context.Context, key *ecdsa.PrivateKey, plan TxPlan) (SubmitResult, error)
}

// Orchestrator runs the claim and transfer pipelines for single wallets.
type Orchestrator struct {
	reader      ReaderAPI
	gas         *GasPolicy
	eligibility EligibilityAPI
	sub         SubmitterAPI
	log         *zap.Logger

	drop       common.Address
	token      common.Address
	claimIndex int64

	claimGasLimit    uint64
	transferGasLimit uint64
}

func NewOrchestrator(reader ReaderAPI, gas *GasPolicy, eligibility EligibilityAPI, sub SubmitterAPI, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		reader:           reader,
		gas:              gas,
		eligibility:      eligibility,
		sub:              sub,
		log:              log,
		drop:             DropContract,
		token:            TokenAddress,
		claimIndex:       ClaimIndex,
		claimGasLimit:    DefaultClaimGasLimit,
		transferGasLimit: DefaultTransferGasLimit,
	}
}

// SetGasLimits overrides the static limits used when on-chain estimation
// is unavailable. Zero keeps the current value.
func (o *Orchestrator) SetGasLimits(claim, transfer uint64) {
	if claim != 0 {
		o.claimGasLimit = claim
	}
	if transfer != 0 {
		o.transferGasLimit = transfer
	}
}

// Claim runs one wallet through the full gate sequence. Every return is a
// terminal outcome; a failure for one wallet never aborts the batch.
func (o *Orchestrator) Claim(ctx context.Context, w wallet.Wallet) ClaimOutcome {
	log := o.log.With(zap.String("address", w.Address.Hex()))

	// Gate 1: can the wallet pay for the claim at current fees. A balance
	// read failure reads as zero so the batch keeps moving.
	balance, err := o.reader.NativeBalance(ctx, w.Address)
	if err != nil {
		log.Warn("balance read failed, treating as zero", zap.Error(err))
		balance = big.NewInt(0)
	}
	aff := o.gas.Affordability(balance, o.gas.Quote(ctx))
	if !aff.ForClaim {
		log.Warn("insufficient ETH for claim",
			zap.String("balance_wei", balance.String()),
			zap.String("claim_cost_wei", aff.ClaimCost.String()))
		return ClaimOutcome{Address: w.Address, Status: StatusInsufficientGas, GasBalance: balance}
	}

	// Gate 2: eligibility. The proof server answers to a signed message,
	// so sign first. Any terminal answer or exhausted retry is NotEligible.
	sig, err := signer.Sign(w.PrivateKeyHex, SignMessage)
	if err != nil {
		return ClaimOutcome{Address: w.Address, Status: StatusFailed, GasBalance: balance, Reason: "sign: " + err.Error()}
	}
	rec, err := o.eligibility.CheckWithRetry(ctx, w.Address, sig)
	if err != nil {
		if !errors.Is(err, ErrNotEligible) {
			log.Warn("eligibility check failed", zap.Error(err))
		}
		return ClaimOutcome{Address: w.Address, Status: StatusNotEligible, GasBalance: balance}
	}

	// Gate 3: idempotency pre-check. The contract reverts a double claim
	// anyway; this avoids burning gas on one.
	if o.reader.IsClaimed(ctx, o.claimIndex, w.Address) {
		log.Info("already claimed", zap.Int64("index", o.claimIndex))
		return ClaimOutcome{Address: w.Address, Status: StatusAlreadyClaimed, Amount: rec.Balance, GasBalance: balance}
	}

	data, err := EncodeClaim(big.NewInt(o.claimIndex), w.Address, rec.Balance, rec.Proof)
	if err != nil {
		return ClaimOutcome{Address: w.Address, Status: StatusFailed, GasBalance: balance, Reason: "encode claim: " + err.Error()}
	}
	key, err := w.Key()
	if err != nil {
		return ClaimOutcome{Address: w.Address, Status: StatusFailed, GasBalance: balance, Reason: "key: " + err.Error()}
	}

	res, err := o.sub.Submit(ctx, key, TxPlan{
		To:              o.drop,
		Data:            data,
		DefaultGasLimit: o.claimGasLimit,
		FallbackBaseFee: claimFallbackBaseFee,
		Fees:            claimFees,
	})
	if err != nil {
		log.Error("claim submission failed", zap.Error(err))
		return ClaimOutcome{Address: w.Address, Status: StatusFailed, Amount: rec.Balance, GasBalance: balance, Reason: err.Error()}
	}

	return ClaimOutcome{
		Address:    w.Address,
		Status:     res.Status,
		TxHash:     res.Hash,
		Amount:     rec.Balance,
		GasBalance: balance,
	}
}
