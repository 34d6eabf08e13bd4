package claimcore

import (
	"context"
	"math/big"
)

// Fee policy constants. The read-only quote is deliberately conservative
// (maxFee = observed base fee, token tip), while the submission paths add
// headroom so a claim does not get stuck the moment the base fee ticks up.
var (
	quotePriorityFeeWei  = big.NewInt(10_000_000)  // 0.01 gwei
	submitPriorityFeeWei = big.NewInt(100_000_000) // 0.1 gwei
)

// BaseFeeSource yields the current base fee (with its own fallback, so it
// never fails).
type BaseFeeSource interface {
	LatestBaseFee(ctx context.Context) *big.Int
}

// GasPolicy derives fee quotes and affordability checks from the reader.
type GasPolicy struct {
	reader           BaseFeeSource
	claimGasLimit    uint64
	transferGasLimit uint64
}

func NewGasPolicy(reader BaseFeeSource, claimGasLimit, transferGasLimit uint64) *GasPolicy {
	if claimGasLimit == 0 {
		claimGasLimit = DefaultClaimGasLimit
	}
	if transferGasLimit == 0 {
		transferGasLimit = DefaultTransferGasLimit
	}
	return &GasPolicy{reader: reader, claimGasLimit: claimGasLimit, transferGasLimit: transferGasLimit}
}

// Quote snapshots current fees for the balance-sufficiency path.
// Deterministic in the observed base fee.
func (g *GasPolicy) Quote(ctx context.Context) GasQuote {
	baseFee := g.reader.LatestBaseFee(ctx)
	return GasQuote{
		BaseFee:     baseFee,
		PriorityFee: new(big.Int).Set(quotePriorityFeeWei),
		MaxFee:      new(big.Int).Set(baseFee),
	}
}

// Affordability prices the claim and transfer operations at the quote and
// compares each (and their sum) against the wallet's ETH balance.
func (g *GasPolicy) Affordability(balance *big.Int, quote GasQuote) Affordability {
	claimCost := new(big.Int).Mul(new(big.Int).SetUint64(g.claimGasLimit), quote.MaxFee)
	transferCost := new(big.Int).Mul(new(big.Int).SetUint64(g.transferGasLimit), quote.MaxFee)
	both := new(big.Int).Add(claimCost, transferCost)

	return Affordability{
		GasBalance:   balance,
		ClaimCost:    claimCost,
		TransferCost: transferCost,
		ForClaim:     balance.Cmp(claimCost) >= 0,
		ForTransfer:  balance.Cmp(transferCost) >= 0,
		ForBoth:      balance.Cmp(both) >= 0,
	}
}

// claimFees derives the submission-path fee pair for a claim:
// maxFee = baseFee * 1.2, fixed 0.1 gwei tip.
func claimFees(baseFee *big.Int) (maxFee, priorityFee *big.Int) {
	maxFee = new(big.Int).Mul(baseFee, big.NewInt(12))
	maxFee.Div(maxFee, big.NewInt(10))
	return maxFee, new(big.Int).Set(submitPriorityFeeWei)
}

// transferFees derives the submission-path fee pair for a token transfer:
// maxFee = baseFee * 1.5, fixed 0.1 gwei tip. More generous than the claim
// path since a stuck transfer strands already-claimed tokens.
func transferFees(baseFee *big.Int) (maxFee, priorityFee *big.Int) {
	maxFee = new(big.Int).Mul(baseFee, big.NewInt(15))
	maxFee.Div(maxFee, big.NewInt(10))
	return maxFee, new(big.Int).Set(submitPriorityFeeWei)
}
