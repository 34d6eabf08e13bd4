package claimcore

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticBaseFee struct{ fee *big.Int }

func (s staticBaseFee) LatestBaseFee(ctx context.Context) *big.Int {
	return new(big.Int).Set(s.fee)
}

func gwei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1_000_000_000))
}

func TestQuote(t *testing.T) {
	g := NewGasPolicy(staticBaseFee{fee: gwei(10)}, 0, 0)

	q := g.Quote(context.Background())
	assert.Equal(t, gwei(10), q.BaseFee)
	assert.Equal(t, gwei(10), q.MaxFee)
	assert.Equal(t, big.NewInt(10_000_000), q.PriorityFee)

	// deterministic for a fixed base fee
	assert.Equal(t, q, g.Quote(context.Background()))
}

func TestAffordability(t *testing.T) {
	g := NewGasPolicy(staticBaseFee{fee: gwei(10)}, 0, 0)
	q := g.Quote(context.Background())

	// claim: 200k gas * 10 gwei = 0.002 ETH, transfer: 100k * 10 gwei = 0.001 ETH
	claimCost := new(big.Int).Mul(big.NewInt(200_000), gwei(10))
	transferCost := new(big.Int).Mul(big.NewInt(100_000), gwei(10))
	both := new(big.Int).Add(claimCost, transferCost)

	tests := []struct {
		name            string
		balance         *big.Int
		claim, tr, combo bool
	}{
		{"zero", big.NewInt(0), false, false, false},
		{"transfer only", new(big.Int).Set(transferCost), false, true, false},
		{"exactly claim", new(big.Int).Set(claimCost), true, true, false},
		{"exactly both", both, true, true, true},
		{"rich", new(big.Int).Mul(both, big.NewInt(100)), true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			af := g.Affordability(tt.balance, q)
			assert.Equal(t, claimCost, af.ClaimCost)
			assert.Equal(t, transferCost, af.TransferCost)
			assert.Equal(t, tt.claim, af.ForClaim)
			assert.Equal(t, tt.tr, af.ForTransfer)
			assert.Equal(t, tt.combo, af.ForBoth)
		})
	}
}

func TestAffordabilityCustomLimits(t *testing.T) {
	g := NewGasPolicy(staticBaseFee{fee: gwei(1)}, 300_000, 50_000)
	af := g.Affordability(big.NewInt(0), g.Quote(context.Background()))
	assert.Equal(t, new(big.Int).Mul(big.NewInt(300_000), gwei(1)), af.ClaimCost)
	assert.Equal(t, new(big.Int).Mul(big.NewInt(50_000), gwei(1)), af.TransferCost)
}

func TestSubmissionFees(t *testing.T) {
	maxFee, tip := claimFees(gwei(10))
	assert.Equal(t, gwei(12), maxFee)
	assert.Equal(t, big.NewInt(100_000_000), tip)

	maxFee, tip = transferFees(gwei(10))
	assert.Equal(t, gwei(15), maxFee)
	assert.Equal(t, big.NewInt(100_000_000), tip)

	// integer math truncates, never rounds up
	maxFee, _ = claimFees(big.NewInt(5))
	assert.Equal(t, big.NewInt(6), maxFee)
	maxFee, _ = transferFees(big.NewInt(1))
	assert.Equal(t, big.NewInt(1), maxFee)
}
