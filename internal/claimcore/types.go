package claimcore

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Deployment constants for the KernelDAO season-1 distribution.
// The merkle index is fixed per campaign: every wallet claims against
// index 8 on this contract.
const (
	DropContractHex = "0x68b55c20a2634b25a50a219b632f22854d810bf5"
	TokenAddressHex = "0x3f80b1c54ae920be41a77f8b902259d48cf24ccf"

	ClaimIndex = 8

	SignMessage = "Sign message to view your Season 1 points"

	DefaultClaimGasLimit    = uint64(200_000)
	DefaultTransferGasLimit = uint64(100_000)
)

var (
	DropContract = common.HexToAddress(DropContractHex)
	TokenAddress = common.HexToAddress(TokenAddressHex)
)

// EligibilityRecord is the proof server's answer for one address.
type EligibilityRecord struct {
	Address common.Address
	Balance *big.Int // cumulative claimable amount, token wei
	Proof   []common.Hash
}

// Eligible reports whether the record actually grants a claim:
// non-empty proof and positive balance.
func (r *EligibilityRecord) Eligible() bool {
	return r != nil && len(r.Proof) > 0 && r.Balance != nil && r.Balance.Sign() > 0
}

// GasQuote is a fee snapshot derived from the latest block. Lifetime is
// one orchestration step; never persisted.
type GasQuote struct {
	BaseFee     *big.Int
	PriorityFee *big.Int
	MaxFee      *big.Int
}

// Affordability is the result of checking a wallet's ETH balance against
// planned operations priced at the current quote.
type Affordability struct {
	GasBalance   *big.Int // wei
	ClaimCost    *big.Int // wei
	TransferCost *big.Int // wei

	ForClaim    bool
	ForTransfer bool
	ForBoth     bool
}

// OutcomeStatus tags the terminal state of one wallet's claim or transfer
// attempt.
type OutcomeStatus string

const (
	StatusInsufficientGas OutcomeStatus = "insufficient_gas"
	StatusNotEligible     OutcomeStatus = "not_eligible"
	StatusAlreadyClaimed  OutcomeStatus = "already_claimed"
	StatusSubmitted       OutcomeStatus = "submitted" // broadcast, confirmation unknown
	StatusConfirmed       OutcomeStatus = "confirmed"
	StatusReverted        OutcomeStatus = "reverted"
	StatusFailed          OutcomeStatus = "failed"
	StatusNoTokens        OutcomeStatus = "no_tokens"   // transfer only
	StatusNoExchange      OutcomeStatus = "no_exchange" // transfer only
)

// ClaimOutcome is one wallet's terminal result for a single run.
// Reported to the caller for display; never treated as an error.
type ClaimOutcome struct {
	Address common.Address
	Status  OutcomeStatus
	TxHash  common.Hash

	Amount     *big.Int // token wei claimed/moved, when known
	GasBalance *big.Int // wei, when known
	Reason     string   // populated for StatusFailed
}

func (o ClaimOutcome) Terminal() bool { return o.Status != "" }
