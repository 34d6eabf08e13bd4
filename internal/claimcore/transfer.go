package claimcore

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"github.com/kernelsoft/kernel-claimer/internal/wallet"
)

// Transfer moves claimed tokens to the wallet's exchange address. A nil
// amount (or one above the balance) means the whole balance. No
// eligibility or claim-index concepts apply here.
func (o *Orchestrator) Transfer(ctx context.Context, w wallet.Wallet, amount *big.Int) ClaimOutcome {
	log := o.log.With(zap.String("address", w.Address.Hex()))

	if w.Exchange == nil {
		return ClaimOutcome{Address: w.Address, Status: StatusNoExchange}
	}

	balance, _, err := o.reader.TokenBalance(ctx, w.Address)
	if err != nil {
		log.Warn("token balance read failed", zap.Error(err))
		return ClaimOutcome{Address: w.Address, Status: StatusFailed, Reason: "token balance: " + err.Error()}
	}
	if balance.Sign() == 0 {
		log.Info("no tokens to send")
		return ClaimOutcome{Address: w.Address, Status: StatusNoTokens}
	}

	if amount == nil || amount.Cmp(balance) > 0 {
		if amount != nil {
			log.Warn("requested amount above balance, sending full balance",
				zap.String("requested", amount.String()), zap.String("balance", balance.String()))
		}
		amount = balance
	}

	key, err := w.Key()
	if err != nil {
		return ClaimOutcome{Address: w.Address, Status: StatusFailed, Reason: "key: " + err.Error()}
	}

	res, err := o.sub.Submit(ctx, key, TxPlan{
		To:              o.token,
		Data:            EncodeERC20Transfer(*w.Exchange, amount),
		DefaultGasLimit: o.transferGasLimit,
		FallbackBaseFee: transferFallbackBaseFee,
		Fees:            transferFees,
	})
	if err != nil {
		log.Error("transfer submission failed", zap.Error(err))
		return ClaimOutcome{Address: w.Address, Status: StatusFailed, Amount: amount, Reason: err.Error()}
	}

	return ClaimOutcome{Address: w.Address, Status: res.Status, TxHash: res.Hash, Amount: amount}
}
