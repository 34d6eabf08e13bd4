package main

import (
	"bufio"
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	core "github.com/kernelsoft/kernel-claimer/internal/claimcore"
	"github.com/kernelsoft/kernel-claimer/internal/config"
	"github.com/kernelsoft/kernel-claimer/internal/signer"
	"github.com/kernelsoft/kernel-claimer/internal/wallet"
)

type app struct {
	cfg     config.Settings
	log     *zap.Logger
	in      *bufio.Reader
	reader  *core.Reader
	gas     *core.GasPolicy
	elig    *core.EligibilityClient
	orch    *core.Orchestrator
	wallets []wallet.Wallet
}

type eligRow struct {
	rec *core.EligibilityRecord
	err error
}

func (a *app) checkEligibility(ctx context.Context) {
	fmt.Println("Проверка eligibility для всех кошельков...")
	if !yes(strings.ToLower(readLine(a.in, "Продолжить проверку? (y/n): "))) {
		return
	}

	dec := int(a.reader.TokenDecimals(ctx))
	rows := core.Scan(ctx, len(a.wallets), a.cfg.ScanWorkers, a.cfg.ScanWorkers,
		func(ctx context.Context, i int) (eligRow, error) {
			w := a.wallets[i]
			sig, err := signer.Sign(w.PrivateKeyHex, core.SignMessage)
			if err != nil {
				return eligRow{err: err}, nil
			}
			rec, err := a.elig.CheckWithRetry(ctx, w.Address, sig)
			return eligRow{rec: rec, err: err}, nil
		})

	fmt.Printf("%-4s %-44s %-10s %s\n", "#", "Адрес", "Eligible", "Баланс")
	var notEligible []common.Address
	for i, r := range rows {
		w := a.wallets[i]
		switch {
		case r.Value.err == nil && r.Value.rec.Eligible():
			fmt.Printf("%-4d %-44s %-10s %s\n", i+1, w.Address.Hex(), "да", formatTokens(r.Value.rec.Balance, dec))
		default:
			fmt.Printf("%-4d %-44s %-10s %s\n", i+1, w.Address.Hex(), "нет", "-")
			notEligible = append(notEligible, w.Address)
		}
	}

	if len(notEligible) == 0 {
		return
	}
	fmt.Printf("\nНайдено %d кошельков, не имеющих права на клейм.\n", len(notEligible))
	if !yes(strings.ToLower(readLine(a.in, "Удалить эти кошельки из файла "+a.cfg.WalletsFile+"? (y/n): "))) {
		return
	}
	removed, err := wallet.Remove(a.cfg.WalletsFile, notEligible, a.log)
	if err != nil {
		fmt.Println("Ошибка при обновлении файла:", err)
		return
	}
	left, err := wallet.Load(a.cfg.WalletsFile, a.log)
	if err == nil {
		a.wallets = left
	}
	fmt.Printf("Удалено %d кошельков. В файле осталось %d кошельков.\n", removed, len(a.wallets))
}

func (a *app) checkGas(ctx context.Context) {
	fmt.Println("Проверка баланса газа для всех кошельков...")

	quote := a.gas.Quote(ctx)
	fmt.Println("Base fee      :", formatGwei(quote.BaseFee), "gwei")
	fmt.Println("Max fee       :", formatGwei(quote.MaxFee), "gwei")
	aff := a.gas.Affordability(big.NewInt(0), quote)
	fmt.Println("Клейм, ETH    :", formatEther(aff.ClaimCost))
	fmt.Println("Трансфер, ETH :", formatEther(aff.TransferCost))

	if !yes(strings.ToLower(readLine(a.in, "Продолжить проверку? (y/n): "))) {
		return
	}

	rows := core.Scan(ctx, len(a.wallets), a.cfg.ScanWorkers, a.cfg.ScanWorkers,
		func(ctx context.Context, i int) (*big.Int, error) {
			return a.reader.NativeBalance(ctx, a.wallets[i].Address)
		})

	fmt.Printf("%-4s %-44s %-14s %-8s %-10s %s\n", "#", "Адрес", "Баланс ETH", "Клейм", "Трансфер", "Оба")
	for i, r := range rows {
		w := a.wallets[i]
		bal := r.Value
		if r.Err != nil || bal == nil {
			bal = big.NewInt(0)
		}
		af := a.gas.Affordability(bal, quote)
		fmt.Printf("%-4d %-44s %-14s %-8s %-10s %s\n", i+1, w.Address.Hex(),
			formatEther(bal), mark(af.ForClaim), mark(af.ForTransfer), mark(af.ForBoth))
	}
}

func (a *app) claimAll(ctx context.Context) {
	fmt.Println("Клейм токенов для всех eligible кошельков...")
	if !yes(strings.ToLower(readLine(a.in, "Продолжить клейм? (y/n): "))) {
		return
	}

	dec := int(a.reader.TokenDecimals(ctx))
	outcomes := make([]core.ClaimOutcome, 0, len(a.wallets))
	for i, w := range a.wallets {
		fmt.Printf("[%d/%d] %s ... ", i+1, len(a.wallets), w.Address.Hex())
		out := a.orch.Claim(ctx, w)
		outcomes = append(outcomes, out)
		fmt.Println(statusText(out.Status))
		if out.TxHash != (common.Hash{}) {
			fmt.Println("      tx:", out.TxHash.Hex())
		}
		if out.Reason != "" {
			fmt.Println("      причина:", out.Reason)
		}
	}
	printOutcomes(outcomes, dec)
}

func (a *app) checkTokens(ctx context.Context) {
	fmt.Println("Проверка баланса токенов для всех кошельков...")
	if !yes(strings.ToLower(readLine(a.in, "Продолжить проверку? (y/n): "))) {
		return
	}

	symbol := a.reader.TokenSymbol(ctx)
	dec := int(a.reader.TokenDecimals(ctx))

	type tokenRow struct {
		balance *big.Int
		claimed *big.Int
	}
	rows := core.Scan(ctx, len(a.wallets), a.cfg.ScanWorkers, a.cfg.ScanWorkers,
		func(ctx context.Context, i int) (tokenRow, error) {
			w := a.wallets[i]
			bal, _, err := a.reader.TokenBalance(ctx, w.Address)
			if err != nil {
				bal = big.NewInt(0)
			}
			claimed, _, err := a.reader.UserClaims(ctx, w.Address)
			if err != nil {
				claimed = nil
			}
			return tokenRow{balance: bal, claimed: claimed}, nil
		})

	fmt.Printf("%-4s %-44s %-16s %s\n", "#", "Адрес", "Баланс "+symbol, "Заклеймлено")
	total := new(big.Int)
	for i, r := range rows {
		w := a.wallets[i]
		claimed := "-"
		if r.Value.claimed != nil {
			claimed = formatTokens(r.Value.claimed, dec)
		}
		fmt.Printf("%-4d %-44s %-16s %s\n", i+1, w.Address.Hex(), formatTokens(r.Value.balance, dec), claimed)
		if r.Value.balance != nil {
			total.Add(total, r.Value.balance)
		}
	}
	fmt.Println("Всего:", formatTokens(total, dec), symbol)
}

func (a *app) sendToExchange(ctx context.Context) {
	fmt.Println("Отправка токенов на биржу для всех кошельков...")

	withExchange := make([]wallet.Wallet, 0, len(a.wallets))
	for _, w := range a.wallets {
		if w.Exchange != nil {
			withExchange = append(withExchange, w)
		}
	}
	if len(withExchange) == 0 {
		fmt.Println("Нет кошельков с адресом биржи")
		return
	}

	dec := int(a.reader.TokenDecimals(ctx))
	first := withExchange[0]
	if !yes(strings.ToLower(readLine(a.in, "Отправить токены с первого кошелька? (y/n): "))) {
		return
	}

	fmt.Printf("Отправка с первого кошелька %s...\n", first.Address.Hex())
	outcomes := []core.ClaimOutcome{a.orch.Transfer(ctx, first, nil)}
	printOutcomes(outcomes, dec)

	if len(withExchange) == 1 {
		return
	}
	prompt := fmt.Sprintf("Отправить токены с остальных %d кошельков? (y/n): ", len(withExchange)-1)
	if !yes(strings.ToLower(readLine(a.in, prompt))) {
		return
	}
	for _, w := range withExchange[1:] {
		outcomes = append(outcomes, a.orch.Transfer(ctx, w, nil))
	}
	printOutcomes(outcomes, dec)
}

func printOutcomes(outs []core.ClaimOutcome, dec int) {
	fmt.Printf("%-4s %-44s %-22s %-16s %s\n", "#", "Адрес", "Статус", "Сумма", "Tx")
	for i, o := range outs {
		amount := "-"
		if o.Amount != nil {
			amount = formatTokens(o.Amount, dec)
		}
		tx := "-"
		if o.TxHash != (common.Hash{}) {
			tx = o.TxHash.Hex()
		}
		fmt.Printf("%-4d %-44s %-22s %-16s %s\n", i+1, o.Address.Hex(), statusText(o.Status), amount, tx)
	}
}

func statusText(s core.OutcomeStatus) string {
	switch s {
	case core.StatusInsufficientGas:
		return "Недостаточно газа"
	case core.StatusNotEligible:
		return "Не eligible"
	case core.StatusAlreadyClaimed:
		return "Уже заклеймлено"
	case core.StatusSubmitted:
		return "Отправлено (ожидание)"
	case core.StatusConfirmed:
		return "Успешно"
	case core.StatusReverted:
		return "Транзакция отклонена"
	case core.StatusNoTokens:
		return "Нет токенов"
	case core.StatusNoExchange:
		return "Нет адреса биржи"
	case core.StatusFailed:
		return "Ошибка"
	}
	return string(s)
}

func mark(ok bool) string {
	if ok {
		return "да"
	}
	return "нет"
}
