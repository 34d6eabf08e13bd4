package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	core "github.com/kernelsoft/kernel-claimer/internal/claimcore"
	"github.com/kernelsoft/kernel-claimer/internal/config"
	"github.com/kernelsoft/kernel-claimer/internal/logging"
	"github.com/kernelsoft/kernel-claimer/internal/wallet"
)

func main() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")

	cfg := config.Load()

	if bootstrapped := ensureLocalFiles(cfg); bootstrapped {
		fmt.Println("Созданы файлы .env и/или", cfg.WalletsFile)
		fmt.Println("Заполните их и перезапустите программу.")
		return
	}

	logger, err := logging.New(cfg.LogDir)
	must(err, "logger")
	defer logger.Sync()

	ctx := context.Background()

	ec, err := ethclient.Dial(cfg.RPCURL)
	must(err, "dial RPC")
	chainID, err := ec.ChainID(ctx)
	must(err, "chain id")

	wallets, err := wallet.Load(cfg.WalletsFile, logger)
	must(err, "load wallets")
	if len(wallets) == 0 {
		die("Ошибка: не удалось загрузить кошельки из " + cfg.WalletsFile)
	}
	withExchange := 0
	for _, w := range wallets {
		if w.Exchange != nil {
			withExchange++
		}
	}

	reader := core.NewReader(ec, core.DropContract, core.TokenAddress, logger)
	gas := core.NewGasPolicy(reader, cfg.ClaimGasLimit, cfg.TransferGasLimit)
	elig := core.NewEligibilityClient(cfg.ProofAPIURL, logger)
	elig.SetRetryPolicy(cfg.EligibilityRetries, time.Duration(cfg.EligibilityDelaySec)*time.Second)
	sub := core.NewSubmitter(ec, chainID, logger)
	orch := core.NewOrchestrator(reader, gas, elig, sub, logger)
	orch.SetGasLimits(cfg.ClaimGasLimit, cfg.TransferGasLimit)

	app := &app{
		cfg:     cfg,
		log:     logger,
		in:      bufio.NewReader(os.Stdin),
		reader:  reader,
		gas:     gas,
		elig:    elig,
		orch:    orch,
		wallets: wallets,
	}

	fmt.Println("KernelDAO Airdrop Bot")
	fmt.Println("RPC      :", cfg.RPCURL)
	fmt.Println("Chain ID :", chainID.String())
	fmt.Printf("Загружено %d кошельков, %d с адресом биржи\n", len(wallets), withExchange)
	logger.Info("started",
		zap.String("rpc", cfg.RPCURL),
		zap.String("chain_id", chainID.String()),
		zap.Int("wallets", len(wallets)))

	for {
		fmt.Println("\n==================================================")
		fmt.Println("[1] Проверить eligibility")
		fmt.Println("[2] Проверить баланс газа")
		fmt.Println("[3] Клеймить дроп")
		fmt.Println("[4] Проверить полученные токены")
		fmt.Println("[5] Отправить токены на биржу")
		fmt.Println("[0] Выход")
		fmt.Println("==================================================")

		switch readLine(app.in, "Выберите действие: ") {
		case "1":
			app.checkEligibility(ctx)
		case "2":
			app.checkGas(ctx)
		case "3":
			app.claimAll(ctx)
		case "4":
			app.checkTokens(ctx)
		case "5":
			app.sendToExchange(ctx)
		case "0":
			fmt.Println("Работа завершена")
			return
		default:
			fmt.Println("Неверный выбор. Попробуйте снова.")
		}
	}
}
