package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	core "github.com/kernelsoft/kernel-claimer/internal/claimcore"
	"github.com/kernelsoft/kernel-claimer/internal/logging"
	"github.com/kernelsoft/kernel-claimer/internal/wallet"
)

type config struct {
	RPCURL           string        `long:"rpc-url" env:"RPC_URL" description:"Ethereum RPC URL" default:"https://eth.llamarpc.com"`
	WalletsFile      string        `long:"wallets" env:"WALLETS_FILE" description:"wallets file" default:"wallets.txt"`
	ProofAPIURL      string        `long:"proof-api-url" env:"PROOF_API_URL" description:"merkle proof service URL" default:"https://common.kerneldao.com/merkle/proofs/kernel_eth"`
	ClaimGasLimit    uint64        `long:"claim-gas-limit" env:"CLAIM_GAS_LIMIT" description:"static claim gas limit" default:"200000"`
	TransferGasLimit uint64        `long:"transfer-gas-limit" env:"TRANSFER_GAS_LIMIT" description:"static transfer gas limit" default:"100000"`
	Retries          int           `long:"eligibility-retries" env:"ELIGIBILITY_RETRIES" description:"eligibility attempts per wallet" default:"3"`
	RetryDelay       time.Duration `long:"eligibility-delay" env:"ELIGIBILITY_DELAY" description:"delay between eligibility attempts" default:"2s"`
	LogDir           string        `long:"log-dir" env:"LOG_DIR" description:"directory for log files" default:"logs"`
	Transfer         bool          `long:"transfer" description:"after claiming, send tokens to each wallet's exchange address"`
}

func main() {
	_ = godotenv.Load()

	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, "failed to parse flags:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogDir)
	if err != nil {
		panic("can't initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("claim run failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	ec, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("dial rpc: %w", err)
	}
	chainID, err := ec.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("chain id: %w", err)
	}

	wallets, err := wallet.Load(cfg.WalletsFile, logger)
	if err != nil {
		return fmt.Errorf("load wallets: %w", err)
	}
	if len(wallets) == 0 {
		return fmt.Errorf("no wallets in %s", cfg.WalletsFile)
	}
	logger.Info("loaded wallets", zap.Int("count", len(wallets)), zap.String("chain_id", chainID.String()))

	reader := core.NewReader(ec, core.DropContract, core.TokenAddress, logger)
	gas := core.NewGasPolicy(reader, cfg.ClaimGasLimit, cfg.TransferGasLimit)
	elig := core.NewEligibilityClient(cfg.ProofAPIURL, logger)
	elig.SetRetryPolicy(cfg.Retries, cfg.RetryDelay)
	sub := core.NewSubmitter(ec, chainID, logger)
	orch := core.NewOrchestrator(reader, gas, elig, sub, logger)
	orch.SetGasLimits(cfg.ClaimGasLimit, cfg.TransferGasLimit)

	counts := map[core.OutcomeStatus]int{}
	for i, w := range wallets {
		if err := ctx.Err(); err != nil {
			return err
		}
		out := orch.Claim(ctx, w)
		counts[out.Status]++
		logger.Info("claim outcome",
			zap.Int("wallet", i+1),
			zap.String("address", w.Address.Hex()),
			zap.String("status", string(out.Status)),
			zap.String("tx", out.TxHash.Hex()),
			zap.String("reason", out.Reason))

		if cfg.Transfer && (out.Status == core.StatusConfirmed || out.Status == core.StatusAlreadyClaimed) {
			tr := orch.Transfer(ctx, w, nil)
			counts[core.OutcomeStatus("transfer_"+string(tr.Status))]++
			logger.Info("transfer outcome",
				zap.Int("wallet", i+1),
				zap.String("address", w.Address.Hex()),
				zap.String("status", string(tr.Status)),
				zap.String("tx", tr.TxHash.Hex()),
				zap.String("reason", tr.Reason))
		}
	}

	for status, n := range counts {
		logger.Info("summary", zap.String("status", string(status)), zap.Int("count", n))
	}
	return nil
}
