package ethereum_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"

	"github.com/fd1az/usdt-bridge/business/blockchain/domain"
	bcethereum "github.com/fd1az/usdt-bridge/business/blockchain/infra/ethereum"
	"github.com/fd1az/usdt-bridge/internal/circuitbreaker"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

func TestSignerAndGateway_SimulatedChain(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping simulated chain test in short mode")
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	from := crypto.PubkeyToAddress(key.PublicKey)

	backend := simulated.NewBackend(types.GenesisAlloc{
		from: {Balance: new(big.Int).Mul(big.NewInt(10), big.NewInt(1e18))},
	})
	defer backend.Close()

	ctx := context.Background()
	gw, err := bcethereum.NewGateway(backend.Client(), circuitbreaker.DefaultConfig("simulated"), logger.NewDiscard())
	if err != nil {
		t.Fatalf("NewGateway: %v", err)
	}

	chainID, err := gw.ChainID(ctx)
	if err != nil {
		t.Fatalf("ChainID: %v", err)
	}
	price, err := gw.SuggestGasPrice(ctx)
	if err != nil {
		t.Fatalf("SuggestGasPrice: %v", err)
	}

	signer := bcethereum.NewSigner(key, chainID, gw, logger.NewDiscard())
	req := transferRequest()
	req.GasPrice = new(big.Int).Mul(price, big.NewInt(2))

	sent, err := signer.Submit(ctx, req)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := gw.TransactionReceipt(ctx, sent.Hash); err != domain.ErrNotFound {
		t.Fatalf("expected pending receipt to be ErrNotFound, got %v", err)
	}

	backend.Commit()

	receipt, err := gw.TransactionReceipt(ctx, sent.Hash)
	if err != nil {
		t.Fatalf("TransactionReceipt: %v", err)
	}
	if !receipt.Succeeded() {
		t.Fatalf("expected successful receipt, got status %d", receipt.Status)
	}

	head, err := gw.BlockNumber(ctx)
	if err != nil {
		t.Fatalf("BlockNumber: %v", err)
	}
	if head < receipt.BlockNumber {
		t.Errorf("head %d behind receipt block %d", head, receipt.BlockNumber)
	}
}
