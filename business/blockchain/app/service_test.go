package app_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/usdt-bridge/business/blockchain/app"
	"github.com/fd1az/usdt-bridge/business/blockchain/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

type stubNode struct {
	app.Node
	chainID *big.Int
	err     error
}

func (n stubNode) ChainID(context.Context) (*big.Int, error) { return n.chainID, n.err }

type stubSigner struct{}

func (stubSigner) Address() common.Address { return common.Address{1} }

func (stubSigner) Submit(context.Context, domain.TxRequest) (*domain.SubmittedTx, error) {
	return nil, errors.New("not used")
}

func TestVerifyChain(t *testing.T) {
	tests := []struct {
		name     string
		node     stubNode
		expected uint64
		wantCode apperror.Code
	}{
		{"matches", stubNode{chainID: big.NewInt(1)}, 1, ""},
		{"any chain accepted", stubNode{chainID: big.NewInt(11155111)}, 0, ""},
		{"mismatch", stubNode{chainID: big.NewInt(5)}, 1, apperror.CodeChainIDMismatch},
		{"node down", stubNode{err: errors.New("dial tcp: refused")}, 1, apperror.CodeEthereumConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := app.NewBlockchainService(tt.node, stubSigner{}, tt.expected, logger.NewDiscard())
			_, err := svc.VerifyChain(context.Background())

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := apperror.GetCode(err); got != tt.wantCode {
				t.Errorf("expected %s, got %s (%v)", tt.wantCode, got, err)
			}
		})
	}
}
