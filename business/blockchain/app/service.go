package app

import (
	"context"
	"fmt"

	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

// BlockchainService exposes node checks used at startup and by health probes.
type BlockchainService struct {
	node            Node
	signer          Submitter
	expectedChainID uint64
	logger          logger.LoggerInterface
}

// NewBlockchainService creates a new BlockchainService. expectedChainID 0
// accepts whatever chain the node reports.
func NewBlockchainService(node Node, signer Submitter, expectedChainID uint64, log logger.LoggerInterface) *BlockchainService {
	return &BlockchainService{
		node:            node,
		signer:          signer,
		expectedChainID: expectedChainID,
		logger:          log,
	}
}

// VerifyChain checks the node serves the configured chain.
func (s *BlockchainService) VerifyChain(ctx context.Context) (uint64, error) {
	id, err := s.node.ChainID(ctx)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.CodeEthereumConnectionFailed, "chain id")
	}

	got := id.Uint64()
	if s.expectedChainID != 0 && got != s.expectedChainID {
		return got, apperror.New(apperror.CodeChainIDMismatch,
			apperror.WithContext(fmt.Sprintf("node reports chain %d, expected %d", got, s.expectedChainID)))
	}

	s.logger.Info(ctx, "connected to chain", "chain_id", got, "signer", s.signer.Address().Hex())
	return got, nil
}

// Ping reads the head block number.
func (s *BlockchainService) Ping(ctx context.Context) error {
	_, err := s.node.BlockNumber(ctx)
	return err
}

// SignerAddress returns the submitting account in hex.
func (s *BlockchainService) SignerAddress() string {
	return s.signer.Address().Hex()
}
