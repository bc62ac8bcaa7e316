package ethereum

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/fd1az/usdt-bridge/business/blockchain/app"
	"github.com/fd1az/usdt-bridge/business/blockchain/domain"
	"github.com/fd1az/usdt-bridge/internal/apperror"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

var _ app.Submitter = (*Signer)(nil)

// NonceSender is what the signer needs from the node.
type NonceSender interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Signer signs legacy EIP-155 transactions for one account and serializes
// nonce allocation, signing and broadcast. Concurrent operations therefore
// never reuse a nonce even when the node's pending count lags behind.
type Signer struct {
	key     *ecdsa.PrivateKey
	from    common.Address
	chainID *big.Int
	signer  types.Signer
	node    NonceSender
	logger  logger.LoggerInterface

	mu       sync.Mutex
	lastUsed uint64
	hasLast  bool
}

// NewSigner creates a signer for key on chainID.
func NewSigner(key *ecdsa.PrivateKey, chainID *big.Int, node NonceSender, log logger.LoggerInterface) *Signer {
	return &Signer{
		key:     key,
		from:    crypto.PubkeyToAddress(key.PublicKey),
		chainID: new(big.Int).Set(chainID),
		signer:  types.NewEIP155Signer(chainID),
		node:    node,
		logger:  log,
	}
}

// Address returns the signing account.
func (s *Signer) Address() common.Address {
	return s.from
}

// Submit assigns the next nonce, signs and broadcasts req. A failed
// broadcast forgets the local nonce so the next call resyncs with the node.
func (s *Signer) Submit(ctx context.Context, req domain.TxRequest) (*domain.SubmittedTx, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.New(apperror.CodeInvalidInput,
			apperror.WithCause(err),
			apperror.WithContext("transaction request"))
	}

	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.node.PendingNonceAt(ctx, s.from)
	if err != nil {
		// Nothing was broadcast, so this is a submission failure whatever the
		// node said.
		return nil, apperror.Internal(apperror.CodeSubmissionError, "pending nonce", err)
	}

	nonce := pending
	if s.hasLast && s.lastUsed+1 > nonce {
		nonce = s.lastUsed + 1
	}

	tx := types.NewTransaction(nonce, req.To, value, req.GasLimit, req.GasPrice, req.Data)
	signed, err := types.SignTx(tx, s.signer, s.key)
	if err != nil {
		return nil, apperror.New(apperror.CodeSigningFailed,
			apperror.WithCause(err),
			apperror.WithContext("sign transaction"))
	}

	if err := s.node.SendTransaction(ctx, signed); err != nil {
		s.hasLast = false
		s.logger.Warn(ctx, "transaction broadcast failed",
			"nonce", nonce,
			"to", req.To.Hex(),
			"error", err,
		)
		return nil, apperror.Wrap(err, apperror.CodeSubmissionError, "send transaction")
	}

	s.lastUsed = nonce
	s.hasLast = true

	s.logger.Info(ctx, "transaction submitted",
		"tx_hash", signed.Hash().Hex(),
		"nonce", nonce,
		"to", req.To.Hex(),
		"gas_limit", req.GasLimit,
		"gas_price", req.GasPrice.String(),
	)

	return &domain.SubmittedTx{
		Hash:     signed.Hash(),
		Nonce:    nonce,
		From:     s.from,
		To:       req.To,
		Value:    value,
		GasLimit: req.GasLimit,
		GasPrice: new(big.Int).Set(req.GasPrice),
	}, nil
}
