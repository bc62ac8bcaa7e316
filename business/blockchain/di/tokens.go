// Package di contains dependency injection tokens for the blockchain context.
package di

import (
	"github.com/fd1az/usdt-bridge/business/blockchain/app"
	"github.com/fd1az/usdt-bridge/internal/di"
)

// Public service tokens - exposed to other modules
var (
	BlockchainService = di.NewToken[*app.BlockchainService]("blockchain.BlockchainService")
	Node              = di.NewToken[app.Node]("blockchain.Node")
	Signer            = di.NewToken[app.Submitter]("blockchain.Signer")
)

func GetBlockchainService(c di.ServiceRegistry) *app.BlockchainService {
	return di.GetToken(c, BlockchainService)
}

func GetNode(c di.ServiceRegistry) app.Node {
	return di.GetToken(c, Node)
}

func GetSigner(c di.ServiceRegistry) app.Submitter {
	return di.GetToken(c, Signer)
}
