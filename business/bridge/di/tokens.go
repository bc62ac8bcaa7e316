// Package di contains dependency injection tokens for the bridge context.
package di

import (
	"github.com/fd1az/usdt-bridge/business/bridge/app"
	"github.com/fd1az/usdt-bridge/business/bridge/infra/broadcast"
	"github.com/fd1az/usdt-bridge/internal/di"
)

// Public service tokens - exposed to other modules
var (
	BridgeService = di.NewToken[*app.BridgeService]("bridge.BridgeService")
	RecordStore   = di.NewToken[app.RecordStore]("bridge.RecordStore")
	Hub           = di.NewToken[*broadcast.Hub]("bridge.Hub")
)

func GetBridgeService(c di.ServiceRegistry) *app.BridgeService {
	return di.GetToken(c, BridgeService)
}

func GetRecordStore(c di.ServiceRegistry) app.RecordStore {
	return di.GetToken(c, RecordStore)
}

func GetHub(c di.ServiceRegistry) *broadcast.Hub {
	return di.GetToken(c, Hub)
}
