// Package monolith provides the application container and module interface.
package monolith

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/fd1az/usdt-bridge/internal/config"
	"github.com/fd1az/usdt-bridge/internal/di"
	"github.com/fd1az/usdt-bridge/internal/logger"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	EthClient() *ethclient.Client
	Services() di.ServiceRegistry

	// OnClose registers a release hook run by Close in reverse order.
	OnClose(fn func())
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config    *config.Config
	logger    logger.LoggerInterface
	ethClient *ethclient.Client
	container di.Container

	mu      sync.Mutex
	closers []func()
}

// New dials the configured node and creates the container. The RPC URL is
// validated by config.Load; there is no fallback endpoint.
func New(ctx context.Context, cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	ethClient, err := ethclient.DialContext(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial ethereum node: %w", err)
	}

	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("ethClient", ethClient)

	return &app{
		config:    cfg,
		logger:    log,
		ethClient: ethClient,
		container: container,
	}, nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) EthClient() *ethclient.Client {
	return a.ethClient
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

func (a *app) OnClose(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, fn)
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close runs the registered hooks, then closes the node connection.
func (a *app) Close() error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	if a.ethClient != nil {
		a.ethClient.Close()
	}
	return nil
}
