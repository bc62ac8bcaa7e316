// Package config provides configuration loading and validation.
package config

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Ethereum  EthereumConfig  `mapstructure:"ethereum"`
	Tokens    TokensConfig    `mapstructure:"tokens"`
	Uniswap   UniswapConfig   `mapstructure:"uniswap"`
	Bridge    BridgeConfig    `mapstructure:"bridge"`
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// EthereumConfig holds the node endpoint and the signing identity.
// RPCURL and PrivateKey have no defaults.
type EthereumConfig struct {
	RPCURL        string `mapstructure:"rpc_url"`
	ChainID       uint64 `mapstructure:"chain_id"` // 0 = ask the node
	PrivateKey    string `mapstructure:"private_key"`
	WalletAddress string `mapstructure:"wallet_address"`
}

// TokensConfig holds ERC-20 contract addresses.
type TokensConfig struct {
	USDTAddress string `mapstructure:"usdt_address"`
	USDCAddress string `mapstructure:"usdc_address"`
}

// UniswapConfig holds Uniswap V2 contract addresses.
type UniswapConfig struct {
	RouterAddress string `mapstructure:"router_address"`
}

// BridgeConfig tunes the execution pipeline.
type BridgeConfig struct {
	MinConfirmations uint64        `mapstructure:"min_confirmations"`
	PollInterval     time.Duration `mapstructure:"poll_interval"`
	SwapWaitTimeout  time.Duration `mapstructure:"swap_wait_timeout"`
	DemoAmountETH    string        `mapstructure:"demo_amount_eth"`
	DecimalsCacheTTL time.Duration `mapstructure:"decimals_cache_ttl"`
	ExplorerURL      string        `mapstructure:"explorer_url"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	HealthPort      int           `mapstructure:"health_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimitPerMin int           `mapstructure:"rate_limit_per_min"`
}

// StorageConfig selects the TransactionRecord store.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory | postgres
	DSN    string `mapstructure:"dsn"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	TraceProvider  string `mapstructure:"trace_provider"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("BRIDGE")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	_ = v.BindEnv("app.name", "BRIDGE_APP_NAME", "SERVICE_NAME")
	_ = v.BindEnv("app.environment", "BRIDGE_ENVIRONMENT", "ENVIRONMENT")
	_ = v.BindEnv("app.log_level", "BRIDGE_LOG_LEVEL", "LOG_LEVEL")

	// Ethereum
	_ = v.BindEnv("ethereum.rpc_url", "BRIDGE_ETH_RPC_URL", "ETH_RPC_URL")
	_ = v.BindEnv("ethereum.chain_id", "BRIDGE_ETH_CHAIN_ID", "ETH_CHAIN_ID")
	_ = v.BindEnv("ethereum.private_key", "BRIDGE_ETH_PRIVATE_KEY", "ETH_PRIVATE_KEY")
	_ = v.BindEnv("ethereum.wallet_address", "BRIDGE_ETH_WALLET_ADDRESS", "ETH_WALLET_ADDRESS")

	// Tokens
	_ = v.BindEnv("tokens.usdt_address", "BRIDGE_USDT_ADDRESS", "USDT_CONTRACT_ADDRESS")
	_ = v.BindEnv("tokens.usdc_address", "BRIDGE_USDC_ADDRESS", "USDC_CONTRACT_ADDRESS")

	// Uniswap
	_ = v.BindEnv("uniswap.router_address", "BRIDGE_UNISWAP_ROUTER", "UNISWAP_ROUTER")

	// Bridge
	_ = v.BindEnv("bridge.min_confirmations", "BRIDGE_MIN_CONFIRMATIONS")
	_ = v.BindEnv("bridge.poll_interval", "BRIDGE_POLL_INTERVAL")
	_ = v.BindEnv("bridge.swap_wait_timeout", "BRIDGE_SWAP_WAIT_TIMEOUT")
	_ = v.BindEnv("bridge.explorer_url", "BRIDGE_EXPLORER_URL")
	_ = v.BindEnv("bridge.demo_amount_eth", "BRIDGE_DEMO_AMOUNT_ETH")
	_ = v.BindEnv("bridge.decimals_cache_ttl", "BRIDGE_DECIMALS_CACHE_TTL")

	// Server
	_ = v.BindEnv("server.port", "BRIDGE_PORT", "PORT")
	_ = v.BindEnv("server.health_port", "BRIDGE_HEALTH_PORT")
	_ = v.BindEnv("server.rate_limit_per_min", "BRIDGE_RATE_LIMIT_PER_MIN")

	// Storage
	_ = v.BindEnv("storage.driver", "BRIDGE_STORAGE_DRIVER")
	_ = v.BindEnv("storage.dsn", "BRIDGE_DATABASE_URL", "DATABASE_URL")

	// Telemetry
	_ = v.BindEnv("telemetry.enabled", "BRIDGE_OTEL_ENABLED", "OTEL_ENABLED")
	_ = v.BindEnv("telemetry.service_name", "BRIDGE_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	_ = v.BindEnv("telemetry.trace_provider", "BRIDGE_OTEL_TRACE_PROVIDER")
	_ = v.BindEnv("telemetry.otlp_endpoint", "BRIDGE_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = v.BindEnv("telemetry.otlp_headers", "BRIDGE_OTEL_HEADERS", "OTEL_EXPORTER_OTLP_HEADERS")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "usdt-bridge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Ethereum mainnet public contracts
	v.SetDefault("tokens.usdt_address", "0xdAC17F958D2ee523a2206206994597C13D831ec7")
	v.SetDefault("tokens.usdc_address", "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	v.SetDefault("uniswap.router_address", "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")

	// Bridge defaults
	v.SetDefault("bridge.min_confirmations", 1)
	v.SetDefault("bridge.poll_interval", "4s")
	v.SetDefault("bridge.swap_wait_timeout", "5m")
	v.SetDefault("bridge.demo_amount_eth", "0.0001")
	v.SetDefault("bridge.decimals_cache_ttl", "1h")
	v.SetDefault("bridge.explorer_url", "https://etherscan.io")

	// Server defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit_per_min", 30)

	// Storage defaults
	v.SetDefault("storage.driver", "memory")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "usdt-bridge")
	v.SetDefault("telemetry.trace_provider", "zipkin")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration. Missing node or key settings fail
// here, before anything dials out.
func (c *Config) Validate() error {
	if c.Ethereum.RPCURL == "" {
		return fmt.Errorf("ethereum.rpc_url is required")
	}
	u, err := url.Parse(c.Ethereum.RPCURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid ethereum.rpc_url: %q", c.Ethereum.RPCURL)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("unsupported ethereum.rpc_url scheme: %q", u.Scheme)
	}

	if c.Ethereum.PrivateKey == "" {
		return fmt.Errorf("ethereum.private_key is required")
	}
	key, err := c.Ethereum.SigningKey()
	if err != nil {
		return err
	}
	if c.Ethereum.WalletAddress != "" {
		if !common.IsHexAddress(c.Ethereum.WalletAddress) {
			return fmt.Errorf("invalid ethereum.wallet_address: %s", c.Ethereum.WalletAddress)
		}
		derived := crypto.PubkeyToAddress(key.PublicKey)
		if derived != common.HexToAddress(c.Ethereum.WalletAddress) {
			return fmt.Errorf("ethereum.wallet_address %s does not match the private key (%s)",
				c.Ethereum.WalletAddress, derived.Hex())
		}
	}

	for name, addr := range map[string]string{
		"tokens.usdt_address":    c.Tokens.USDTAddress,
		"tokens.usdc_address":    c.Tokens.USDCAddress,
		"uniswap.router_address": c.Uniswap.RouterAddress,
	} {
		if !common.IsHexAddress(addr) || common.HexToAddress(addr) == (common.Address{}) {
			return fmt.Errorf("invalid %s: %s", name, addr)
		}
	}

	if c.Bridge.MinConfirmations == 0 {
		return fmt.Errorf("bridge.min_confirmations must be at least 1")
	}
	if c.Bridge.PollInterval <= 0 {
		return fmt.Errorf("bridge.poll_interval must be positive")
	}
	if d, err := decimal.NewFromString(c.Bridge.DemoAmountETH); err != nil || !d.IsPositive() {
		return fmt.Errorf("invalid bridge.demo_amount_eth: %q", c.Bridge.DemoAmountETH)
	}

	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver: %q", c.Storage.Driver)
	}

	return nil
}

// SigningKey parses the configured private key. A 0x prefix is optional.
func (c *EthereumConfig) SigningKey() (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(c.PrivateKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid ethereum.private_key: %w", err)
	}
	return key, nil
}

// USDT returns the USDT contract address.
func (c *TokensConfig) USDT() common.Address {
	return common.HexToAddress(c.USDTAddress)
}

// USDC returns the USDC contract address.
func (c *TokensConfig) USDC() common.Address {
	return common.HexToAddress(c.USDCAddress)
}

// Router returns the V2 router address.
func (c *UniswapConfig) Router() common.Address {
	return common.HexToAddress(c.RouterAddress)
}

// DemoAmount returns the native amount sent by demo swaps.
func (c *BridgeConfig) DemoAmount() decimal.Decimal {
	return decimal.RequireFromString(c.DemoAmountETH)
}
