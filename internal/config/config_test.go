package config_test

import (
	"strings"
	"testing"

	"github.com/fd1az/usdt-bridge/internal/config"
)

// Well-known development key (first account of the default hardhat/anvil mnemonic).
const (
	devKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BRIDGE_ETH_RPC_URL", "http://127.0.0.1:8545")
	t.Setenv("BRIDGE_ETH_PRIVATE_KEY", devKey)
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tokens.USDT().Hex() != "0xdAC17F958D2ee523a2206206994597C13D831ec7" {
		t.Errorf("unexpected USDT default: %s", cfg.Tokens.USDT().Hex())
	}
	if cfg.Uniswap.Router().Hex() != "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D" {
		t.Errorf("unexpected router default: %s", cfg.Uniswap.Router().Hex())
	}
	if cfg.Bridge.MinConfirmations != 1 {
		t.Errorf("expected 1 confirmation, got %d", cfg.Bridge.MinConfirmations)
	}
	if cfg.Bridge.PollInterval.String() != "4s" {
		t.Errorf("expected 4s poll interval, got %s", cfg.Bridge.PollInterval)
	}
	if cfg.Bridge.DemoAmount().String() != "0.0001" {
		t.Errorf("expected 0.0001 demo amount, got %s", cfg.Bridge.DemoAmount())
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("expected memory storage, got %s", cfg.Storage.Driver)
	}
}

func TestLoad_FailsFast(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing rpc url",
			env:     map[string]string{"BRIDGE_ETH_PRIVATE_KEY": devKey},
			wantErr: "ethereum.rpc_url is required",
		},
		{
			name:    "missing private key",
			env:     map[string]string{"BRIDGE_ETH_RPC_URL": "http://127.0.0.1:8545"},
			wantErr: "ethereum.private_key is required",
		},
		{
			name: "malformed private key",
			env: map[string]string{
				"BRIDGE_ETH_RPC_URL":     "http://127.0.0.1:8545",
				"BRIDGE_ETH_PRIVATE_KEY": "0x1234",
			},
			wantErr: "invalid ethereum.private_key",
		},
		{
			name: "unsupported rpc scheme",
			env: map[string]string{
				"BRIDGE_ETH_RPC_URL":     "ftp://node.example",
				"BRIDGE_ETH_PRIVATE_KEY": devKey,
			},
			wantErr: "unsupported ethereum.rpc_url scheme",
		},
		{
			name: "wallet does not match key",
			env: map[string]string{
				"BRIDGE_ETH_RPC_URL":        "http://127.0.0.1:8545",
				"BRIDGE_ETH_PRIVATE_KEY":    devKey,
				"BRIDGE_ETH_WALLET_ADDRESS": "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			},
			wantErr: "does not match the private key",
		},
		{
			name: "postgres without dsn",
			env: map[string]string{
				"BRIDGE_ETH_RPC_URL":     "http://127.0.0.1:8545",
				"BRIDGE_ETH_PRIVATE_KEY": devKey,
				"BRIDGE_STORAGE_DRIVER":  "postgres",
			},
			wantErr: "storage.dsn is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Empty values count as unset for viper.
			for _, k := range []string{
				"BRIDGE_ETH_RPC_URL", "BRIDGE_ETH_PRIVATE_KEY", "BRIDGE_ETH_WALLET_ADDRESS",
				"ETH_RPC_URL", "ETH_PRIVATE_KEY", "ETH_WALLET_ADDRESS", "DATABASE_URL",
			} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load("")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_MatchingWalletAddress(t *testing.T) {
	setRequired(t)
	t.Setenv("BRIDGE_ETH_WALLET_ADDRESS", devAddress)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key, err := cfg.Ethereum.SigningKey()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key == nil {
		t.Fatal("expected a parsed key")
	}
}

func TestLoad_UnprefixedAliases(t *testing.T) {
	t.Setenv("BRIDGE_ETH_RPC_URL", "")
	t.Setenv("BRIDGE_ETH_PRIVATE_KEY", "")
	t.Setenv("ETH_RPC_URL", "wss://node.example/ws")
	t.Setenv("ETH_PRIVATE_KEY", strings.TrimPrefix(devKey, "0x"))

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Ethereum.RPCURL != "wss://node.example/ws" {
		t.Errorf("expected alias to be honoured, got %q", cfg.Ethereum.RPCURL)
	}
}
