package domain_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/usdt-bridge/business/blockchain/domain"
)

func TestTxRequest_Validate(t *testing.T) {
	to := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	gwei := domain.GweiToWei(1)

	tests := []struct {
		name    string
		req     domain.TxRequest
		wantErr bool
	}{
		{"valid", domain.TxRequest{To: to, GasLimit: 21000, GasPrice: gwei}, false},
		{"zero recipient", domain.TxRequest{GasLimit: 21000, GasPrice: gwei}, true},
		{"zero gas limit", domain.TxRequest{To: to, GasPrice: gwei}, true},
		{"missing gas price", domain.TxRequest{To: to, GasLimit: 21000}, true},
		{"negative value", domain.TxRequest{To: to, GasLimit: 21000, GasPrice: gwei, Value: big.NewInt(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnits(t *testing.T) {
	price := domain.GweiToWei(40)
	if got := domain.Gwei(price).String(); got != "40" {
		t.Errorf("expected 40 gwei, got %s", got)
	}

	cost := domain.TxCost(21000, price)
	if got := domain.Ether(cost).String(); got != "0.00084" {
		t.Errorf("expected 0.00084 ETH, got %s", got)
	}
}
