package contracts_test

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/fd1az/usdt-bridge/internal/contracts"
)

var (
	usdt      = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	usdc      = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	recipient = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

func TestSelectors(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"transfer", "a9059cbb"},
		{"approve", "095ea7b3"},
		{"balanceOf", "70a08231"},
		{"decimals", "313ce567"},
		{"getAmountsOut", "d06ca61f"},
		{"swapExactTokensForTokens", "38ed1739"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			if got := hex.EncodeToString(contracts.Selector(tt.method)); got != tt.want {
				t.Errorf("selector(%s) = %s, want %s", tt.method, got, tt.want)
			}
		})
	}
}

func TestTransfer_Decode(t *testing.T) {
	data, err := contracts.PackTransfer(recipient, big.NewInt(99_000_000))
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if len(data) != 4+32+32 {
		t.Fatalf("unexpected call data length %d", len(data))
	}

	args, err := contracts.DecodeTransfer(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if args.Method != "transfer" || args.To != recipient || args.Amount.Int64() != 99_000_000 {
		t.Errorf("unexpected args: %+v", args)
	}
}

func TestDecodeTransfer_RejectsOtherCalls(t *testing.T) {
	if _, err := contracts.DecodeTransfer([]byte{0x01}); !errors.Is(err, contracts.ErrShortCallData) {
		t.Errorf("expected ErrShortCallData, got %v", err)
	}

	data, _ := contracts.PackBalanceOf(recipient)
	if _, err := contracts.DecodeTransfer(data); !errors.Is(err, contracts.ErrUnexpectedCall) {
		t.Errorf("expected ErrUnexpectedCall, got %v", err)
	}
}

func TestUnpackDecimalsAndBalance(t *testing.T) {
	uint8Ty, _ := abi.NewType("uint8", "", nil)
	uint256Ty, _ := abi.NewType("uint256", "", nil)

	raw, err := abi.Arguments{{Type: uint8Ty}}.Pack(uint8(6))
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	dec, err := contracts.UnpackDecimals(raw)
	if err != nil || dec != 6 {
		t.Errorf("UnpackDecimals = %d, %v", dec, err)
	}

	raw, err = abi.Arguments{{Type: uint256Ty}}.Pack(big.NewInt(12345))
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	bal, err := contracts.UnpackBalanceOf(raw)
	if err != nil || bal.Int64() != 12345 {
		t.Errorf("UnpackBalanceOf = %v, %v", bal, err)
	}

	if _, err := contracts.UnpackDecimals(nil); err == nil {
		t.Error("expected error for empty return data")
	}
}

func TestSwap_EncodeDecode(t *testing.T) {
	in := contracts.SwapArgs{
		AmountIn:     big.NewInt(1_000_000),
		AmountOutMin: big.NewInt(950),
		Path:         []common.Address{usdc, usdt},
		To:           recipient,
		Deadline:     big.NewInt(1_700_000_300),
	}

	data, err := contracts.PackSwapExactTokensForTokens(in)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !contracts.HasSelector(data, "swapExactTokensForTokens") {
		t.Fatal("expected swap selector")
	}

	out, err := contracts.DecodeSwapExactTokensForTokens(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.AmountOutMin.Int64() != 950 || len(out.Path) != 2 || out.Path[1] != usdt || out.To != recipient {
		t.Errorf("unexpected decoded args: %+v", out)
	}
}

func TestUnpackGetAmountsOut(t *testing.T) {
	arrTy, _ := abi.NewType("uint256[]", "", nil)
	raw, err := abi.Arguments{{Type: arrTy}}.Pack([]*big.Int{big.NewInt(1_000_000), big.NewInt(1000)})
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	amounts, err := contracts.UnpackGetAmountsOut(raw)
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if len(amounts) != 2 || amounts[1].Int64() != 1000 {
		t.Errorf("unexpected amounts: %v", amounts)
	}
}
