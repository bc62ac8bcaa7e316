// Package contracts encodes and decodes call data for the ERC-20 tokens and
// the Uniswap V2 router the bridge talks to. It performs no I/O.
package contracts

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ERC20ABI covers the subset of IERC20 used for transfers and balance reads.
const ERC20ABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "_to", "type": "address"},
			{"name": "_value", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_spender", "type": "address"},
			{"name": "_value", "type": "uint256"}
		],
		"name": "approve",
		"outputs": [{"name": "", "type": "bool"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_owner", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "balance", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "decimals",
		"outputs": [{"name": "", "type": "uint8"}],
		"stateMutability": "view",
		"type": "function"
	}
]`

var (
	ErrShortCallData  = errors.New("contracts: call data shorter than a selector")
	ErrUnexpectedCall = errors.New("contracts: call data is for a different method")
)

var erc20ABI = mustParse(ERC20ABI)

func mustParse(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("contracts: invalid abi: %v", err))
	}
	return parsed
}

// PackTransfer encodes transfer(to, amount).
func PackTransfer(to common.Address, amount *big.Int) ([]byte, error) {
	return erc20ABI.Pack("transfer", to, amount)
}

// PackApprove encodes approve(spender, amount).
func PackApprove(spender common.Address, amount *big.Int) ([]byte, error) {
	return erc20ABI.Pack("approve", spender, amount)
}

// PackBalanceOf encodes balanceOf(owner).
func PackBalanceOf(owner common.Address) ([]byte, error) {
	return erc20ABI.Pack("balanceOf", owner)
}

// UnpackBalanceOf decodes the uint256 returned by balanceOf.
func UnpackBalanceOf(data []byte) (*big.Int, error) {
	out, err := erc20ABI.Unpack("balanceOf", data)
	if err != nil {
		return nil, fmt.Errorf("decode balanceOf: %w", err)
	}
	return out[0].(*big.Int), nil
}

// PackDecimals encodes decimals().
func PackDecimals() ([]byte, error) {
	return erc20ABI.Pack("decimals")
}

// UnpackDecimals decodes the uint8 returned by decimals.
func UnpackDecimals(data []byte) (uint8, error) {
	out, err := erc20ABI.Unpack("decimals", data)
	if err != nil {
		return 0, fmt.Errorf("decode decimals: %w", err)
	}
	return out[0].(uint8), nil
}

// TransferArgs are the decoded arguments of transfer or approve.
type TransferArgs struct {
	Method string
	To     common.Address
	Amount *big.Int
}

// DecodeTransfer decodes transfer or approve call data.
func DecodeTransfer(data []byte) (TransferArgs, error) {
	args, method, err := decodeInputs(erc20ABI, data)
	if err != nil {
		return TransferArgs{}, err
	}
	if method != "transfer" && method != "approve" {
		return TransferArgs{}, fmt.Errorf("%w: %s", ErrUnexpectedCall, method)
	}
	return TransferArgs{
		Method: method,
		To:     args[0].(common.Address),
		Amount: args[1].(*big.Int),
	}, nil
}

func decodeInputs(parsed abi.ABI, data []byte) ([]interface{}, string, error) {
	if len(data) < 4 {
		return nil, "", ErrShortCallData
	}
	method, err := parsed.MethodById(data[:4])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnexpectedCall, err)
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", method.Name, err)
	}
	return args, method.Name, nil
}

// Selector returns the 4-byte selector of an ERC-20 or router method.
func Selector(method string) []byte {
	if m, ok := erc20ABI.Methods[method]; ok {
		return m.ID
	}
	if m, ok := routerABI.Methods[method]; ok {
		return m.ID
	}
	return nil
}

// HasSelector reports whether data calls method.
func HasSelector(data []byte, method string) bool {
	sel := Selector(method)
	return sel != nil && len(data) >= 4 && bytes.Equal(data[:4], sel)
}
