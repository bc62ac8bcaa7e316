package contracts

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// RouterV2ABI covers getAmountsOut and swapExactTokensForTokens of
// IUniswapV2Router02.
const RouterV2ABI = `[
	{
		"inputs": [
			{"internalType": "uint256", "name": "amountIn", "type": "uint256"},
			{"internalType": "address[]", "name": "path", "type": "address[]"}
		],
		"name": "getAmountsOut",
		"outputs": [{"internalType": "uint256[]", "name": "amounts", "type": "uint256[]"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "amountIn", "type": "uint256"},
			{"internalType": "uint256", "name": "amountOutMin", "type": "uint256"},
			{"internalType": "address[]", "name": "path", "type": "address[]"},
			{"internalType": "address", "name": "to", "type": "address"},
			{"internalType": "uint256", "name": "deadline", "type": "uint256"}
		],
		"name": "swapExactTokensForTokens",
		"outputs": [{"internalType": "uint256[]", "name": "amounts", "type": "uint256[]"}],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

var routerABI = mustParse(RouterV2ABI)

// PackGetAmountsOut encodes getAmountsOut(amountIn, path).
func PackGetAmountsOut(amountIn *big.Int, path []common.Address) ([]byte, error) {
	return routerABI.Pack("getAmountsOut", amountIn, path)
}

// UnpackGetAmountsOut decodes the amounts array, one entry per path hop.
func UnpackGetAmountsOut(data []byte) ([]*big.Int, error) {
	out, err := routerABI.Unpack("getAmountsOut", data)
	if err != nil {
		return nil, fmt.Errorf("decode getAmountsOut: %w", err)
	}
	return out[0].([]*big.Int), nil
}

// SwapArgs are the arguments of swapExactTokensForTokens.
type SwapArgs struct {
	AmountIn     *big.Int
	AmountOutMin *big.Int
	Path         []common.Address
	To           common.Address
	Deadline     *big.Int
}

// PackSwapExactTokensForTokens encodes the swap call.
func PackSwapExactTokensForTokens(a SwapArgs) ([]byte, error) {
	return routerABI.Pack("swapExactTokensForTokens", a.AmountIn, a.AmountOutMin, a.Path, a.To, a.Deadline)
}

// DecodeSwapExactTokensForTokens decodes swap call data.
func DecodeSwapExactTokensForTokens(data []byte) (SwapArgs, error) {
	args, method, err := decodeInputs(routerABI, data)
	if err != nil {
		return SwapArgs{}, err
	}
	if method != "swapExactTokensForTokens" {
		return SwapArgs{}, fmt.Errorf("%w: %s", ErrUnexpectedCall, method)
	}
	return SwapArgs{
		AmountIn:     args[0].(*big.Int),
		AmountOutMin: args[1].(*big.Int),
		Path:         args[2].([]common.Address),
		To:           args[3].(common.Address),
		Deadline:     args[4].(*big.Int),
	}, nil
}
