package asset

import "github.com/ethereum/go-ethereum/common"

// ChainIDEthereum is the Ethereum mainnet chain id.
const ChainIDEthereum = 1

// Ethereum mainnet contract addresses
var (
	AddrUSDTEthereum     = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	AddrUSDCEthereum     = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	AddrUniswapV2Router  = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	AddrUniswapV2Factory = common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")
)

// Well-known assets
var (
	ETH  = NewNative("ETH", "Ethereum", 18)
	USDT = NewToken("USDT", "Tether USD", AddrUSDTEthereum, 6)
	USDC = NewToken("USDC", "USD Coin", AddrUSDCEthereum, 6)
	USD  = NewFiat("USD", "US Dollar", 2)
)
