// Package asset models the coins and tokens the bridge moves.
// On-chain quantities are big.Int base units; decimal.Decimal only appears at
// the edges (request parsing and display).
package asset

import "github.com/ethereum/go-ethereum/common"

// Asset is the metadata of a native coin, an ERC-20 token or a fiat currency.
type Asset struct {
	symbol   string
	name     string
	decimals uint8
	address  common.Address
	kind     Kind
}

// Kind distinguishes how an asset is held.
type Kind uint8

const (
	KindFiat Kind = iota
	KindNative
	KindToken
)

// NewToken describes an ERC-20 token deployed at address.
func NewToken(symbol, name string, address common.Address, decimals uint8) *Asset {
	if address == (common.Address{}) {
		panic("asset: token address cannot be zero")
	}
	return newAsset(symbol, name, address, decimals, KindToken)
}

// NewNative describes a chain's native coin.
func NewNative(symbol, name string, decimals uint8) *Asset {
	return newAsset(symbol, name, common.Address{}, decimals, KindNative)
}

// NewFiat describes an off-chain currency.
func NewFiat(symbol, name string, decimals uint8) *Asset {
	return newAsset(symbol, name, common.Address{}, decimals, KindFiat)
}

func newAsset(symbol, name string, address common.Address, decimals uint8, kind Kind) *Asset {
	if symbol == "" {
		panic("asset: empty symbol")
	}
	if decimals > 36 {
		panic("asset: suspicious decimals (>36)")
	}
	return &Asset{symbol: symbol, name: name, decimals: decimals, address: address, kind: kind}
}

// WithDecimals returns a copy using the precision reported by the contract.
// Token decimals are read on chain at runtime and may differ from the
// registered default.
func (a *Asset) WithDecimals(decimals uint8) *Asset {
	c := *a
	c.decimals = decimals
	return &c
}

// WithAddress returns a copy deployed at a different contract address.
func (a *Asset) WithAddress(address common.Address) *Asset {
	c := *a
	c.address = address
	return &c
}

func (a *Asset) Symbol() string { return a.symbol }
func (a *Asset) Decimals() uint8 { return a.decimals }
func (a *Asset) Address() common.Address { return a.address }
func (a *Asset) IsNative() bool { return a.kind == KindNative }
func (a *Asset) IsToken() bool { return a.kind == KindToken }
func (a *Asset) String() string { return a.symbol }

// Name returns the human-readable name, falling back to the symbol.
func (a *Asset) Name() string {
	if a.name == "" {
		return a.symbol
	}
	return a.name
}

// Equals compares assets by kind, symbol and contract address.
func (a *Asset) Equals(other *Asset) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.kind == other.kind && a.symbol == other.symbol && a.address == other.address
}
