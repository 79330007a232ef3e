package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ErrInvalidAddress is returned when a string matches neither supported
// chain address format.
var ErrInvalidAddress = errors.New("invalid wallet address")

// ChainKind tags a wallet address with the chain format it belongs to.
type ChainKind int

const (
	// ChainCosmos is a bech32-encoded Nibiru account address.
	ChainCosmos ChainKind = iota
	// ChainEVM is a 0x-prefixed 20-byte hex address.
	ChainEVM
)

func (k ChainKind) String() string {
	if k == ChainEVM {
		return "evm"
	}
	return "cosmos"
}

const (
	cosmosPrefix = "nibiru1"
	// bech32 data alphabet; 1, b, i and o are excluded by the encoding.
	bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	// account addresses encode to 38 data chars, contract addresses to more;
	// 90 is the overall bech32 length limit.
	minCosmosLen = len(cosmosPrefix) + 32
	maxCosmosLen = 90
)

// WalletAddress is a validated chain address. Cosmos addresses keep their
// original case (bech32 is treated as opaque), EVM addresses compare
// case-insensitively on the backend side.
type WalletAddress struct {
	Value string
	Kind  ChainKind
}

// ClassifyAddress validates raw as one of the two supported address formats.
func ClassifyAddress(raw string) (WalletAddress, error) {
	s := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(s, cosmosPrefix):
		if len(s) < minCosmosLen || len(s) > maxCosmosLen || !isBech32Body(s[len(cosmosPrefix):]) {
			return WalletAddress{}, errors.Wrapf(ErrInvalidAddress, "%q", raw)
		}
		return WalletAddress{Value: s, Kind: ChainCosmos}, nil
	case strings.HasPrefix(s, "0x") && common.IsHexAddress(s):
		return WalletAddress{Value: s, Kind: ChainEVM}, nil
	}
	return WalletAddress{}, errors.Wrapf(ErrInvalidAddress, "%q", raw)
}

func isBech32Body(body string) bool {
	for i := 0; i < len(body); i++ {
		if !strings.ContainsRune(bech32Charset, rune(body[i])) {
			return false
		}
	}
	return len(body) > 0
}

// Short returns a shortened display form for headers and logs.
func (a WalletAddress) Short() string {
	if len(a.Value) < 16 {
		return a.Value
	}
	if a.Kind == ChainEVM {
		return fmt.Sprintf("%s...%s", a.Value[:8], a.Value[len(a.Value)-6:])
	}
	return fmt.Sprintf("%s...%s", a.Value[:10], a.Value[len(a.Value)-6:])
}
