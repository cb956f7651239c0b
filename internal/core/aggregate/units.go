package aggregate

import (
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/tonindexer/gasused/internal/core"
)

const (
	EtherDecimals = 18

	// 10^78 does not fit into 256 bits
	maxDecimals = 77
)

var etherUnit = uint256.NewInt(params.Ether)

// FormatEther renders a wei amount in ether, e.g. "0.000021".
func FormatEther(wei *uint256.Int) string {
	return formatUnit(wei, etherUnit, EtherDecimals)
}

// FormatUnits renders amount / 10^decimals without trailing zeros.
func FormatUnits(amount *uint256.Int, decimals int) (string, error) {
	if decimals < 0 || decimals > maxDecimals {
		return "", errors.Wrapf(core.ErrInvalidArg, "unsupported decimals %d", decimals)
	}
	unit := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals)))
	return formatUnit(amount, unit, decimals), nil
}

func formatUnit(amount, unit *uint256.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.Dec()
	}

	quo, rem := new(uint256.Int).DivMod(amount, unit, new(uint256.Int))
	if rem.IsZero() {
		return quo.Dec()
	}

	frac := rem.Dec()
	frac = strings.Repeat("0", decimals-len(frac)) + frac

	return quo.Dec() + "." + strings.TrimRight(frac, "0")
}
