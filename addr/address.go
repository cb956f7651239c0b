// Package addr checks and normalizes hex account addresses.
//
// The explorer reports transaction senders in lowercase hex with the 0x prefix,
// so only addresses in that form can match a sender.
package addr

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

var ErrInvalidAddress = errors.New("invalid hex address")

func Validate(s string) error {
	if !common.IsHexAddress(s) {
		return errors.Wrapf(ErrInvalidAddress, "%q", s)
	}
	return nil
}

// Canonical returns the lowercase 0x-prefixed form of the address.
func Canonical(s string) (string, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	return strings.ToLower(common.HexToAddress(s).Hex()), nil
}

func MustCanonical(s string) string {
	a, err := Canonical(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsCanonical reports whether the address is already in the form the explorer uses.
func IsCanonical(s string) bool {
	c, err := Canonical(s)
	return err == nil && c == s
}

// Checksum returns the EIP-55 mixed-case form of the address.
func Checksum(s string) (string, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	return common.HexToAddress(s).Hex(), nil
}
