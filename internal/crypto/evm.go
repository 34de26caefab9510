package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

const (
	// PublicKeyLen is the size of an uncompressed secp256k1 point: 0x04 || X || Y.
	PublicKeyLen = 65
	// AddressLen is the number of hex characters of an address without 0x.
	AddressLen = 2 * common.AddressLength
)

var (
	ErrPublicKey = errors.New("public key must be 65 bytes uncompressed (0x04 prefix)")
	ErrAddress   = errors.New("address must be 40 hex characters")
)

// Deriver turns uncompressed public keys into EIP-55 addresses.
// It reuses its Keccak state between calls and must stay on one goroutine.
type Deriver struct {
	hasher hash.Hash
	sum    [32]byte
}

func NewDeriver() *Deriver {
	return &Deriver{hasher: sha3.NewLegacyKeccak256()}
}

// Address returns the checksummed "0x..." address for pub.
func (d *Deriver) Address(pub []byte) (string, error) {
	if len(pub) != PublicKeyLen || pub[0] != 0x04 {
		return "", fmt.Errorf("%w: got %d bytes", ErrPublicKey, len(pub))
	}
	d.hasher.Reset()
	d.hasher.Write(pub[1:])
	digest := d.hasher.Sum(d.sum[:0])
	return common.BytesToAddress(digest[12:]).Hex(), nil
}

// DeriveAddress is Deriver.Address with a throwaway hasher.
func DeriveAddress(pub []byte) (string, error) {
	return NewDeriver().Address(pub)
}

// Checksum applies EIP-55 casing to a 40-hex address, with or without 0x.
func Checksum(addr string) (string, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X")
	if len(h) != AddressLen {
		return "", fmt.Errorf("%w: got %d", ErrAddress, len(h))
	}
	raw, err := hex.DecodeString(h)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAddress, err)
	}
	return common.BytesToAddress(raw).Hex(), nil
}
