package crypto

import (
	"strings"
	"testing"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

// TestDeriveAddressKnownKey checks the address of private key 1, a widely
// published vector.
func TestDeriveAddressKnownKey(t *testing.T) {
	priv, err := gethcrypto.HexToECDSA(
		"0000000000000000000000000000000000000000000000000000000000000001",
	)
	require.NoError(t, err)

	addr, err := DeriveAddress(gethcrypto.FromECDSAPub(&priv.PublicKey))
	require.NoError(t, err)
	require.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", addr)
}

func TestDeriverMatchesGeth(t *testing.T) {
	d := NewDeriver()
	for i := 0; i < 20; i++ {
		priv, err := gethcrypto.GenerateKey()
		require.NoError(t, err)

		pub := gethcrypto.FromECDSAPub(&priv.PublicKey)
		got, err := d.Address(pub)
		require.NoError(t, err)
		require.Equal(t, gethcrypto.PubkeyToAddress(priv.PublicKey).Hex(), got)

		// Same input, same output, with a reused hasher.
		again, err := d.Address(pub)
		require.NoError(t, err)
		require.Equal(t, got, again)
	}
}

func TestAddressShapeAndChecksumRoundTrip(t *testing.T) {
	d := NewDeriver()
	for i := 0; i < 20; i++ {
		priv, err := gethcrypto.GenerateKey()
		require.NoError(t, err)

		addr, err := d.Address(gethcrypto.FromECDSAPub(&priv.PublicKey))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(addr, "0x"))
		require.Len(t, addr[2:], AddressLen)

		again, err := Checksum(strings.ToLower(addr))
		require.NoError(t, err)
		require.Equal(t, addr, again)

		again, err = Checksum(strings.ToLower(addr[2:]))
		require.NoError(t, err)
		require.Equal(t, addr, again)
	}
}

func TestAddressRejectsBadKeys(t *testing.T) {
	priv, err := gethcrypto.GenerateKey()
	require.NoError(t, err)

	compressed := gethcrypto.CompressPubkey(&priv.PublicKey)
	_, err = DeriveAddress(compressed)
	require.ErrorIs(t, err, ErrPublicKey)

	pub := gethcrypto.FromECDSAPub(&priv.PublicKey)
	pub[0] = 0x02
	_, err = DeriveAddress(pub)
	require.ErrorIs(t, err, ErrPublicKey)
}

func TestChecksumRejectsBadInput(t *testing.T) {
	_, err := Checksum("0x1234")
	require.ErrorIs(t, err, ErrAddress)

	_, err = Checksum("0x" + strings.Repeat("zz", 20))
	require.ErrorIs(t, err, ErrAddress)
}
