package mnemonic

import (
	"bytes"
	mrand "math/rand/v2"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip32"
	bip39 "github.com/tyler-smith/go-bip39"
)

const abandon = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon about"

func TestGenerateWordCounts(t *testing.T) {
	for _, words := range []int{12, 24} {
		cred, err := Generate(words)
		require.NoError(t, err)
		require.Len(t, strings.Fields(cred.Mnemonic), words)
		require.True(t, bip39.IsMnemonicValid(cred.Mnemonic))

		// The public key must be a point on the curve.
		require.Len(t, cred.PublicKey, 65)
		_, err = btcec.ParsePubKey(cred.PublicKey)
		require.NoError(t, err)
	}
}

func TestGenerateRejectsWordCount(t *testing.T) {
	for _, words := range []int{0, 11, 15, 18, 25} {
		_, err := Generate(words)
		require.ErrorIs(t, err, ErrWordCount)
	}
}

// TestDerivationMatchesBIP32 derives the same path through go-bip32 and
// compares public keys.
func TestDerivationMatchesBIP32(t *testing.T) {
	cred, err := Generate(24)
	require.NoError(t, err)

	key, err := bip32.NewMasterKey(bip39.NewSeed(cred.Mnemonic, ""))
	require.NoError(t, err)
	for _, idx := range []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + 60,
		bip32.FirstHardenedChild,
		0,
		0,
	} {
		key, err = key.NewChildKey(idx)
		require.NoError(t, err)
	}

	priv, err := gethcrypto.ToECDSA(key.Key)
	require.NoError(t, err)
	require.Equal(t, gethcrypto.FromECDSAPub(&priv.PublicKey), cred.PublicKey)
}

func TestRecoverKnownVector(t *testing.T) {
	cred, err := Recover(abandon)
	require.NoError(t, err)

	pub, err := gethcrypto.UnmarshalPubkey(cred.PublicKey)
	require.NoError(t, err)
	require.Equal(t,
		"0x9858EfFD232B4033E47d90003D41EC34EcaEda94",
		gethcrypto.PubkeyToAddress(*pub).Hex(),
	)
}

func TestRecoverNormalizesSpacing(t *testing.T) {
	cred, err := Recover("  " + strings.ReplaceAll(abandon, " ", "\t ") + "\n")
	require.NoError(t, err)
	require.Equal(t, abandon, cred.Mnemonic)
}

func TestRecoverRejectsInvalid(t *testing.T) {
	_, err := Recover("abandon abandon abandon")
	require.ErrorIs(t, err, ErrMnemonic)

	_, err = Recover(strings.Replace(abandon, "about", "abandon", 1))
	require.ErrorIs(t, err, ErrMnemonic)
}

func TestGeneratorSeededIsDeterministic(t *testing.T) {
	seed := [32]byte{7}
	a := NewGenerator(mrand.NewChaCha8(seed))
	b := NewGenerator(mrand.NewChaCha8(seed))

	for i := 0; i < 3; i++ {
		ca, err := a.Generate(12)
		require.NoError(t, err)
		cb, err := b.Generate(12)
		require.NoError(t, err)
		require.Equal(t, ca, cb)

		// And Recover agrees with Generate.
		rc, err := Recover(ca.Mnemonic)
		require.NoError(t, err)
		require.Equal(t, ca, rc)
	}
}

func TestGenerateEntropyFailure(t *testing.T) {
	g := NewGenerator(bytes.NewReader([]byte{1, 2, 3}))
	_, err := g.Generate(12)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidKey)
}
