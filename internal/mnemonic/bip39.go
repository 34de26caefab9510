package mnemonic

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	bip39 "github.com/tyler-smith/go-bip39"
)

// AccountPath is the first external account of the Ethereum BIP-44 tree.
const AccountPath = "m/44'/60'/0'/0/0"

var accountPath = hdwallet.MustParseDerivationPath(AccountPath)

var (
	ErrWordCount  = errors.New("word count must be 12 or 24")
	ErrInvalidKey = errors.New("derived private key out of range")
	ErrMnemonic   = errors.New("invalid mnemonic")
)

// Credential is what leaves the generator: the phrase and the uncompressed
// public key of AccountPath. The private scalar never does.
type Credential struct {
	Mnemonic  string
	PublicKey []byte
}

// EntropyBits maps a word count to its BIP-39 entropy size.
func EntropyBits(words int) (int, error) {
	switch words {
	case 12:
		return 128, nil
	case 24:
		return 256, nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrWordCount, words)
	}
}

// Generator draws entropy from its reader. crypto/rand by default.
type Generator struct {
	rand io.Reader
}

func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Generate produces a fresh mnemonic of the given word count and its key.
func (g *Generator) Generate(words int) (Credential, error) {
	bits, err := EntropyBits(words)
	if err != nil {
		return Credential{}, err
	}
	entropy := make([]byte, bits/8)
	if _, err := io.ReadFull(g.rand, entropy); err != nil {
		return Credential{}, fmt.Errorf("generate entropy: %w", err)
	}
	mn, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return Credential{}, fmt.Errorf("generate mnemonic: %w", err)
	}
	return derive(mn)
}

// Generate uses crypto/rand.
func Generate(words int) (Credential, error) {
	return NewGenerator(nil).Generate(words)
}

// Recover re-derives the credential of an existing phrase.
func Recover(phrase string) (Credential, error) {
	mn := strings.Join(strings.Fields(phrase), " ")
	if !bip39.IsMnemonicValid(mn) {
		return Credential{}, ErrMnemonic
	}
	return derive(mn)
}

func derive(mn string) (Credential, error) {
	seed := bip39.NewSeed(mn, "")
	w, err := hdwallet.NewFromSeed(seed)
	if err != nil {
		return Credential{}, fmt.Errorf("master key: %w", err)
	}
	acct, err := w.Derive(accountPath, false)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: derive %s: %v", ErrInvalidKey, AccountPath, err)
	}
	raw, err := w.PrivateKeyBytes(acct)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	defer clear(raw)

	priv, err := gethcrypto.ToECDSA(raw)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return Credential{
		Mnemonic:  mn,
		PublicKey: gethcrypto.FromECDSAPub(&priv.PublicKey),
	}, nil
}
