package ledger

import (
	"fmt"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Signer holds the notarizing identity's key material. It is read-only
// after construction and safe to share across concurrent notarizations.
// This package never generates, rotates, or persists keys on behalf of
// the caller; key material is injected at startup.
type Signer struct {
	account crypto.Account
}

// NewSignerFromMnemonic derives the signing key from a 25-word mnemonic
// supplied by the identity/key-storage collaborator.
func NewSignerFromMnemonic(words string) (*Signer, error) {
	words = strings.TrimSpace(words)
	if words == "" {
		return nil, fmt.Errorf("mnemonic is empty")
	}

	sk, err := mnemonic.ToPrivateKey(words)
	if err != nil {
		return nil, fmt.Errorf("derive key from mnemonic: %w", err)
	}
	account, err := crypto.AccountFromPrivateKey(sk)
	if err != nil {
		return nil, fmt.Errorf("derive account from key: %w", err)
	}
	return &Signer{account: account}, nil
}

// GenerateSigner creates a signer for a throwaway account. Intended for
// tests and local development only; the account starts unfunded.
func GenerateSigner() *Signer {
	return &Signer{account: crypto.GenerateAccount()}
}

// Address returns the account address in its canonical string form.
func (s *Signer) Address() string {
	return s.account.Address.String()
}

// SignTransaction signs txn and returns its id with the raw signed bytes.
func (s *Signer) SignTransaction(txn types.Transaction) (string, []byte, error) {
	return crypto.SignTransaction(s.account.PrivateKey, txn)
}
