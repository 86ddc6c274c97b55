package common

import (
	"crypto/ed25519"
)

// Account is a validated public key identity. The backend never holds the
// corresponding private key; signing happens client-side.
type Account struct {
	publicKey *Key
}

func NewAccountFromPublicKey(publicKey *Key) (*Account, error) {
	account := &Account{
		publicKey: publicKey,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

func NewAccountFromPublicKeyBytes(publicKey []byte) (*Account, error) {
	key, err := NewKeyFromBytes(publicKey)
	if err != nil {
		return nil, err
	}
	return NewAccountFromPublicKey(key)
}

func NewAccountFromPublicKeyString(publicKey string) (*Account, error) {
	key, err := NewKeyFromString(publicKey)
	if err != nil {
		return nil, err
	}
	return NewAccountFromPublicKey(key)
}

func (a *Account) PublicKey() *Key {
	return a.publicKey
}

func (a *Account) ToPublicKey() ed25519.PublicKey {
	return a.publicKey.ToPublicKey()
}

func (a *Account) ToBase58() string {
	return a.publicKey.ToBase58()
}

func (a *Account) Validate() error {
	if a == nil {
		return ErrInvalidPublicKey
	}
	return a.publicKey.Validate()
}
