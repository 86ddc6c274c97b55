package common

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidPublicKey is returned when caller input does not parse as
	// a 32-byte public key. Not retryable.
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// Key is a validated 32-byte ed25519 public key, carried alongside its
// canonical base58 form.
type Key struct {
	bytesValue  []byte
	stringValue string
}

func NewKeyFromBytes(value []byte) (*Key, error) {
	k := &Key{
		bytesValue:  value,
		stringValue: base58.Encode(value),
	}

	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// NewKeyFromString parses a public key from its base58 form. Hex strings
// are accepted as a fallback and left-padded to 32 bytes, matching what
// wallets historically sent us.
func NewKeyFromString(value string) (*Key, error) {
	bytesValue, err := base58.Decode(value)
	if err != nil || len(bytesValue) != ed25519.PublicKeySize {
		hexValue, hexErr := hex.DecodeString(value)
		if hexErr != nil || len(hexValue) == 0 || len(hexValue) > ed25519.PublicKeySize {
			return nil, errors.Wrapf(ErrInvalidPublicKey, "value %s is not base58 or hex", value)
		}

		bytesValue = make([]byte, ed25519.PublicKeySize)
		copy(bytesValue[ed25519.PublicKeySize-len(hexValue):], hexValue)
	}

	return NewKeyFromBytes(bytesValue)
}

func (k *Key) ToBytes() []byte {
	return k.bytesValue
}

func (k *Key) ToPublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(k.bytesValue)
}

func (k *Key) ToBase58() string {
	return k.stringValue
}

func (k *Key) Validate() error {
	if k == nil {
		return errors.Wrap(ErrInvalidPublicKey, "key is nil")
	}

	if len(k.bytesValue) != ed25519.PublicKeySize {
		return errors.Wrap(ErrInvalidPublicKey, "key must be an ed25519 public key")
	}

	if base58.Encode(k.bytesValue) != k.stringValue {
		return errors.Wrap(ErrInvalidPublicKey, "bytes and string representation don't match")
	}

	return nil
}
