package docchat

import (
	"bytes"
	"crypto/ed25519"
	"errors"

	"github.com/docchat/docchat-server/pkg/solana"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("5AhcUJj8WtAqR6yfff76HyZFX7LWovRZ1bcgN9n3Rwa7")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
)

// AccountMeta represents the account information required
// for building transactions.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsWritable bool
	IsSigner   bool
}

// Instruction represents a transaction instruction.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

func (i Instruction) ToLegacyInstruction() solana.Instruction {
	legacyAccountMeta := make([]solana.AccountMeta, len(i.Accounts))
	for i, accountMeta := range i.Accounts {
		legacyAccountMeta[i] = solana.AccountMeta{
			PublicKey:  accountMeta.PublicKey,
			IsSigner:   accountMeta.IsSigner,
			IsWritable: accountMeta.IsWritable,
		}
	}

	return solana.Instruction{
		Program:  PROGRAM_ID,
		Accounts: legacyAccountMeta,
		Data:     i.Data,
	}
}

// decodeLegacyInstruction decodes the instruction at idx against the named
// spec, validating the program id and discriminator along the way. All of
// the typed FromLegacyInstruction decoders are layered on top of it so the
// binary layout lives in one place.
func decodeLegacyInstruction(txn solana.Transaction, idx int, name string) (map[string]interface{}, error) {
	if idx >= len(txn.Message.Instructions) {
		return nil, ErrInvalidInstructionData
	}

	instruction := txn.Message.Instructions[idx]

	programAccount := txn.Message.Accounts[instruction.ProgramIndex]
	if !bytes.Equal(PROGRAM_ADDRESS, programAccount) {
		return nil, ErrInvalidProgram
	}

	if len(instruction.Data) < DiscriminatorSize {
		return nil, ErrInvalidInstructionData
	}

	spec, ok := programRegistry.LookupByDiscriminator(instruction.Data[:DiscriminatorSize])
	if !ok || spec.Name != name {
		return nil, ErrInvalidInstructionData
	}

	values, err := Decode(spec, instruction.Data[DiscriminatorSize:])
	if err != nil {
		return nil, ErrInvalidInstructionData
	}
	return values, nil
}
