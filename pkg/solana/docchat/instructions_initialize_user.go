package docchat

import (
	"crypto/ed25519"

	"github.com/docchat/docchat-server/pkg/solana"
)

var initializeUserInstructionDiscriminator = []byte{
	111, 17, 185, 250, 60, 122, 38, 254,
}

const (
	InitializeUserInstructionArgsSize = 0

	InitializeUserInstructionSize = (DiscriminatorSize +
		InitializeUserInstructionArgsSize)
)

type InitializeUserInstructionAccounts struct {
	User  ed25519.PublicKey
	Owner ed25519.PublicKey
}

func NewInitializeUserInstruction(
	accounts *InitializeUserInstructionAccounts,
) Instruction {
	var offset int

	data := make([]byte, InitializeUserInstructionSize)
	putDiscriminator(data, initializeUserInstructionDiscriminator, &offset)

	return Instruction{
		Program: PROGRAM_ID,

		Data: data,

		Accounts: []AccountMeta{
			{
				PublicKey:  accounts.User,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Owner,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func InitializeUserInstructionFromLegacyInstruction(txn solana.Transaction, idx int) error {
	_, err := decodeLegacyInstruction(txn, idx, InitializeUserInstructionName)
	return err
}
