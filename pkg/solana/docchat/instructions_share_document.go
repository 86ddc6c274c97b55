package docchat

import (
	"crypto/ed25519"

	"github.com/docchat/docchat-server/pkg/solana"
)

var shareDocumentInstructionDiscriminator = []byte{
	21, 207, 234, 38, 150, 61, 192, 253,
}

const (
	ShareDocumentInstructionArgsSize = 1 // new_access_level

	ShareDocumentInstructionSize = (DiscriminatorSize +
		ShareDocumentInstructionArgsSize)
)

type ShareDocumentInstructionArgs struct {
	NewAccessLevel uint8
}

type ShareDocumentInstructionAccounts struct {
	User     ed25519.PublicKey
	Document ed25519.PublicKey
	Owner    ed25519.PublicKey
}

func NewShareDocumentInstruction(
	accounts *ShareDocumentInstructionAccounts,
	args *ShareDocumentInstructionArgs,
) Instruction {
	var offset int

	data := make([]byte, ShareDocumentInstructionSize)

	putDiscriminator(data, shareDocumentInstructionDiscriminator, &offset)
	putUint8(data, args.NewAccessLevel, &offset)

	return Instruction{
		Program: PROGRAM_ID,

		Data: data,

		// No account is created, so the system program isn't referenced.
		Accounts: []AccountMeta{
			{
				PublicKey:  accounts.User,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Document,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Owner,
				IsWritable: false,
				IsSigner:   true,
			},
		},
	}
}

func ShareDocumentInstructionFromLegacyInstruction(txn solana.Transaction, idx int) (*ShareDocumentInstructionArgs, error) {
	values, err := decodeLegacyInstruction(txn, idx, ShareDocumentInstructionName)
	if err != nil {
		return nil, err
	}

	return &ShareDocumentInstructionArgs{
		NewAccessLevel: values["new_access_level"].(uint8),
	}, nil
}
