package docchat

import (
	"crypto/ed25519"

	"github.com/docchat/docchat-server/pkg/solana"
)

var generateQuizInstructionDiscriminator = []byte{
	76, 94, 29, 50, 73, 31, 238, 135,
}

type GenerateQuizInstructionArgs struct {
	DocumentHash string
	Timestamp    uint64
}

type GenerateQuizInstructionAccounts struct {
	User  ed25519.PublicKey
	Quiz  ed25519.PublicKey
	Owner ed25519.PublicKey
}

func NewGenerateQuizInstruction(
	accounts *GenerateQuizInstructionAccounts,
	args *GenerateQuizInstructionArgs,
) Instruction {
	var offset int

	data := make([]byte, DiscriminatorSize+
		(4+len(args.DocumentHash))+ // document_hash
		8) // timestamp

	putDiscriminator(data, generateQuizInstructionDiscriminator, &offset)
	putString(data, args.DocumentHash, &offset)
	putUint64(data, args.Timestamp, &offset)

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
				PublicKey:  accounts.Quiz,
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

func GenerateQuizInstructionFromLegacyInstruction(txn solana.Transaction, idx int) (*GenerateQuizInstructionArgs, error) {
	values, err := decodeLegacyInstruction(txn, idx, GenerateQuizInstructionName)
	if err != nil {
		return nil, err
	}

	return &GenerateQuizInstructionArgs{
		DocumentHash: values["document_hash"].(string),
		Timestamp:    values["timestamp"].(uint64),
	}, nil
}
