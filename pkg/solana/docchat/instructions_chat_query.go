package docchat

import (
	"crypto/ed25519"

	"github.com/docchat/docchat-server/pkg/solana"
)

var chatQueryInstructionDiscriminator = []byte{
	89, 224, 210, 50, 148, 82, 144, 243,
}

type ChatQueryInstructionArgs struct {
	QueryText  string
	QueryIndex uint64
}

type ChatQueryInstructionAccounts struct {
	User  ed25519.PublicKey
	Query ed25519.PublicKey
	Owner ed25519.PublicKey
}

func NewChatQueryInstruction(
	accounts *ChatQueryInstructionAccounts,
	args *ChatQueryInstructionArgs,
) Instruction {
	var offset int

	data := make([]byte, DiscriminatorSize+
		(4+len(args.QueryText))+ // query_text
		8) // query_index

	putDiscriminator(data, chatQueryInstructionDiscriminator, &offset)
	putString(data, args.QueryText, &offset)
	putUint64(data, args.QueryIndex, &offset)

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
				PublicKey:  accounts.Query,
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

func ChatQueryInstructionFromLegacyInstruction(txn solana.Transaction, idx int) (*ChatQueryInstructionArgs, error) {
	values, err := decodeLegacyInstruction(txn, idx, ChatQueryInstructionName)
	if err != nil {
		return nil, err
	}

	return &ChatQueryInstructionArgs{
		QueryText:  values["query_text"].(string),
		QueryIndex: values["query_index"].(uint64),
	}, nil
}
