package docchat

import (
	"crypto/ed25519"

	"github.com/docchat/docchat-server/pkg/solana"
)

var unstakeTokensInstructionDiscriminator = []byte{
	58, 119, 215, 143, 203, 223, 32, 86,
}

const (
	UnstakeTokensInstructionArgsSize = 8 // amount

	UnstakeTokensInstructionSize = (DiscriminatorSize +
		UnstakeTokensInstructionArgsSize)
)

type UnstakeTokensInstructionArgs struct {
	Amount uint64
}

type UnstakeTokensInstructionAccounts struct {
	User  ed25519.PublicKey
	Owner ed25519.PublicKey
}

func NewUnstakeTokensInstruction(
	accounts *UnstakeTokensInstructionAccounts,
	args *UnstakeTokensInstructionArgs,
) Instruction {
	var offset int

	data := make([]byte, UnstakeTokensInstructionSize)

	putDiscriminator(data, unstakeTokensInstructionDiscriminator, &offset)
	putUint64(data, args.Amount, &offset)

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

func UnstakeTokensInstructionFromLegacyInstruction(txn solana.Transaction, idx int) (*UnstakeTokensInstructionArgs, error) {
	values, err := decodeLegacyInstruction(txn, idx, UnstakeTokensInstructionName)
	if err != nil {
		return nil, err
	}

	return &UnstakeTokensInstructionArgs{
		Amount: values["amount"].(uint64),
	}, nil
}
