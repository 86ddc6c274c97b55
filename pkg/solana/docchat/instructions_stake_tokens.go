package docchat

import (
	"crypto/ed25519"

	"github.com/docchat/docchat-server/pkg/solana"
)

var stakeTokensInstructionDiscriminator = []byte{
	136, 126, 91, 162, 40, 131, 13, 127,
}

const (
	StakeTokensInstructionArgsSize = 8 // amount

	StakeTokensInstructionSize = (DiscriminatorSize +
		StakeTokensInstructionArgsSize)
)

type StakeTokensInstructionArgs struct {
	Amount uint64
}

type StakeTokensInstructionAccounts struct {
	User  ed25519.PublicKey
	Owner ed25519.PublicKey
}

func NewStakeTokensInstruction(
	accounts *StakeTokensInstructionAccounts,
	args *StakeTokensInstructionArgs,
) Instruction {
	var offset int

	data := make([]byte, StakeTokensInstructionSize)

	putDiscriminator(data, stakeTokensInstructionDiscriminator, &offset)
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

func StakeTokensInstructionFromLegacyInstruction(txn solana.Transaction, idx int) (*StakeTokensInstructionArgs, error) {
	values, err := decodeLegacyInstruction(txn, idx, StakeTokensInstructionName)
	if err != nil {
		return nil, err
	}

	return &StakeTokensInstructionArgs{
		Amount: values["amount"].(uint64),
	}, nil
}
