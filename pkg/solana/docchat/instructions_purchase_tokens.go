package docchat

import (
	"crypto/ed25519"

	"github.com/docchat/docchat-server/pkg/solana"
)

var purchaseTokensInstructionDiscriminator = []byte{
	142, 1, 16, 160, 115, 120, 55, 254,
}

const (
	PurchaseTokensInstructionArgsSize = 8 // amount

	PurchaseTokensInstructionSize = (DiscriminatorSize +
		PurchaseTokensInstructionArgsSize)
)

type PurchaseTokensInstructionArgs struct {
	Amount uint64
}

type PurchaseTokensInstructionAccounts struct {
	User  ed25519.PublicKey
	Owner ed25519.PublicKey
}

func NewPurchaseTokensInstruction(
	accounts *PurchaseTokensInstructionAccounts,
	args *PurchaseTokensInstructionArgs,
) Instruction {
	var offset int

	data := make([]byte, PurchaseTokensInstructionSize)

	putDiscriminator(data, purchaseTokensInstructionDiscriminator, &offset)
	putUint64(data, args.Amount, &offset)

	return Instruction{
		Program: PROGRAM_ID,

		Data: data,

		// The deployed program funds the treasury internally, so its PDA
		// isn't part of the account list.
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

func PurchaseTokensInstructionFromLegacyInstruction(txn solana.Transaction, idx int) (*PurchaseTokensInstructionArgs, error) {
	values, err := decodeLegacyInstruction(txn, idx, PurchaseTokensInstructionName)
	if err != nil {
		return nil, err
	}

	return &PurchaseTokensInstructionArgs{
		Amount: values["amount"].(uint64),
	}, nil
}
