package docchat

import (
	"crypto/ed25519"

	"github.com/docchat/docchat-server/pkg/solana"
)

var uploadDocumentInstructionDiscriminator = []byte{
	59, 81, 10, 45, 108, 131, 79, 128,
}

type UploadDocumentInstructionArgs struct {
	PdfHash       string
	AccessLevel   uint8
	DocumentIndex uint64
}

type UploadDocumentInstructionAccounts struct {
	User     ed25519.PublicKey
	Document ed25519.PublicKey
	Owner    ed25519.PublicKey
}

func NewUploadDocumentInstruction(
	accounts *UploadDocumentInstructionAccounts,
	args *UploadDocumentInstructionArgs,
) Instruction {
	var offset int

	data := make([]byte, DiscriminatorSize+
		(4+len(args.PdfHash))+ // pdf_hash
		1+ // access_level
		8) // document_index

	putDiscriminator(data, uploadDocumentInstructionDiscriminator, &offset)
	putString(data, args.PdfHash, &offset)
	putUint8(data, args.AccessLevel, &offset)
	putUint64(data, args.DocumentIndex, &offset)

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
				PublicKey:  accounts.Document,
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

func UploadDocumentInstructionFromLegacyInstruction(txn solana.Transaction, idx int) (*UploadDocumentInstructionArgs, error) {
	values, err := decodeLegacyInstruction(txn, idx, UploadDocumentInstructionName)
	if err != nil {
		return nil, err
	}

	return &UploadDocumentInstructionArgs{
		PdfHash:       values["pdf_hash"].(string),
		AccessLevel:   values["access_level"].(uint8),
		DocumentIndex: values["document_index"].(uint64),
	}, nil
}
