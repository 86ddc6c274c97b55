package transaction

import (
	"github.com/pkg/errors"

	"github.com/docchat/docchat-server/pkg/common"
	"github.com/docchat/docchat-server/pkg/solana"
	"github.com/docchat/docchat-server/pkg/solana/docchat"
)

var (
	// ErrLedgerUnavailable indicates a ledger fetch failed after the
	// client's internal retries. The caller may retry the whole build.
	ErrLedgerUnavailable = errors.New("ledger unavailable")
)

// UnsignedTransaction is a fully assembled transaction draft awaiting
// client-side signatures. It is never mutated after construction; its
// lifetime ends when it's serialized for hand-off to the wallet.
type UnsignedTransaction struct {
	Transaction solana.Transaction
	Signers     []*common.Account
}

// ToBase64 serializes the draft for transport to the signing wallet.
func (u *UnsignedTransaction) ToBase64() string {
	return u.Transaction.ToBase64()
}

// SignerAddresses lists the addresses the caller must obtain signatures
// from, in signing order.
func (u *UnsignedTransaction) SignerAddresses() []string {
	addresses := make([]string, len(u.Signers))
	for i, signer := range u.Signers {
		addresses[i] = signer.ToBase58()
	}
	return addresses
}

// Builder assembles unsigned transaction drafts for the doc-chat program.
// It holds no mutable state beyond the shared ledger client and is safe
// for concurrent use.
type Builder struct {
	client solana.Client
}

func NewBuilder(client solana.Client) *Builder {
	return &Builder{
		client: client,
	}
}

func (b *Builder) BuildInitializeUser(owner string) (*UnsignedTransaction, error) {
	ownerAccount, err := common.NewAccountFromPublicKeyString(owner)
	if err != nil {
		return nil, err
	}

	userAddress, _, err := docchat.GetUserAccountAddress(&docchat.GetUserAccountAddressArgs{
		Owner: ownerAccount.ToPublicKey(),
	})
	if err != nil {
		return nil, err
	}

	instruction := docchat.NewInitializeUserInstruction(&docchat.InitializeUserInstructionAccounts{
		User:  userAddress,
		Owner: ownerAccount.ToPublicKey(),
	})

	return b.assemble(ownerAccount, instruction)
}

func (b *Builder) BuildUploadDocument(owner, pdfHash string, accessLevel uint8, documentIndex uint64) (*UnsignedTransaction, error) {
	ownerAccount, err := common.NewAccountFromPublicKeyString(owner)
	if err != nil {
		return nil, err
	}

	userAddress, _, err := docchat.GetUserAccountAddress(&docchat.GetUserAccountAddressArgs{
		Owner: ownerAccount.ToPublicKey(),
	})
	if err != nil {
		return nil, err
	}

	documentAddress, _, err := docchat.GetDocumentRecordAddress(&docchat.GetDocumentRecordAddressArgs{
		Owner:         ownerAccount.ToPublicKey(),
		DocumentIndex: documentIndex,
	})
	if err != nil {
		return nil, err
	}

	instruction := docchat.NewUploadDocumentInstruction(
		&docchat.UploadDocumentInstructionAccounts{
			User:     userAddress,
			Document: documentAddress,
			Owner:    ownerAccount.ToPublicKey(),
		},
		&docchat.UploadDocumentInstructionArgs{
			PdfHash:       pdfHash,
			AccessLevel:   accessLevel,
			DocumentIndex: documentIndex,
		},
	)

	return b.assemble(ownerAccount, instruction)
}

func (b *Builder) BuildChatQuery(owner, queryText string, queryIndex uint64) (*UnsignedTransaction, error) {
	ownerAccount, err := common.NewAccountFromPublicKeyString(owner)
	if err != nil {
		return nil, err
	}

	userAddress, _, err := docchat.GetUserAccountAddress(&docchat.GetUserAccountAddressArgs{
		Owner: ownerAccount.ToPublicKey(),
	})
	if err != nil {
		return nil, err
	}

	queryAddress, _, err := docchat.GetQueryRecordAddress(&docchat.GetQueryRecordAddressArgs{
		Owner:      ownerAccount.ToPublicKey(),
		QueryIndex: queryIndex,
	})
	if err != nil {
		return nil, err
	}

	instruction := docchat.NewChatQueryInstruction(
		&docchat.ChatQueryInstructionAccounts{
			User:  userAddress,
			Query: queryAddress,
			Owner: ownerAccount.ToPublicKey(),
		},
		&docchat.ChatQueryInstructionArgs{
			QueryText:  queryText,
			QueryIndex: queryIndex,
		},
	)

	return b.assemble(ownerAccount, instruction)
}

func (b *Builder) BuildPurchaseTokens(owner string, amount uint64) (*UnsignedTransaction, error) {
	ownerAccount, err := common.NewAccountFromPublicKeyString(owner)
	if err != nil {
		return nil, err
	}

	userAddress, _, err := docchat.GetUserAccountAddress(&docchat.GetUserAccountAddressArgs{
		Owner: ownerAccount.ToPublicKey(),
	})
	if err != nil {
		return nil, err
	}

	instruction := docchat.NewPurchaseTokensInstruction(
		&docchat.PurchaseTokensInstructionAccounts{
			User:  userAddress,
			Owner: ownerAccount.ToPublicKey(),
		},
		&docchat.PurchaseTokensInstructionArgs{
			Amount: amount,
		},
	)

	return b.assemble(ownerAccount, instruction)
}

func (b *Builder) BuildShareDocument(owner string, documentIndex uint64, newAccessLevel uint8) (*UnsignedTransaction, error) {
	ownerAccount, err := common.NewAccountFromPublicKeyString(owner)
	if err != nil {
		return nil, err
	}

	userAddress, _, err := docchat.GetUserAccountAddress(&docchat.GetUserAccountAddressArgs{
		Owner: ownerAccount.ToPublicKey(),
	})
	if err != nil {
		return nil, err
	}

	documentAddress, _, err := docchat.GetDocumentRecordAddress(&docchat.GetDocumentRecordAddressArgs{
		Owner:         ownerAccount.ToPublicKey(),
		DocumentIndex: documentIndex,
	})
	if err != nil {
		return nil, err
	}

	instruction := docchat.NewShareDocumentInstruction(
		&docchat.ShareDocumentInstructionAccounts{
			User:     userAddress,
			Document: documentAddress,
			Owner:    ownerAccount.ToPublicKey(),
		},
		&docchat.ShareDocumentInstructionArgs{
			NewAccessLevel: newAccessLevel,
		},
	)

	return b.assemble(ownerAccount, instruction)
}

func (b *Builder) BuildGenerateQuiz(owner, documentHash string, timestamp uint64) (*UnsignedTransaction, error) {
	ownerAccount, err := common.NewAccountFromPublicKeyString(owner)
	if err != nil {
		return nil, err
	}

	userAddress, _, err := docchat.GetUserAccountAddress(&docchat.GetUserAccountAddressArgs{
		Owner: ownerAccount.ToPublicKey(),
	})
	if err != nil {
		return nil, err
	}

	quizAddress, _, err := docchat.GetQuizRecordAddress(&docchat.GetQuizRecordAddressArgs{
		Owner:     ownerAccount.ToPublicKey(),
		Timestamp: timestamp,
	})
	if err != nil {
		return nil, err
	}

	instruction := docchat.NewGenerateQuizInstruction(
		&docchat.GenerateQuizInstructionAccounts{
			User:  userAddress,
			Quiz:  quizAddress,
			Owner: ownerAccount.ToPublicKey(),
		},
		&docchat.GenerateQuizInstructionArgs{
			DocumentHash: documentHash,
			Timestamp:    timestamp,
		},
	)

	return b.assemble(ownerAccount, instruction)
}

func (b *Builder) BuildStakeTokens(owner string, amount uint64) (*UnsignedTransaction, error) {
	ownerAccount, err := common.NewAccountFromPublicKeyString(owner)
	if err != nil {
		return nil, err
	}

	userAddress, _, err := docchat.GetUserAccountAddress(&docchat.GetUserAccountAddressArgs{
		Owner: ownerAccount.ToPublicKey(),
	})
	if err != nil {
		return nil, err
	}

	instruction := docchat.NewStakeTokensInstruction(
		&docchat.StakeTokensInstructionAccounts{
			User:  userAddress,
			Owner: ownerAccount.ToPublicKey(),
		},
		&docchat.StakeTokensInstructionArgs{
			Amount: amount,
		},
	)

	return b.assemble(ownerAccount, instruction)
}

func (b *Builder) BuildUnstakeTokens(owner string, amount uint64) (*UnsignedTransaction, error) {
	ownerAccount, err := common.NewAccountFromPublicKeyString(owner)
	if err != nil {
		return nil, err
	}

	userAddress, _, err := docchat.GetUserAccountAddress(&docchat.GetUserAccountAddressArgs{
		Owner: ownerAccount.ToPublicKey(),
	})
	if err != nil {
		return nil, err
	}

	instruction := docchat.NewUnstakeTokensInstruction(
		&docchat.UnstakeTokensInstructionAccounts{
			User:  userAddress,
			Owner: ownerAccount.ToPublicKey(),
		},
		&docchat.UnstakeTokensInstructionArgs{
			Amount: amount,
		},
	)

	return b.assemble(ownerAccount, instruction)
}

// assemble compiles the instruction into a transaction, stamps it with a
// recent blockhash and records the owner as fee payer and sole required
// signer.
func (b *Builder) assemble(owner *common.Account, instruction docchat.Instruction) (*UnsignedTransaction, error) {
	txn := solana.NewTransaction(
		owner.ToPublicKey(),
		instruction.ToLegacyInstruction(),
	)

	blockhash, err := b.client.GetLatestBlockhash()
	if err != nil {
		return nil, errors.Wrap(ErrLedgerUnavailable, err.Error())
	}
	txn.SetBlockhash(blockhash)

	return &UnsignedTransaction{
		Transaction: txn,
		Signers:     []*common.Account{owner},
	}, nil
}
