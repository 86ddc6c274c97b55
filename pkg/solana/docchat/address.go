package docchat

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/docchat/docchat-server/pkg/solana"
)

var (
	userAccountPrefix    = []byte("user")
	documentRecordPrefix = []byte("document")
	queryRecordPrefix    = []byte("query")
	quizRecordPrefix     = []byte("quiz")
	treasuryPrefix       = []byte("treasury")
)

type GetUserAccountAddressArgs struct {
	Owner ed25519.PublicKey
}

type GetDocumentRecordAddressArgs struct {
	Owner         ed25519.PublicKey
	DocumentIndex uint64
}

type GetQueryRecordAddressArgs struct {
	Owner      ed25519.PublicKey
	QueryIndex uint64
}

type GetQuizRecordAddressArgs struct {
	Owner     ed25519.PublicKey
	Timestamp uint64
}

func GetUserAccountAddress(args *GetUserAccountAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		userAccountPrefix,
		args.Owner,
	)
}

func GetDocumentRecordAddress(args *GetDocumentRecordAddressArgs) (ed25519.PublicKey, uint8, error) {
	indexBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(indexBytes, args.DocumentIndex)

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		documentRecordPrefix,
		args.Owner,
		indexBytes,
	)
}

func GetQueryRecordAddress(args *GetQueryRecordAddressArgs) (ed25519.PublicKey, uint8, error) {
	indexBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(indexBytes, args.QueryIndex)

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		queryRecordPrefix,
		args.Owner,
		indexBytes,
	)
}

func GetQuizRecordAddress(args *GetQuizRecordAddressArgs) (ed25519.PublicKey, uint8, error) {
	timestampBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(timestampBytes, args.Timestamp)

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		quizRecordPrefix,
		args.Owner,
		timestampBytes,
	)
}

func GetTreasuryAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		treasuryPrefix,
	)
}
