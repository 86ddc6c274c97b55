package docchat

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat/docchat-server/pkg/solana"
)

func TestGetUserAccountAddress(t *testing.T) {
	owner := mustBase58Decode("A1WsiTaL6fPei2xcqDPiVnRDvRwpCjne3votXZmrQe86")

	address, bump, err := GetUserAccountAddress(&GetUserAccountAddressArgs{
		Owner: owner,
	})
	require.NoError(t, err)

	// Derivation is deterministic
	rederived, rederivedBump, err := GetUserAccountAddress(&GetUserAccountAddressArgs{
		Owner: owner,
	})
	require.NoError(t, err)
	assert.EqualValues(t, address, rederived)
	assert.Equal(t, bump, rederivedBump)

	// The returned bump reproduces the address directly
	direct, err := solana.CreateProgramAddress(PROGRAM_ID, userAccountPrefix, owner, []byte{bump})
	require.NoError(t, err)
	assert.EqualValues(t, address, direct)

	other, _, err := GetUserAccountAddress(&GetUserAccountAddressArgs{
		Owner: mustBase58Decode("codeHy87wGD5oMRLG75qKqsSi1vWE3oxNyYmXo5F9YR"),
	})
	require.NoError(t, err)
	assert.NotEqualValues(t, address, other)
}

func TestGetDocumentRecordAddress(t *testing.T) {
	owner := mustBase58Decode("A1WsiTaL6fPei2xcqDPiVnRDvRwpCjne3votXZmrQe86")

	address, bump, err := GetDocumentRecordAddress(&GetDocumentRecordAddressArgs{
		Owner:         owner,
		DocumentIndex: 3,
	})
	require.NoError(t, err)

	indexBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(indexBytes, 3)

	direct, err := solana.CreateProgramAddress(PROGRAM_ID, documentRecordPrefix, owner, indexBytes, []byte{bump})
	require.NoError(t, err)
	assert.EqualValues(t, address, direct)

	// A different index yields a different record
	other, _, err := GetDocumentRecordAddress(&GetDocumentRecordAddressArgs{
		Owner:         owner,
		DocumentIndex: 4,
	})
	require.NoError(t, err)
	assert.NotEqualValues(t, address, other)
}

func TestGetQueryRecordAddress(t *testing.T) {
	owner := mustBase58Decode("A1WsiTaL6fPei2xcqDPiVnRDvRwpCjne3votXZmrQe86")

	address, _, err := GetQueryRecordAddress(&GetQueryRecordAddressArgs{
		Owner:      owner,
		QueryIndex: 0,
	})
	require.NoError(t, err)

	// Same seeds through a different record namespace must not collide
	document, _, err := GetDocumentRecordAddress(&GetDocumentRecordAddressArgs{
		Owner:         owner,
		DocumentIndex: 0,
	})
	require.NoError(t, err)
	assert.NotEqualValues(t, address, document)
}

func TestGetQuizRecordAddress(t *testing.T) {
	owner := mustBase58Decode("A1WsiTaL6fPei2xcqDPiVnRDvRwpCjne3votXZmrQe86")

	address, bump, err := GetQuizRecordAddress(&GetQuizRecordAddressArgs{
		Owner:     owner,
		Timestamp: 1700000000,
	})
	require.NoError(t, err)

	timestampBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(timestampBytes, 1700000000)

	direct, err := solana.CreateProgramAddress(PROGRAM_ID, quizRecordPrefix, owner, timestampBytes, []byte{bump})
	require.NoError(t, err)
	assert.EqualValues(t, address, direct)
}

func TestGetTreasuryAddress(t *testing.T) {
	address, bump, err := GetTreasuryAddress()
	require.NoError(t, err)

	direct, err := solana.CreateProgramAddress(PROGRAM_ID, treasuryPrefix, []byte{bump})
	require.NoError(t, err)
	assert.EqualValues(t, address, direct)
}
