package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat/docchat-server/pkg/solana"
	"github.com/docchat/docchat-server/pkg/solana/docchat"
)

var testSignature = base58.Encode(make([]byte, 64))

func newTestVerifier(client solana.Client) *Verifier {
	return NewVerifier(client, withManualTestOverrides(&testOverrides{
		verificationMaxRetries: 3,
		verificationRetryDelay: time.Millisecond,
	}))
}

func chatQueryTransaction(t *testing.T, queryText string, queryIndex uint64) solana.ConfirmedTransaction {
	owner := mustDecode(t, testOwner)

	instruction := docchat.NewChatQueryInstruction(
		&docchat.ChatQueryInstructionAccounts{
			User:  mustDecode(t, "kinXdEcpDQeHPEuQnqmUgtYykqKGVFq6CeVX5iAHJq6"),
			Query: mustDecode(t, "codeHy87wGD5oMRLG75qKqsSi1vWE3oxNyYmXo5F9YR"),
			Owner: owner,
		},
		&docchat.ChatQueryInstructionArgs{
			QueryText:  queryText,
			QueryIndex: queryIndex,
		},
	)

	return solana.ConfirmedTransaction{
		Transaction: solana.NewTransaction(owner, instruction.ToLegacyInstruction()),
	}
}

func mustDecode(t *testing.T, value string) []byte {
	decoded, err := base58.Decode(value)
	require.NoError(t, err)
	return decoded
}

func TestVerifier_Verified(t *testing.T) {
	client := &fakeClient{txn: chatQueryTransaction(t, "hi", 3)}
	verifier := newTestVerifier(client)

	verified, values, err := verifier.Verify(context.Background(), testSignature, docchat.ChatQueryInstructionName, map[string]interface{}{
		"query_text":  "hi",
		"query_index": uint64(3),
	})
	require.NoError(t, err)
	assert.True(t, verified)
	assert.Equal(t, map[string]interface{}{
		"query_text":  "hi",
		"query_index": uint64(3),
	}, values)
	assert.Equal(t, 1, client.txnCalls)
}

func TestVerifier_Rejected_FieldMismatch(t *testing.T) {
	client := &fakeClient{txn: chatQueryTransaction(t, "hi", 3)}
	verifier := newTestVerifier(client)

	verified, _, err := verifier.Verify(context.Background(), testSignature, docchat.ChatQueryInstructionName, map[string]interface{}{
		"query_text":  "bye",
		"query_index": uint64(3),
	})
	require.NoError(t, err)
	assert.False(t, verified)

	// Semantic mismatches are terminal; re-fetching can't change them.
	assert.Equal(t, 1, client.txnCalls)
}

func TestVerifier_Rejected_OnChainError(t *testing.T) {
	txn := chatQueryTransaction(t, "hi", 3)
	txn.Err = solana.NewTransactionError(solana.TransactionErrorAccountNotFound)

	client := &fakeClient{txn: txn}
	verifier := newTestVerifier(client)

	verified, _, err := verifier.Verify(context.Background(), testSignature, docchat.ChatQueryInstructionName, nil)
	require.NoError(t, err)
	assert.False(t, verified)
	assert.Equal(t, 1, client.txnCalls)
}

func TestVerifier_Rejected_WrongProgram(t *testing.T) {
	owner := mustDecode(t, testOwner)
	foreign := docchat.NewStakeTokensInstruction(
		&docchat.StakeTokensInstructionAccounts{User: owner, Owner: owner},
		&docchat.StakeTokensInstructionArgs{Amount: 1},
	).ToLegacyInstruction()
	foreign.Program = mustDecode(t, "kinXdEcpDQeHPEuQnqmUgtYykqKGVFq6CeVX5iAHJq6")

	client := &fakeClient{txn: solana.ConfirmedTransaction{
		Transaction: solana.NewTransaction(owner, foreign),
	}}
	verifier := newTestVerifier(client)

	verified, _, err := verifier.Verify(context.Background(), testSignature, docchat.StakeTokensInstructionName, nil)
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerifier_Rejected_WrongInstruction(t *testing.T) {
	client := &fakeClient{txn: chatQueryTransaction(t, "hi", 3)}
	verifier := newTestVerifier(client)

	verified, _, err := verifier.Verify(context.Background(), testSignature, docchat.StakeTokensInstructionName, map[string]interface{}{
		"amount": uint64(1),
	})
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerifier_Rejected_MalformedPayload(t *testing.T) {
	txn := chatQueryTransaction(t, "hi", 3)
	data := txn.Transaction.Message.Instructions[0].Data
	txn.Transaction.Message.Instructions[0].Data = data[:len(data)-1]

	client := &fakeClient{txn: txn}
	verifier := newTestVerifier(client)

	verified, _, err := verifier.Verify(context.Background(), testSignature, docchat.ChatQueryInstructionName, nil)
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerifier_RetriesTransientFailures(t *testing.T) {
	client := &fakeClient{
		txn:     chatQueryTransaction(t, "hi", 3),
		txnErrs: []error{errors.New("i/o timeout"), errors.New("connection reset")},
	}
	verifier := newTestVerifier(client)

	verified, _, err := verifier.Verify(context.Background(), testSignature, docchat.ChatQueryInstructionName, map[string]interface{}{
		"query_text": "hi",
	})
	require.NoError(t, err)
	assert.True(t, verified)
	assert.Equal(t, 3, client.txnCalls)
}

func TestVerifier_RetriesSignatureNotFound(t *testing.T) {
	// The ledger is eventually consistent, so a missing signature is
	// transient until retries run out.
	client := &fakeClient{
		txn:     chatQueryTransaction(t, "hi", 3),
		txnErrs: []error{solana.ErrSignatureNotFound},
	}
	verifier := newTestVerifier(client)

	verified, _, err := verifier.Verify(context.Background(), testSignature, docchat.ChatQueryInstructionName, nil)
	require.NoError(t, err)
	assert.True(t, verified)
	assert.Equal(t, 2, client.txnCalls)
}

func TestVerifier_Inconclusive_RetryExhaustion(t *testing.T) {
	client := &fakeClient{
		txnErrs: []error{
			errors.New("i/o timeout"),
			errors.New("i/o timeout"),
			errors.New("i/o timeout"),
		},
	}
	verifier := NewVerifier(client, withManualTestOverrides(&testOverrides{
		verificationMaxRetries: 2,
		verificationRetryDelay: time.Millisecond,
	}))

	verified, _, err := verifier.Verify(context.Background(), testSignature, docchat.ChatQueryInstructionName, nil)
	require.NoError(t, err)
	assert.False(t, verified)
	assert.Equal(t, 2, client.txnCalls)
}

func TestVerifier_InvalidInput(t *testing.T) {
	client := &fakeClient{}
	verifier := newTestVerifier(client)

	_, _, err := verifier.Verify(context.Background(), "not-a-signature", docchat.ChatQueryInstructionName, nil)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, _, err = verifier.Verify(context.Background(), testSignature, "close_account", nil)
	assert.ErrorIs(t, err, ErrUnknownInstruction)

	// Caller input errors never touch the ledger
	assert.Equal(t, 0, client.txnCalls)
}
