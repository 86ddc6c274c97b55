package docchat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	registry := NewRegistry()

	for _, tc := range []struct {
		name   string
		values map[string]interface{}
	}{
		{
			name:   InitializeUserInstructionName,
			values: map[string]interface{}{},
		},
		{
			name: UploadDocumentInstructionName,
			values: map[string]interface{}{
				"pdf_hash":       "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
				"access_level":   uint8(2),
				"document_index": uint64(7),
			},
		},
		{
			name: ChatQueryInstructionName,
			values: map[string]interface{}{
				"query_text":  "what does section 3 say?",
				"query_index": uint64(12),
			},
		},
		{
			name: PurchaseTokensInstructionName,
			values: map[string]interface{}{
				"amount": uint64(1_000_000),
			},
		},
		{
			name: ShareDocumentInstructionName,
			values: map[string]interface{}{
				"new_access_level": uint8(1),
			},
		},
		{
			name: GenerateQuizInstructionName,
			values: map[string]interface{}{
				"document_hash": "deadbeef",
				"timestamp":     uint64(1700000000),
			},
		},
		{
			name: StakeTokensInstructionName,
			values: map[string]interface{}{
				"amount": uint64(42),
			},
		},
		{
			name: UnstakeTokensInstructionName,
			values: map[string]interface{}{
				"amount": uint64(0),
			},
		},
	} {
		spec, ok := registry.LookupByName(tc.name)
		require.True(t, ok, tc.name)

		encoded, err := Encode(spec, tc.values)
		require.NoError(t, err, tc.name)

		decoded, err := Decode(spec, encoded)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.values, decoded, tc.name)

		// Deterministic encoding
		reencoded, err := Encode(spec, tc.values)
		require.NoError(t, err, tc.name)
		assert.True(t, bytes.Equal(encoded, reencoded), tc.name)
	}
}

func TestCodec_ExactEncoding(t *testing.T) {
	registry := NewRegistry()

	spec, ok := registry.LookupByName(ChatQueryInstructionName)
	require.True(t, ok)

	encoded, err := Encode(spec, map[string]interface{}{
		"query_text":  "hi",
		"query_index": uint64(3),
	})
	require.NoError(t, err)

	expected := []byte{
		2, 0, 0, 0, // query_text length
		'h', 'i', // query_text
		3, 0, 0, 0, 0, 0, 0, 0, // query_index
	}
	assert.Equal(t, expected, encoded)
}

func TestCodec_Bytes32(t *testing.T) {
	registry := newRegistry([]InstructionSpec{
		{
			Name: "record_digest",
			Fields: []Field{
				{Name: "digest", Type: FieldTypeBytes32},
			},
		},
	})
	spec, ok := registry.LookupByName("record_digest")
	require.True(t, ok)

	digest := bytes.Repeat([]byte{0xab}, Bytes32Size)

	encoded, err := Encode(spec, map[string]interface{}{"digest": digest})
	require.NoError(t, err)
	assert.Equal(t, digest, encoded)

	decoded, err := Decode(spec, encoded)
	require.NoError(t, err)
	assert.Equal(t, digest, decoded["digest"])

	_, err = Encode(spec, map[string]interface{}{"digest": []byte{0xab}})
	assert.ErrorIs(t, err, ErrInvalidFieldValue)
}

func TestCodec_InvalidValues(t *testing.T) {
	registry := NewRegistry()

	spec, ok := registry.LookupByName(ChatQueryInstructionName)
	require.True(t, ok)

	_, err := Encode(spec, map[string]interface{}{
		"query_text": "hi",
	})
	assert.ErrorIs(t, err, ErrInvalidFieldValue)

	_, err = Encode(spec, map[string]interface{}{
		"query_text":  "hi",
		"query_index": 3, // untyped int, not uint64
	})
	assert.ErrorIs(t, err, ErrInvalidFieldValue)
}

func TestCodec_MalformedPayload(t *testing.T) {
	registry := NewRegistry()

	spec, ok := registry.LookupByName(ChatQueryInstructionName)
	require.True(t, ok)

	valid, err := Encode(spec, map[string]interface{}{
		"query_text":  "hi",
		"query_index": uint64(3),
	})
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "truncatedLengthPrefix", data: valid[:2]},
		{name: "truncatedString", data: valid[:5]},
		{name: "truncatedInteger", data: valid[:len(valid)-1]},
		{name: "trailingBytes", data: append(append([]byte{}, valid...), 0xff)},
		{name: "lengthBeyondPayload", data: []byte{255, 255, 255, 255, 'h', 'i'}},
	} {
		_, err := Decode(spec, tc.data)
		assert.ErrorIs(t, err, ErrMalformedPayload, tc.name)
	}

	zeroArg, ok := registry.LookupByName(InitializeUserInstructionName)
	require.True(t, ok)

	decoded, err := Decode(zeroArg, nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)

	_, err = Decode(zeroArg, []byte{1})
	assert.ErrorIs(t, err, ErrMalformedPayload)
}
