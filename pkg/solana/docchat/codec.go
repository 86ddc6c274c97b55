package docchat

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const Bytes32Size = 32

var (
	ErrMalformedPayload  = errors.New("malformed instruction payload")
	ErrInvalidFieldValue = errors.New("invalid field value")
)

// Encode serializes values against the spec's ordered schema. The result
// excludes the discriminator. Encoding is deterministic: identical values
// always produce identical bytes.
func Encode(spec *InstructionSpec, values map[string]interface{}) ([]byte, error) {
	size := 0
	for _, field := range spec.Fields {
		value, ok := values[field.Name]
		if !ok {
			return nil, errors.Wrapf(ErrInvalidFieldValue, "missing field %s", field.Name)
		}

		switch field.Type {
		case FieldTypeString:
			typed, ok := value.(string)
			if !ok {
				return nil, errors.Wrapf(ErrInvalidFieldValue, "field %s is not a string", field.Name)
			}
			size += 4 + len(typed)
		case FieldTypeUint8:
			if _, ok := value.(uint8); !ok {
				return nil, errors.Wrapf(ErrInvalidFieldValue, "field %s is not a uint8", field.Name)
			}
			size += 1
		case FieldTypeUint64:
			if _, ok := value.(uint64); !ok {
				return nil, errors.Wrapf(ErrInvalidFieldValue, "field %s is not a uint64", field.Name)
			}
			size += 8
		case FieldTypeBytes32:
			typed, ok := value.([]byte)
			if !ok || len(typed) != Bytes32Size {
				return nil, errors.Wrapf(ErrInvalidFieldValue, "field %s is not a 32-byte blob", field.Name)
			}
			size += Bytes32Size
		}
	}

	var offset int
	data := make([]byte, size)
	for _, field := range spec.Fields {
		switch field.Type {
		case FieldTypeString:
			putString(data, values[field.Name].(string), &offset)
		case FieldTypeUint8:
			putUint8(data, values[field.Name].(uint8), &offset)
		case FieldTypeUint64:
			putUint64(data, values[field.Name].(uint64), &offset)
		case FieldTypeBytes32:
			putBlob(data, values[field.Name].([]byte), &offset)
		}
	}
	return data, nil
}

// Decode deserializes a payload against the spec's ordered schema. The
// payload excludes the discriminator. Short payloads and trailing bytes
// both fail with ErrMalformedPayload.
func Decode(spec *InstructionSpec, data []byte) (map[string]interface{}, error) {
	var offset int
	values := make(map[string]interface{}, len(spec.Fields))

	for _, field := range spec.Fields {
		switch field.Type {
		case FieldTypeString:
			if len(data) < offset+4 {
				return nil, ErrMalformedPayload
			}
			length := int(binary.LittleEndian.Uint32(data[offset:]))
			offset += 4

			if length < 0 || len(data) < offset+length {
				return nil, ErrMalformedPayload
			}
			values[field.Name] = string(data[offset : offset+length])
			offset += length
		case FieldTypeUint8:
			if len(data) < offset+1 {
				return nil, ErrMalformedPayload
			}
			values[field.Name] = data[offset]
			offset += 1
		case FieldTypeUint64:
			if len(data) < offset+8 {
				return nil, ErrMalformedPayload
			}
			values[field.Name] = binary.LittleEndian.Uint64(data[offset:])
			offset += 8
		case FieldTypeBytes32:
			if len(data) < offset+Bytes32Size {
				return nil, ErrMalformedPayload
			}
			blob := make([]byte, Bytes32Size)
			copy(blob, data[offset:])
			values[field.Name] = blob
			offset += Bytes32Size
		}
	}

	if offset != len(data) {
		return nil, ErrMalformedPayload
	}
	return values, nil
}
