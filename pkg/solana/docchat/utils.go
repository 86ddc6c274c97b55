package docchat

import (
	"encoding/binary"

	"github.com/mr-tron/base58"
)

func putDiscriminator(dst []byte, v []byte, offset *int) {
	copy(dst[*offset:], v)
	*offset += DiscriminatorSize
}

func putString(dst []byte, v string, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], uint32(len(v)))
	*offset += 4
	copy(dst[*offset:], v)
	*offset += len(v)
}

func putUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func putBlob(dst []byte, v []byte, offset *int) {
	copy(dst[*offset:], v[:Bytes32Size])
	*offset += Bytes32Size
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
