package docchat

import (
	"crypto/sha256"
	"fmt"
)

const DiscriminatorSize = 8

// FieldType enumerates the argument types the on-chain program's
// instruction handlers accept. The set is closed; an unknown type in the
// instruction table is a programmer error caught when the registry is
// built, not per call.
type FieldType uint8

const (
	FieldTypeString FieldType = iota
	FieldTypeUint8
	FieldTypeUint64
	FieldTypeBytes32
)

type Field struct {
	Name string
	Type FieldType
}

// InstructionSpec describes one instruction of the on-chain program: its
// name, its derived 8-byte discriminator, and its ordered argument schema.
// Field names, order and widths are a fixed contract with the deployed
// program and must not be changed without a coordinated redeployment.
type InstructionSpec struct {
	Name          string
	Discriminator []byte
	Fields        []Field
}

const (
	InitializeUserInstructionName = "initialize_user"
	UploadDocumentInstructionName = "upload_document"
	ChatQueryInstructionName      = "chat_query"
	PurchaseTokensInstructionName = "purchase_tokens"
	ShareDocumentInstructionName  = "share_document"
	GenerateQuizInstructionName   = "generate_quiz"
	StakeTokensInstructionName    = "stake_tokens"
	UnstakeTokensInstructionName  = "unstake_tokens"
)

var instructionTable = []InstructionSpec{
	{
		Name:   InitializeUserInstructionName,
		Fields: nil,
	},
	{
		Name: UploadDocumentInstructionName,
		Fields: []Field{
			{Name: "pdf_hash", Type: FieldTypeString},
			{Name: "access_level", Type: FieldTypeUint8},
			{Name: "document_index", Type: FieldTypeUint64},
		},
	},
	{
		Name: ChatQueryInstructionName,
		Fields: []Field{
			{Name: "query_text", Type: FieldTypeString},
			{Name: "query_index", Type: FieldTypeUint64},
		},
	},
	{
		Name: PurchaseTokensInstructionName,
		Fields: []Field{
			{Name: "amount", Type: FieldTypeUint64},
		},
	},
	{
		Name: ShareDocumentInstructionName,
		Fields: []Field{
			{Name: "new_access_level", Type: FieldTypeUint8},
		},
	},
	{
		Name: GenerateQuizInstructionName,
		Fields: []Field{
			{Name: "document_hash", Type: FieldTypeString},
			{Name: "timestamp", Type: FieldTypeUint64},
		},
	},
	{
		Name: StakeTokensInstructionName,
		Fields: []Field{
			{Name: "amount", Type: FieldTypeUint64},
		},
	},
	{
		Name: UnstakeTokensInstructionName,
		Fields: []Field{
			{Name: "amount", Type: FieldTypeUint64},
		},
	},
}

// Registry is the immutable catalog of supported instructions, indexed by
// name and by discriminator. Safe for concurrent use.
type Registry struct {
	byName          map[string]*InstructionSpec
	byDiscriminator map[string]*InstructionSpec
}

// NewRegistry builds a registry from the static instruction table,
// deriving each discriminator from the instruction name.
func NewRegistry() *Registry {
	return newRegistry(instructionTable)
}

func newRegistry(table []InstructionSpec) *Registry {
	r := &Registry{
		byName:          make(map[string]*InstructionSpec),
		byDiscriminator: make(map[string]*InstructionSpec),
	}

	for _, entry := range table {
		spec := &InstructionSpec{
			Name:          entry.Name,
			Discriminator: InstructionDiscriminator(entry.Name),
			Fields:        entry.Fields,
		}

		for _, field := range spec.Fields {
			switch field.Type {
			case FieldTypeString, FieldTypeUint8, FieldTypeUint64, FieldTypeBytes32:
			default:
				panic(fmt.Sprintf("instruction %s: unknown field type %d", spec.Name, field.Type))
			}
		}

		if _, ok := r.byName[spec.Name]; ok {
			panic(fmt.Sprintf("instruction %s registered twice", spec.Name))
		}

		r.byName[spec.Name] = spec
		r.byDiscriminator[string(spec.Discriminator)] = spec
	}
	return r
}

func (r *Registry) LookupByName(name string) (*InstructionSpec, bool) {
	spec, ok := r.byName[name]
	return spec, ok
}

func (r *Registry) LookupByDiscriminator(discriminator []byte) (*InstructionSpec, bool) {
	if len(discriminator) != DiscriminatorSize {
		return nil, false
	}
	spec, ok := r.byDiscriminator[string(discriminator)]
	return spec, ok
}

// InstructionDiscriminator derives the 8-byte tag prefixing every encoded
// payload for the named instruction.
func InstructionDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("global:" + name))
	return hash[:DiscriminatorSize]
}

var programRegistry = NewRegistry()
