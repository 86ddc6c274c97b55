package transaction

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/docchat/docchat-server/pkg/retry"
	"github.com/docchat/docchat-server/pkg/retry/backoff"
	"github.com/docchat/docchat-server/pkg/solana"
	"github.com/docchat/docchat-server/pkg/solana/docchat"
)

var (
	// ErrInvalidSignature is returned for caller input that doesn't parse
	// as a transaction signature. Not retryable.
	ErrInvalidSignature = errors.New("invalid transaction signature")

	// ErrUnknownInstruction is returned when the expected instruction name
	// isn't part of the program's catalog. Not retryable.
	ErrUnknownInstruction = errors.New("unknown instruction name")
)

const maxVerificationBackoff = 30 * time.Second

// Outcome is the terminal state of a verification call. Rejected and
// Inconclusive are both reported to callers as "not verified", but they
// are logged distinctly: Rejected is a final on-chain answer, while
// Inconclusive only means the ledger couldn't be consulted in time.
type Outcome uint8

const (
	OutcomeRejected Outcome = iota
	OutcomeVerified
	OutcomeInconclusive
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeVerified:
		return "verified"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// Verifier checks that a claimed transaction signature corresponds to a
// finalized transaction carrying the expected doc-chat instruction and
// argument values. It never mutates ledger or local state; a verification
// is a pure read-then-compare and is safe to repeat.
type Verifier struct {
	log      *logrus.Entry
	client   solana.Client
	registry *docchat.Registry
	conf     *conf
}

func NewVerifier(client solana.Client, configProvider ConfigProvider) *Verifier {
	return &Verifier{
		log:      logrus.StandardLogger().WithField("type", "transaction/verifier"),
		client:   client,
		registry: docchat.NewRegistry(),
		conf:     configProvider(),
	}
}

// Verify fetches the finalized transaction behind signature and checks it
// carries the named instruction with the expected field values. Expected
// values must use the codec's types (string, uint8, uint64, []byte). On
// success the full decoded field map is returned alongside true.
//
// The boolean is false for both Rejected and Inconclusive outcomes; the
// distinction is observable only in logs. An error is returned solely for
// malformed caller input.
func (v *Verifier) Verify(ctx context.Context, signature, instructionName string, expected map[string]interface{}) (bool, map[string]interface{}, error) {
	log := v.log.WithFields(logrus.Fields{
		"method":          "Verify",
		"verification_id": uuid.New().String(),
		"signature":       signature,
		"instruction":     instructionName,
	})

	decoded, err := base58.Decode(signature)
	if err != nil || len(decoded) != ed25519.SignatureSize {
		return false, nil, errors.Wrapf(ErrInvalidSignature, "value %s", signature)
	}
	var sig solana.Signature
	copy(sig[:], decoded)

	spec, ok := v.registry.LookupByName(instructionName)
	if !ok {
		return false, nil, errors.Wrapf(ErrUnknownInstruction, "name %s", instructionName)
	}

	outcome, values := v.verify(ctx, log, sig, spec, expected)

	switch outcome {
	case OutcomeVerified:
		log.Debug("transaction verified")
	case OutcomeRejected:
		log.Info("transaction rejected")
	case OutcomeInconclusive:
		log.Warn("verification inconclusive, ledger couldn't be consulted")
	}

	if outcome != OutcomeVerified {
		return false, nil, nil
	}
	return true, values, nil
}

func (v *Verifier) verify(ctx context.Context, log *logrus.Entry, sig solana.Signature, spec *docchat.InstructionSpec, expected map[string]interface{}) (Outcome, map[string]interface{}) {
	maxAttempts := v.conf.verificationMaxRetries.Get(ctx)
	baseDelay := v.conf.verificationRetryDelay.Get(ctx)

	// Only the fetch is retried; it's an idempotent read. Everything after
	// it is a final answer that re-fetching cannot change.
	var txn solana.ConfirmedTransaction
	_, err := retry.Retry(
		func() error {
			var err error
			txn, err = v.client.GetTransaction(sig, solana.CommitmentFinalized)
			return err
		},
		retry.Limit(uint(maxAttempts)),
		retry.Backoff(backoff.BinaryExponential(baseDelay), maxVerificationBackoff),
	)
	if err != nil {
		log.WithError(err).Warn("failed to fetch transaction")
		return OutcomeInconclusive, nil
	}

	if txn.Err != nil {
		log.WithField("transaction_error", txn.Err.Error()).Info("transaction failed on chain")
		return OutcomeRejected, nil
	}

	instructionIndex := -1
	for i, instruction := range txn.Transaction.Message.Instructions {
		program := txn.Transaction.Message.Accounts[instruction.ProgramIndex]
		if bytes.Equal(program, docchat.PROGRAM_ADDRESS) {
			instructionIndex = i
			break
		}
	}
	if instructionIndex < 0 {
		log.Info("no instruction targets the program")
		return OutcomeRejected, nil
	}

	data := txn.Transaction.Message.Instructions[instructionIndex].Data
	if len(data) < docchat.DiscriminatorSize {
		return OutcomeRejected, nil
	}

	decodedSpec, ok := v.registry.LookupByDiscriminator(data[:docchat.DiscriminatorSize])
	if !ok || decodedSpec.Name != spec.Name {
		log.Info("instruction discriminator doesn't match expectation")
		return OutcomeRejected, nil
	}

	values, err := docchat.Decode(decodedSpec, data[docchat.DiscriminatorSize:])
	if err != nil {
		log.WithError(err).Info("instruction payload is malformed")
		return OutcomeRejected, nil
	}

	for key, expectedValue := range expected {
		actual, ok := values[key]
		if !ok || !reflect.DeepEqual(actual, expectedValue) {
			log.WithField("field", key).Info("decoded field doesn't match expectation")
			return OutcomeRejected, nil
		}
	}

	return OutcomeVerified, values
}
