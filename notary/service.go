// Package notary records document digests on a public ledger and later
// proves a document unchanged against the recorded digest. It orchestrates
// hash → submit → wait → record for notarization, and fetch → decode →
// compare for verification. The ledger client, record store, and clock are
// injected; the package holds no ambient global state.
package notary

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/caretrail/docnotary/pkg/digest"
	"github.com/caretrail/docnotary/pkg/ledger"
	"github.com/caretrail/docnotary/pkg/logtrace"
)

// Config carries the service's construction parameters.
type Config struct {
	// Network names the ledger network (mainnet, testnet, betanet); it
	// only affects explorer link formatting.
	Network string
	// ExplorerBaseURL overrides the per-network explorer default.
	ExplorerBaseURL string
	// MaxWaitRounds bounds confirmation waiting; 0 selects the default.
	MaxWaitRounds uint64
}

// Service is the notarization façade consumed by the document-management
// collaborator. Concurrent calls are safe: every call fetches its own
// transaction params and the only shared state is read-only key material
// inside the ledger client.
type Service struct {
	client        ledger.Client
	store         *Store
	explorer      Explorer
	maxWaitRounds uint64
	now           func() time.Time
}

// NewService builds a Service. store may be nil, in which case local
// receipt recording is skipped.
func NewService(client ledger.Client, store *Store, cfg Config) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("ledger client is nil")
	}
	maxRounds := cfg.MaxWaitRounds
	if maxRounds == 0 {
		maxRounds = ledger.DefaultMaxWaitRounds
	}
	return &Service{
		client:        client,
		store:         store,
		explorer:      NewExplorer(cfg.Network, cfg.ExplorerBaseURL),
		maxWaitRounds: maxRounds,
		now:           time.Now,
	}, nil
}

// Explorer returns the link helper configured for the service's network.
func (s *Service) Explorer() Explorer { return s.explorer }

// StoreDocumentHash notarizes an independently computed digest: it builds
// the note, submits exactly one zero-value transaction carrying it, waits
// for finality, and records the outcome. Every lower-layer failure is
// absorbed into the receipt's Error field; callers never need error
// handling to use this API, and no submission is retried internally — the
// caller decides whether to retry with fresh params.
func (s *Service) StoreDocumentHash(ctx context.Context, documentID, documentName, fileHash string) TransactionReceipt {
	fields := logtrace.Fields{
		logtrace.FieldModule:     logtrace.ValueNotary,
		logtrace.FieldMethod:     "StoreDocumentHash",
		logtrace.FieldDocumentID: documentID,
		logtrace.FieldHashHex:    fileHash,
	}
	logtrace.Info(ctx, "notarization requested", fields)

	note := NewNote(documentID, documentName, fileHash, s.now())
	raw, err := note.Encode()
	if err != nil {
		return s.failReceipt(ctx, "", fields, err)
	}

	params, err := s.client.TransactionParams(ctx)
	if err != nil {
		return s.failReceipt(ctx, "", fields, err)
	}

	txn, err := s.client.BuildNoteTransaction(raw, params)
	if err != nil {
		return s.failReceipt(ctx, "", fields, err)
	}

	txid, signed, err := s.client.Sign(txn)
	if err != nil {
		return s.failReceipt(ctx, "", fields, err)
	}

	submittedID, err := s.client.Submit(ctx, signed)
	if err != nil {
		return s.failReceipt(ctx, "", fields, err)
	}
	if submittedID != "" {
		txid = submittedID
	}
	fields = logtrace.WithFields(fields, logtrace.Fields{logtrace.FieldTxID: txid})
	logtrace.Info(ctx, "note transaction submitted", fields)

	s.record(ctx, Record{
		TxID:         txid,
		DocumentID:   documentID,
		DocumentName: documentName,
		FileHash:     fileHash,
		NoteJSON:     string(raw),
		Status:       RecordStatusSubmitted,
	})

	conf, err := ledger.WaitForConfirmation(ctx, s.client, txid, s.maxWaitRounds)
	if err != nil {
		s.recordOutcome(ctx, txid, RecordStatusSubmitted, 0, err.Error())
		return s.failReceipt(ctx, txid, fields, err)
	}

	switch conf.Status {
	case ledger.StatusConfirmed:
		s.recordOutcome(ctx, txid, RecordStatusConfirmed, conf.ConfirmedRound, "")
		logtrace.Info(ctx, "notarization confirmed", logtrace.WithFields(fields, logtrace.Fields{
			logtrace.FieldConfirmedRound: conf.ConfirmedRound,
		}))
		return TransactionReceipt{
			TransactionID:  txid,
			Success:        true,
			ConfirmedRound: conf.ConfirmedRound,
		}

	case ledger.StatusFailed:
		s.recordOutcome(ctx, txid, RecordStatusFailed, 0, conf.PoolError)
		return s.failReceipt(ctx, txid, fields, fmt.Errorf("transaction rejected by pool: %s", conf.PoolError))

	default: // timed out
		timeoutErr := fmt.Errorf("transaction %s not confirmed within %d rounds", txid, s.maxWaitRounds)
		s.recordOutcome(ctx, txid, RecordStatusTimedOut, 0, timeoutErr.Error())
		return s.failReceipt(ctx, txid, fields, timeoutErr)
	}
}

// NotarizeFile digests the supplied content and notarizes it in one call.
// The returned hash is always the digest of the exact bytes read here; the
// system never notarizes a hash it did not independently compute.
func (s *Service) NotarizeFile(ctx context.Context, documentID, documentName string, r io.Reader, sizeHint int64) (TransactionReceipt, string) {
	fileHash, err := digest.ComputeReader(r, sizeHint)
	if err != nil {
		return TransactionReceipt{
			Success: false,
			Error:   fmt.Sprintf("compute digest: %v", err),
		}, ""
	}
	return s.StoreDocumentHash(ctx, documentID, documentName, fileHash), fileHash
}

// VerifyDocumentIntegrity fetches the transaction, requires it to be
// confirmed, decodes the embedded note, and compares digests. A confirmed
// transaction with a mismatched hash is a legitimate tamper-detection
// outcome: it yields Verified=false, not an error.
func (s *Service) VerifyDocumentIntegrity(ctx context.Context, txid, expectedHash string) (DocumentProof, error) {
	fields := logtrace.Fields{
		logtrace.FieldModule:  logtrace.ValueNotary,
		logtrace.FieldMethod:  "VerifyDocumentIntegrity",
		logtrace.FieldTxID:    txid,
		logtrace.FieldHashHex: expectedHash,
	}

	if txid == "" {
		return DocumentProof{}, fmt.Errorf("transaction id is empty")
	}
	if expectedHash == "" {
		return DocumentProof{}, fmt.Errorf("expected hash is empty")
	}

	info, err := s.client.PendingInfo(ctx, txid)
	if err != nil {
		return DocumentProof{}, err
	}
	if info.ConfirmedRound == 0 {
		return DocumentProof{}, &ledger.NotConfirmedError{TxID: txid}
	}

	note, err := DecodeNote(info.Note)
	if err != nil {
		return DocumentProof{}, err
	}

	proof := DocumentProof{
		DocumentHash:  note.FileHash,
		TransactionID: txid,
		BlockNumber:   info.ConfirmedRound,
		Timestamp:     note.Timestamp,
		Verified:      digest.Equal(expectedHash, note.FileHash),
	}
	logtrace.Info(ctx, "document integrity checked", logtrace.WithFields(fields, logtrace.Fields{
		logtrace.FieldConfirmedRound: info.ConfirmedRound,
		logtrace.FieldStatus:         proof.Verified,
	}))
	return proof, nil
}

// AccountState reads the notarizing identity's address and balance. A
// never-funded account reports balance 0.
func (s *Service) AccountState(ctx context.Context) (AccountState, error) {
	address := s.client.Address()
	balance, err := s.client.AccountBalance(ctx, address)
	if err != nil {
		return AccountState{}, err
	}
	return AccountState{Address: address, Balance: balance}, nil
}

// History lists recent local notarization records, newest first. Requires
// a record store.
func (s *Service) History(limit int) ([]Record, error) {
	if s.store == nil {
		return nil, fmt.Errorf("no record store configured")
	}
	return s.store.ListRecent(limit)
}

func (s *Service) failReceipt(ctx context.Context, txid string, fields logtrace.Fields, err error) TransactionReceipt {
	logtrace.Error(ctx, "notarization failed", logtrace.WithFields(fields, logtrace.Fields{
		logtrace.FieldError: err.Error(),
	}))
	return TransactionReceipt{
		TransactionID: txid,
		Success:       false,
		Error:         err.Error(),
	}
}

func (s *Service) record(ctx context.Context, rec Record) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveRecord(rec); err != nil {
		// Recording is best-effort: the chain is the source of truth.
		logtrace.Warn(ctx, "failed to save notarization record", logtrace.Fields{
			logtrace.FieldModule: logtrace.ValueStore,
			logtrace.FieldTxID:   rec.TxID,
			logtrace.FieldError:  err.Error(),
		})
	}
}

func (s *Service) recordOutcome(ctx context.Context, txid string, status RecordStatus, confirmedRound uint64, lastErr string) {
	if s.store == nil {
		return
	}
	rec, found, err := s.store.GetByTxID(txid)
	if err != nil || !found {
		return
	}
	rec.Status = status
	rec.ConfirmedRound = confirmedRound
	rec.LastError = lastErr
	s.record(ctx, rec)
}
