package notary

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const createNotarizationTable = `
CREATE TABLE IF NOT EXISTS notarization (
  tx_id TEXT PRIMARY KEY,
  document_id TEXT NOT NULL,
  document_name TEXT NOT NULL,
  file_hash TEXT NOT NULL,
  note_json TEXT NOT NULL,
  status TEXT NOT NULL,
  confirmed_round INTEGER NOT NULL DEFAULT 0,
  last_error TEXT,
  created_at_unix INTEGER NOT NULL,
  updated_at_unix INTEGER NOT NULL
);`

const createDocumentIndex = `
CREATE INDEX IF NOT EXISTS idx_notarization_document_id ON notarization (document_id);`

// RecordStatus tracks where a local notarization record got to. Submitted
// and confirmed are distinct on purpose: a submitted transaction is not
// durable until the ledger includes it in a round.
type RecordStatus string

const (
	RecordStatusSubmitted RecordStatus = "submitted"
	RecordStatusConfirmed RecordStatus = "confirmed"
	RecordStatusFailed    RecordStatus = "failed"
	RecordStatusTimedOut  RecordStatus = "timed_out"
)

// Record is the local ledger-side receipt kept for each notarization
// attempt. The chain stays the source of truth; this store only lets the
// caller list and re-poll past submissions without re-reading the chain.
type Record struct {
	TxID           string       `db:"tx_id"`
	DocumentID     string       `db:"document_id"`
	DocumentName   string       `db:"document_name"`
	FileHash       string       `db:"file_hash"`
	NoteJSON       string       `db:"note_json"`
	Status         RecordStatus `db:"status"`
	ConfirmedRound uint64       `db:"confirmed_round"`
	LastError      string       `db:"last_error"`
	CreatedAtUnix  int64        `db:"created_at_unix"`
	UpdatedAtUnix  int64        `db:"updated_at_unix"`
}

// Store persists notarization records in a local sqlite database.
type Store struct {
	db *sqlx.DB
}

// NewStore opens (creating if necessary) the record database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open notarization record database")
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "set sqlite parameter")
		}
	}

	if _, err := db.Exec(createNotarizationTable); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create notarization table")
	}
	if _, err := db.Exec(createDocumentIndex); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create document index")
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRecord inserts or updates the record for rec.TxID. CreatedAtUnix is
// preserved on update; UpdatedAtUnix always moves forward.
func (s *Store) SaveRecord(rec Record) error {
	if s == nil || s.db == nil {
		return errors.New("record store not initialized")
	}
	if rec.TxID == "" {
		return errors.New("record has no transaction id")
	}

	now := time.Now().Unix()
	if rec.CreatedAtUnix == 0 {
		rec.CreatedAtUnix = now
	}
	rec.UpdatedAtUnix = now

	_, err := s.db.NamedExec(
		`INSERT INTO notarization
		   (tx_id, document_id, document_name, file_hash, note_json, status,
		    confirmed_round, last_error, created_at_unix, updated_at_unix)
		 VALUES
		   (:tx_id, :document_id, :document_name, :file_hash, :note_json, :status,
		    :confirmed_round, :last_error, :created_at_unix, :updated_at_unix)
		 ON CONFLICT(tx_id) DO UPDATE SET
		   status=excluded.status,
		   confirmed_round=excluded.confirmed_round,
		   last_error=excluded.last_error,
		   updated_at_unix=excluded.updated_at_unix`,
		rec,
	)
	return errors.Wrap(err, "save notarization record")
}

// GetByTxID returns the record for a transaction id, with found=false when
// no attempt under that id was recorded locally.
func (s *Store) GetByTxID(txID string) (Record, bool, error) {
	if s == nil || s.db == nil {
		return Record{}, false, errors.New("record store not initialized")
	}

	var rec Record
	err := s.db.Get(&rec, `SELECT * FROM notarization WHERE tx_id = ?`, txID)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, errors.Wrap(err, "load notarization record")
	}
	return rec, true, nil
}

// ListRecent returns up to limit records, newest first.
func (s *Store) ListRecent(limit int) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("record store not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	var recs []Record
	err := s.db.Select(&recs,
		`SELECT * FROM notarization ORDER BY created_at_unix DESC, tx_id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list notarization records")
	}
	return recs, nil
}
