package notary

import (
	"fmt"
	"time"

	json "github.com/json-iterator/go"

	"github.com/caretrail/docnotary/pkg/digest"
)

// NoteType tags every notarization note this system writes. Consumers
// verifying a notarization key off this tag before trusting the payload.
const NoteType = "DOC"

// NoteVersion is the note schema version stamped into every note.
const NoteVersion = "1.0"

// Note is the structured record embedded verbatim as a transaction's note
// payload: UTF-8 JSON, immutable once submitted. Any consumer verifying a
// notarization must parse exactly this shape.
type Note struct {
	Type         string `json:"type"`
	DocumentID   string `json:"documentId"`
	DocumentName string `json:"documentName"`
	FileHash     string `json:"fileHash"`
	Timestamp    string `json:"timestamp"`
	Version      string `json:"version"`
}

// NewNote assembles a note for a freshly computed digest, stamping the
// current UTC time and the fixed schema version.
func NewNote(documentID, documentName, fileHash string, now time.Time) Note {
	return Note{
		Type:         NoteType,
		DocumentID:   documentID,
		DocumentName: documentName,
		FileHash:     fileHash,
		Timestamp:    now.UTC().Format(time.RFC3339),
		Version:      NoteVersion,
	}
}

// Encode renders the note as the exact bytes that go on the ledger.
func (n Note) Encode() ([]byte, error) {
	if n.Type != NoteType {
		return nil, fmt.Errorf("note type %q is not %q", n.Type, NoteType)
	}
	if n.DocumentID == "" {
		return nil, fmt.Errorf("note document id is empty")
	}
	if len(n.FileHash) != digest.HexLen {
		return nil, fmt.Errorf("note file hash must be %d hex chars, got %d", digest.HexLen, len(n.FileHash))
	}
	return json.Marshal(n)
}

// DecodeNote parses raw note bytes fetched from a confirmed transaction.
// Foreign payloads are rejected: a transaction whose note is not a
// well-formed notarization note of this schema cannot prove anything.
func DecodeNote(raw []byte) (Note, error) {
	if len(raw) == 0 {
		return Note{}, fmt.Errorf("transaction carries no note payload")
	}

	var n Note
	if err := json.Unmarshal(raw, &n); err != nil {
		return Note{}, fmt.Errorf("decode note payload: %w", err)
	}
	if n.Type != NoteType {
		return Note{}, fmt.Errorf("note type %q is not a notarization note", n.Type)
	}
	if n.Version != NoteVersion {
		return Note{}, fmt.Errorf("unsupported note version %q", n.Version)
	}
	if n.FileHash == "" {
		return Note{}, fmt.Errorf("note carries no file hash")
	}
	return n, nil
}
