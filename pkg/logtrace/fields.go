package logtrace

// Fields is a type alias for structured log fields
type Fields map[string]interface{}

// WithFields returns a copy of base with extra fields merged in.
func WithFields(base Fields, extra Fields) Fields {
	fields := Fields{}
	for key, value := range base {
		fields[key] = value
	}
	for key, value := range extra {
		fields[key] = value
	}
	return fields
}

const (
	FieldCorrelationID  = "correlation_id"
	FieldMethod         = "method"
	FieldModule         = "module"
	FieldError          = "error"
	FieldStatus         = "status"
	FieldTxID           = "tx_id"
	FieldRound          = "round"
	FieldConfirmedRound = "confirmed_round"
	FieldDocumentID     = "document_id"
	FieldDocumentName   = "document_name"
	FieldHashHex        = "hash_hex"
	FieldAddress        = "address"
	FieldBalance        = "balance"
	FieldNetwork        = "network"
	FieldNoteSize       = "note_size"
)

const (
	ValueLedger  = "ledger"
	ValueNotary  = "notary"
	ValueStore   = "store"
	ValueDigest  = "digest"
	ValueCommand = "command"
)
