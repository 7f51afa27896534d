package notary

// TransactionReceipt is the synchronous outcome of one notarization
// attempt. Success reports whether the whole store operation went through:
// the transaction was accepted for submission and reached finality.
// TransactionID stays populated on post-submission failures (pool
// rejection, confirmation timeout) so the caller can re-poll; it is empty
// when submission itself never happened or was refused.
type TransactionReceipt struct {
	TransactionID  string `json:"transactionId"`
	Success        bool   `json:"success"`
	ConfirmedRound uint64 `json:"confirmedRound,omitempty"`
	Error          string `json:"error,omitempty"`
}

// DocumentProof is the outcome of one verification. Verified derives
// purely from byte-equality of the expected digest and the digest embedded
// on-chain — never from transaction success alone. It is computed fresh on
// every call and never persisted back to the ledger.
type DocumentProof struct {
	DocumentHash  string `json:"documentHash"`
	TransactionID string `json:"transactionId"`
	BlockNumber   uint64 `json:"blockNumber"`
	Timestamp     string `json:"timestamp"`
	Verified      bool   `json:"verified"`
}

// AccountState is a read-only view of the notarizing identity: its address
// and spendable balance in the ledger's base unit. A zero balance is a
// valid, expected state for this application.
type AccountState struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}
